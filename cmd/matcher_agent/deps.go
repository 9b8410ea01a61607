package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/freelance-matcher/internal/db"
	"github.com/jonathan/freelance-matcher/internal/llm"
)

// openDeps connects the database and the model client for one-shot commands.
// The returned cleanup closes both.
func openDeps(ctx context.Context) (*db.DB, llm.Client, func(), error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, nil, nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	cleanup := func() {
		_ = client.Close()
		database.Close()
	}
	return database, client, cleanup, nil
}
