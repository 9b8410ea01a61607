package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/freelance-matcher/internal/embedding"
)

var backfillForce bool

var backfillCmd = &cobra.Command{
	Use:   "backfill-embeddings",
	Short: "Recompute missing embeddings for all records",
	Long:  "Walks every job request and freelancer profile and computes embeddings for records missing one. Each record is attempted; individual failures are reported and do not stop the run.",
	RunE:  runBackfill,
}

func init() {
	backfillCmd.Flags().BoolVar(&backfillForce, "force", false, "Recompute embeddings that already exist")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	database, client, cleanup, err := openDeps(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	service := embedding.NewService(database, client)
	items, runErr := service.BackfillAll(ctx, backfillForce)

	var succeeded, failed int
	for _, item := range items {
		if item.Success {
			succeeded++
			continue
		}
		failed++
		fmt.Fprintf(os.Stderr, "FAIL %s %s: %s\n", item.Kind, item.ID, item.Error)
	}
	fmt.Printf("attempted %d, succeeded %d, failed %d\n", len(items), succeeded, failed)

	if runErr != nil {
		return fmt.Errorf("backfill interrupted: %w", runErr)
	}
	if failed > 0 {
		return fmt.Errorf("%d record(s) failed", failed)
	}
	return nil
}
