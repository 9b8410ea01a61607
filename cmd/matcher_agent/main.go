// Package main provides the entry point for the freelance matcher HTTP API
// server and its maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matcher_agent",
	Short: "Freelance matcher HTTP API server",
	Long:  "Freelance matcher ranks freelancer profiles against client job requests by embedding similarity, and runs the guided intake conversation that turns chat messages into structured job requests.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
