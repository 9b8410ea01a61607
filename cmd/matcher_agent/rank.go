package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/freelance-matcher/internal/matching"
)

var (
	rankJobID   string
	rankTopK    int
	rankExplain bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank freelancer candidates for a job request",
	Long:  "Ranks all embedded freelancer profiles against one job request and prints the result as JSON, best match first.",
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().StringVarP(&rankJobID, "job", "j", "", "Job request ID (required)")
	rankCmd.Flags().IntVarP(&rankTopK, "top-k", "k", matching.DefaultTopK, "Number of results")
	rankCmd.Flags().BoolVar(&rankExplain, "explain", false, "Generate per-match explanations")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(rankJobID)
	if err != nil {
		return fmt.Errorf("invalid job ID %q: %w", rankJobID, err)
	}

	ctx := context.Background()
	database, client, cleanup, err := openDeps(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	engine := matching.NewEngine(database, client, rankExplain)
	matches, err := engine.RankMatches(ctx, jobID, rankTopK)
	if err != nil {
		return fmt.Errorf("failed to rank matches: %w", err)
	}

	out, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
