package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := context.Background()
	stats, err := indexService.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	cmd.Println("Index statistics:")
	cmd.Println()
	cmd.Printf("  Documents: %d\n", stats.TotalDocuments)
	cmd.Printf("  Chunks:    %d\n", stats.TotalChunks)
	return nil
}
