package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the entire index",
	Long:  `Discards every indexed chunk for every user. Document records are kept; re-upload or rebuild to index them again.`,
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip confirmation")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if !clearForce {
		return errors.New("clearing removes all indexed data; re-run with --force to confirm")
	}

	ctx := context.Background()
	if err := indexService.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	cmd.Println("Index cleared.")
	return nil
}
