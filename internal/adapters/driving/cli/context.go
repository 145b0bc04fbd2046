package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var contextMaxChunks int

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print a user's assembled retrieval context",
	Long: `Prints the context string assembled from the user's indexed chunks,
exactly as it would be fed to the model during generation.`,
	Args: cobra.NoArgs,
	RunE: runContext,
}

func init() {
	contextCmd.Flags().IntVarP(&contextMaxChunks, "max-chunks", "n", 0, "maximum chunks to include")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	owner, err := requireUser()
	if err != nil {
		return err
	}

	ctx := context.Background()
	userContext, err := indexService.UserContext(ctx, owner, contextMaxChunks)
	if err != nil {
		return fmt.Errorf("failed to assemble context: %w", err)
	}

	cmd.Println(userContext)
	return nil
}
