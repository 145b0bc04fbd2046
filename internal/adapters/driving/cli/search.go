package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driving"
)

var (
	searchK    int
	searchType string
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a user's indexed documents",
	Long: `Performs a similarity search over the user's indexed document chunks.
Results are ordered by distance, closest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "restrict to one document type")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	owner, err := requireUser()
	if err != nil {
		return err
	}

	query := args[0]
	opts := driving.SearchOptions{OwnerID: owner}

	if searchType != "" {
		docType := domain.DocumentType(searchType)
		if !docType.Valid() {
			return fmt.Errorf("unknown document type: %s", searchType)
		}
		opts.Filter = func(c domain.Chunk) bool {
			return c.DocumentType == docType
		}
	}

	ctx := context.Background()
	results, err := indexService.Search(ctx, query, searchK, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.ScoredChunk) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.ScoredChunk) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s chunk %d (distance %.4f)\n",
			i+1, results[i].Chunk.DocumentType, results[i].Chunk.ChunkIndex, results[i].Distance)
		cmd.Printf("      Document: %s\n", results[i].Chunk.DocumentID)
		cmd.Printf("      %s\n", snippet(results[i].Chunk.Text, 120))
		cmd.Println()
	}

	return nil
}

// snippet collapses whitespace and truncates text for table display.
func snippet(text string, max int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= max {
		return collapsed
	}
	return string(runes[:max]) + "..."
}
