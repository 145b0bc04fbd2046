package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/personaapply/personaapply/internal/core/domain"
)

var uploadType string

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload and index a career document",
	Long: `Reads a file, stores it as a career document for the given user, and
indexes its text for retrieval. Non-text files are stored with a
placeholder so the document still shows up in listings.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadType, "type", "t", "resume",
		"document type (resume, github, linkedin, portfolio, other)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	owner, err := requireUser()
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	docType := domain.DocumentType(uploadType)
	ctx := context.Background()

	doc, err := documentService.Upload(ctx, owner, filepath.Base(path), data, docType)
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	cmd.Printf("Uploaded %s\n\n", doc.Filename)
	cmd.Printf("  ID:    %s\n", doc.ID)
	cmd.Printf("  Type:  %s\n", doc.Type)
	cmd.Printf("  Size:  %d bytes\n", doc.SizeBytes)
	return nil
}
