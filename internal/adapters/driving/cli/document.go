package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `List or delete a user's uploaded career documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its indexed chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	owner, err := requireUser()
	if err != nil {
		return err
	}

	ctx := context.Background()
	docs, err := documentService.ListByOwner(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for user: %s\n", owner)
		return nil
	}

	cmd.Printf("Documents for user %s:\n\n", owner)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    File:     %s\n", docs[i].Filename)
		cmd.Printf("    Type:     %s\n", docs[i].Type)
		cmd.Printf("    Size:     %d bytes\n", docs[i].SizeBytes)
		cmd.Printf("    Uploaded: %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	owner, err := requireUser()
	if err != nil {
		return err
	}

	docID := args[0]
	ctx := context.Background()

	if err := documentService.Delete(ctx, owner, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", docID)
	return nil
}
