package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/personaapply/personaapply/internal/core/domain"
)

var (
	generateJob        string
	generateCompany    string
	generateRole       string
	generateNotes      string
	generateTone       string
	generateShowPrompt bool
)

// contentTypeNames maps command-line names to content types.
var contentTypeNames = map[string]domain.ContentType{
	"cover-letter":     domain.ContentTypeCoverLetter,
	"cold-email":       domain.ContentTypeColdEmail,
	"linkedin-message": domain.ContentTypeLinkedInMessage,
}

var generateCmd = &cobra.Command{
	Use:   "generate [cover-letter|cold-email|linkedin-message]",
	Short: "Generate personalized outreach content",
	Long: `Generates a cover letter, cold email, or LinkedIn message personalized
with the user's indexed documents. When no LLM is configured the output
is a static template the user can fill in by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateJob, "job", "j", "", "target job description")
	generateCmd.Flags().StringVar(&generateCompany, "company", "", "target company name")
	generateCmd.Flags().StringVar(&generateRole, "role", "", "target role or title")
	generateCmd.Flags().StringVar(&generateNotes, "notes", "", "additional requirements")
	generateCmd.Flags().StringVar(&generateTone, "tone", "",
		"voice (professional, friendly, confident, enthusiastic, formal)")
	generateCmd.Flags().BoolVar(&generateShowPrompt, "show-prompt", false, "print the prompt sent to the model")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	owner, err := requireUser()
	if err != nil {
		return err
	}

	contentType, ok := contentTypeNames[args[0]]
	if !ok {
		return fmt.Errorf("unknown content type: %s", args[0])
	}

	req := domain.GenerationRequest{
		ContentType:       contentType,
		JobDescription:    generateJob,
		TargetCompany:     generateCompany,
		TargetRole:        generateRole,
		AdditionalContext: generateNotes,
		Tone:              domain.Tone(generateTone),
	}

	ctx := context.Background()
	result, err := contentService.Generate(ctx, owner, req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if generateShowPrompt {
		cmd.Println("--- Prompt ---")
		cmd.Println(result.PromptUsed)
		cmd.Println("--- Output ---")
	}

	cmd.Println(result.Content)

	if result.Fallback {
		cmd.Println()
		cmd.Println("Note: generated from a static template because no LLM was available.")
	}

	return nil
}
