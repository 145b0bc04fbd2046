package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/personaapply/personaapply/internal/core/domain"
)

var (
	profileEmail     string
	profileName      string
	profileTitle     string
	profileSummary   string
	profileSkills    string
	profileYears     int
	profileGitHub    string
	profileLinkedIn  string
	profilePortfolio string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage user profiles",
	Long:  `Create, inspect, or delete a user profile. Deleting a profile also removes the user's documents and indexed chunks.`,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the user's profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileSet,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the user's profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the user's profile and all their data",
	Args:  cobra.NoArgs,
	RunE:  runProfileDelete,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileEmail, "email", "", "email address")
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "full name")
	profileSetCmd.Flags().StringVar(&profileTitle, "title", "", "professional title")
	profileSetCmd.Flags().StringVar(&profileSummary, "summary", "", "short summary")
	profileSetCmd.Flags().StringVar(&profileSkills, "skills", "", "comma-separated skills")
	profileSetCmd.Flags().IntVar(&profileYears, "years", 0, "years of experience")
	profileSetCmd.Flags().StringVar(&profileGitHub, "github", "", "GitHub profile URL")
	profileSetCmd.Flags().StringVar(&profileLinkedIn, "linkedin", "", "LinkedIn profile URL")
	profileSetCmd.Flags().StringVar(&profilePortfolio, "portfolio", "", "portfolio URL")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	uid, err := requireUser()
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Merge flags into the existing profile so unset flags keep their
	// stored values.
	profile, err := profileService.Get(ctx, uid)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		profile = &domain.UserProfile{UID: uid}
	case err != nil:
		return fmt.Errorf("failed to load profile: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("email") {
		profile.Email = profileEmail
	}
	if flags.Changed("name") {
		profile.Name = profileName
	}
	if flags.Changed("title") {
		profile.Title = profileTitle
	}
	if flags.Changed("summary") {
		profile.Summary = profileSummary
	}
	if flags.Changed("skills") {
		profile.Skills = splitSkills(profileSkills)
	}
	if flags.Changed("years") {
		profile.ExperienceYears = profileYears
	}
	if flags.Changed("github") {
		profile.GitHubURL = profileGitHub
	}
	if flags.Changed("linkedin") {
		profile.LinkedInURL = profileLinkedIn
	}
	if flags.Changed("portfolio") {
		profile.PortfolioURL = profilePortfolio
	}

	if err := profileService.Save(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	cmd.Printf("Profile saved for user %s.\n", uid)
	return nil
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	uid, err := requireUser()
	if err != nil {
		return err
	}

	ctx := context.Background()
	profile, err := profileService.Get(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	cmd.Printf("Profile: %s\n\n", profile.UID)
	cmd.Printf("  Email:      %s\n", profile.Email)
	cmd.Printf("  Name:       %s\n", profile.Name)
	cmd.Printf("  Title:      %s\n", profile.Title)
	if profile.Summary != "" {
		cmd.Printf("  Summary:    %s\n", profile.Summary)
	}
	if len(profile.Skills) > 0 {
		cmd.Printf("  Skills:     %s\n", strings.Join(profile.Skills, ", "))
	}
	if profile.ExperienceYears > 0 {
		cmd.Printf("  Experience: %d years\n", profile.ExperienceYears)
	}
	if profile.GitHubURL != "" {
		cmd.Printf("  GitHub:     %s\n", profile.GitHubURL)
	}
	if profile.LinkedInURL != "" {
		cmd.Printf("  LinkedIn:   %s\n", profile.LinkedInURL)
	}
	if profile.PortfolioURL != "" {
		cmd.Printf("  Portfolio:  %s\n", profile.PortfolioURL)
	}

	return nil
}

func runProfileDelete(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	uid, err := requireUser()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := profileService.Delete(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	cmd.Printf("Profile %s deleted along with all documents.\n", uid)
	return nil
}

// splitSkills parses a comma-separated skill list, dropping empty entries.
func splitSkills(s string) []string {
	var skills []string
	for _, skill := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
