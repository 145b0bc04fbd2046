package domain

import "time"

// UserProfile holds a user's professional profile, stored outside the
// retrieval index.
type UserProfile struct {
	// UID is the unique user identifier.
	UID string

	// Email is the user's email address.
	Email string

	// Name is the user's display name.
	Name string

	// Title is the professional title.
	Title string

	// Summary is a short professional summary.
	Summary string

	// Skills lists the user's key skills.
	Skills []string

	// ExperienceYears is the years of professional experience.
	ExperienceYears int

	// GitHubURL, LinkedInURL and PortfolioURL are optional social links.
	GitHubURL    string
	LinkedInURL  string
	PortfolioURL string

	// CreatedAt is when the profile was created.
	CreatedAt time.Time

	// UpdatedAt is when the profile was last updated.
	UpdatedAt time.Time
}
