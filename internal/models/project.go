package models

import "time"

// Project visibility levels.
const (
	ProjectVisibilityPublic   = "public"
	ProjectVisibilityUnlisted = "unlisted"
	ProjectVisibilityPrivate  = "private"
)

// Project represents a playground project published by a user.
type Project struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"code"`
	Visibility  string    `json:"visibility"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Likes       int       `json:"likes"`
	Views       int       `json:"views"`
	Forks       int       `json:"forks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsPublic reports whether the project appears on shared listings.
func (p Project) IsPublic() bool {
	return p.Visibility == ProjectVisibilityPublic
}

// EngagementScore combines likes and views for the featured leaderboard sort.
func (p Project) EngagementScore() int {
	return p.Likes + p.Views
}

// ValidVisibility reports whether the supplied visibility is recognised.
func ValidVisibility(v string) bool {
	switch v {
	case ProjectVisibilityPublic, ProjectVisibilityUnlisted, ProjectVisibilityPrivate:
		return true
	default:
		return false
	}
}
