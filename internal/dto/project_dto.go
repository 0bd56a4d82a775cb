package dto

import (
	"time"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// ProjectRequest carries project create/update payloads.
type ProjectRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Visibility  string   `json:"visibility" validate:"required,oneof=public unlisted private"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// ProjectResponse is the public view of a project.
type ProjectResponse struct {
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

// NewProjectResponse maps a project model to its public view.
func NewProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		UserID:      project.UserID,
		Name:        project.Name,
		Description: project.Description,
		Code:        project.Code,
		Visibility:  project.Visibility,
		Category:    project.Category,
		Tags:        project.Tags,
		Likes:       project.Likes,
		Views:       project.Views,
		Forks:       project.Forks,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// NewProjectResponses maps a slice of project models.
func NewProjectResponses(projects []models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		out = append(out, NewProjectResponse(project))
	}
	return out
}
