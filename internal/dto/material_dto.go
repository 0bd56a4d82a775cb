package dto

import (
	"time"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// MaterialRequest carries material create/update payloads. Content holds the
// URL for links, the source for code snippets, and the inline payload for
// uploaded documents.
type MaterialRequest struct {
	CourseID    *int64   `json:"courseId"`
	Title       string   `json:"title" validate:"required"`
	Type        string   `json:"type" validate:"required,oneof=pdf doc docx ppt pptx video link code"`
	Content     string   `json:"content" validate:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Language    string   `json:"language"`
}

// MaterialResponse is the public view of a material.
type MaterialResponse struct {
	ID          int64     `json:"id"`
	CourseID    *int64    `json:"courseId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	FileSize    string    `json:"fileSize,omitempty"`
	Downloads   int       `json:"downloads"`
	Tags        []string  `json:"tags,omitempty"`
	Language    string    `json:"language,omitempty"`
	Author      string    `json:"author,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewMaterialResponse maps a material model to its public view.
func NewMaterialResponse(material models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          material.ID,
		CourseID:    material.CourseID,
		Title:       material.Title,
		Type:        material.Type,
		Content:     material.Content,
		Description: material.Description,
		FileSize:    material.FileSize,
		Downloads:   material.Downloads,
		Tags:        material.Tags,
		Language:    material.Language,
		Author:      material.Author,
		CreatedAt:   material.CreatedAt,
	}
}

// NewMaterialResponses maps a slice of material models.
func NewMaterialResponses(materials []models.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		out = append(out, NewMaterialResponse(material))
	}
	return out
}
