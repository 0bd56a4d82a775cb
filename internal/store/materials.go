package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// MaterialInput carries the mutable fields of a material.
type MaterialInput struct {
	CourseID    *int64
	Title       string
	Type        string
	Content     string
	Description string
	FileSize    string
	Tags        []string
	Language    string
	Author      string
}

// ListMaterials returns materials, optionally filtered by course. A nil
// filter returns everything; a filter of 0 returns general materials only.
func (s *Store) ListMaterials(courseID *int64) []models.Material {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Material, 0, len(s.doc.Materials))
	for _, m := range s.doc.Materials {
		switch {
		case courseID == nil:
			out = append(out, m)
		case *courseID == 0 && m.CourseID == nil:
			out = append(out, m)
		case m.CourseID != nil && *m.CourseID == *courseID:
			out = append(out, m)
		}
	}
	return out
}

// GetMaterial returns the material with the given id.
func (s *Store) GetMaterial(id int64) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material := s.doc.MaterialByID(id)
	if material == nil {
		return models.Material{}, ErrNotFound
	}
	return *material, nil
}

// CreateMaterial adds a material. A non-nil course id must reference an
// existing course.
func (s *Store) CreateMaterial(ctx context.Context, input MaterialInput) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidMaterialType(input.Type) {
		return models.Material{}, NewValidationError("type", "unknown material type")
	}
	if input.CourseID != nil && s.doc.CourseByID(*input.CourseID) == nil {
		return models.Material{}, NewValidationError("courseId", "course does not exist")
	}

	material := models.Material{
		ID:          s.allocateID(),
		CourseID:    input.CourseID,
		Title:       input.Title,
		Type:        input.Type,
		Content:     input.Content,
		Description: input.Description,
		FileSize:    input.FileSize,
		Tags:        input.Tags,
		Language:    input.Language,
		Author:      input.Author,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}

	s.doc.Materials = append(s.doc.Materials, material)
	s.record(models.ActionMaterialCreate, fmt.Sprintf("Created material: %s", material.Title), nil)

	if err := s.persist(ctx); err != nil {
		return material, err
	}
	return material, nil
}

// UpdateMaterial edits an existing material.
func (s *Store) UpdateMaterial(ctx context.Context, id int64, input MaterialInput) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material := s.doc.MaterialByID(id)
	if material == nil {
		return models.Material{}, ErrNotFound
	}
	if !models.ValidMaterialType(input.Type) {
		return models.Material{}, NewValidationError("type", "unknown material type")
	}
	if input.CourseID != nil && s.doc.CourseByID(*input.CourseID) == nil {
		return models.Material{}, NewValidationError("courseId", "course does not exist")
	}

	material.CourseID = input.CourseID
	material.Title = input.Title
	material.Type = input.Type
	material.Content = input.Content
	material.Description = input.Description
	material.FileSize = input.FileSize
	material.Tags = input.Tags
	if input.Language != "" {
		material.Language = input.Language
	}
	material.UpdatedAt = s.now()

	s.record(models.ActionMaterialUpdate, fmt.Sprintf("Updated material: %s", material.Title), nil)

	updated := *material
	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// DeleteMaterial removes the material. Course material lists are denormalized
// and non-authoritative, so they are not rewritten here.
func (s *Store) DeleteMaterial(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	material := s.doc.MaterialByID(id)
	if material == nil {
		return ErrNotFound
	}
	title := material.Title

	materials := s.doc.Materials[:0]
	for _, m := range s.doc.Materials {
		if m.ID != id {
			materials = append(materials, m)
		}
	}
	s.doc.Materials = materials

	s.record(models.ActionMaterialDelete, fmt.Sprintf("Deleted material: %s", title), nil)
	return s.persist(ctx)
}

// IncrementDownloads bumps a material's download counter and the analytics
// tally.
func (s *Store) IncrementDownloads(ctx context.Context, id int64) (models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	material := s.doc.MaterialByID(id)
	if material == nil {
		return models.Material{}, ErrNotFound
	}

	material.Downloads++
	s.doc.Analytics.MaterialDownloads[strconv.FormatInt(id, 10)]++

	updated := *material
	s.record(models.ActionMaterialDownload, fmt.Sprintf("Downloaded material: %s", updated.Title), nil)
	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}
