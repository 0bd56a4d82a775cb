package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// uploadTypes maps detected file extensions to material types.
var uploadTypes = map[string]string{
	".pdf":  "pdf",
	".doc":  "doc",
	".docx": "docx",
	".ppt":  "ppt",
	".pptx": "pptx",
	".mp4":  "video",
	".webm": "video",
}

// MaterialService manages learning materials: uploads, links, and code
// snippets.
type MaterialService interface {
	List(ctx context.Context, courseID *int64) ([]dto.MaterialResponse, error)
	Get(ctx context.Context, id int64) (dto.MaterialResponse, error)
	Create(ctx context.Context, actorID int64, req dto.MaterialRequest) (dto.MaterialResponse, error)
	Upload(ctx context.Context, actorID int64, title string, courseID *int64, data []byte) (dto.MaterialResponse, error)
	Update(ctx context.Context, id int64, req dto.MaterialRequest) (dto.MaterialResponse, error)
	Delete(ctx context.Context, id int64) error
	Download(ctx context.Context, id int64) (dto.MaterialResponse, error)
}

type materialService struct {
	store     *store.Store
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewMaterialService constructs the material service.
func NewMaterialService(st *store.Store, validate *validator.Validate, logger zerolog.Logger) MaterialService {
	return &materialService{
		store:     st,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "material_service").Logger(),
	}
}

func (s *materialService) List(ctx context.Context, courseID *int64) ([]dto.MaterialResponse, error) {
	return dto.NewMaterialResponses(s.store.ListMaterials(courseID)), nil
}

func (s *materialService) Get(ctx context.Context, id int64) (dto.MaterialResponse, error) {
	material, err := s.store.GetMaterial(id)
	if err != nil {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Create(ctx context.Context, actorID int64, req dto.MaterialRequest) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MaterialResponse{}, err
	}
	if err := s.checkTypeContent(req); err != nil {
		return dto.MaterialResponse{}, err
	}

	input := store.MaterialInput{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Type:        req.Type,
		Content:     req.Content,
		Description: s.sanitizer.Sanitize(req.Description),
		Tags:        req.Tags,
		Language:    req.Language,
		Author:      s.authorName(actorID),
	}
	material, err := s.store.CreateMaterial(ctx, input)
	if err != nil && !store.IsPersistence(err) {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), err
}

// Upload detects the file type from content, stores the payload inline as
// base64, and records a humanized size.
func (s *materialService) Upload(ctx context.Context, actorID int64, title string, courseID *int64, data []byte) (dto.MaterialResponse, error) {
	if len(data) == 0 {
		return dto.MaterialResponse{}, store.NewValidationError("file", "empty upload")
	}

	detected := mimetype.Detect(data)
	materialType, ok := uploadTypes[detected.Extension()]
	if !ok {
		return dto.MaterialResponse{}, store.NewValidationError("file", fmt.Sprintf("unsupported file type %s", detected.String()))
	}

	input := store.MaterialInput{
		CourseID: courseID,
		Title:    title,
		Type:     materialType,
		Content:  base64.StdEncoding.EncodeToString(data),
		FileSize: humanSize(len(data)),
		Author:   s.authorName(actorID),
	}
	material, err := s.store.CreateMaterial(ctx, input)
	if err != nil && !store.IsPersistence(err) {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), err
}

func (s *materialService) Update(ctx context.Context, id int64, req dto.MaterialRequest) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MaterialResponse{}, err
	}
	if err := s.checkTypeContent(req); err != nil {
		return dto.MaterialResponse{}, err
	}

	input := store.MaterialInput{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Type:        req.Type,
		Content:     req.Content,
		Description: s.sanitizer.Sanitize(req.Description),
		Tags:        req.Tags,
		Language:    req.Language,
	}
	material, err := s.store.UpdateMaterial(ctx, id, input)
	if err != nil && !store.IsPersistence(err) {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), err
}

func (s *materialService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteMaterial(ctx, id)
}

func (s *materialService) Download(ctx context.Context, id int64) (dto.MaterialResponse, error) {
	material, err := s.store.IncrementDownloads(ctx, id)
	if err != nil && !store.IsPersistence(err) {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), err
}

// authorName resolves the display name for the acting account. Blank when the
// account is gone, which only happens in tests.
func (s *materialService) authorName(actorID int64) string {
	user, err := s.store.GetUser(actorID)
	if err != nil {
		return ""
	}
	return user.Name
}

// checkTypeContent enforces per-type content rules: links must be http(s)
// URLs, code snippets must carry a language.
func (s *materialService) checkTypeContent(req dto.MaterialRequest) error {
	switch req.Type {
	case "link":
		if !strings.HasPrefix(req.Content, "http://") && !strings.HasPrefix(req.Content, "https://") {
			return store.NewValidationError("content", "link materials require an http(s) URL")
		}
	case "code":
		if strings.TrimSpace(req.Language) == "" {
			return store.NewValidationError("language", "code materials require a language")
		}
	}
	return nil
}

func humanSize(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := int64(n) / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
