package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// ErrForbidden is returned when the acting user may not touch the record.
var ErrForbidden = errors.New("not allowed")

// ProjectService manages playground projects and the community showcase.
type ProjectService interface {
	List(ctx context.Context, ownerID *int64) ([]dto.ProjectResponse, error)
	Get(ctx context.Context, actorID, id int64) (dto.ProjectResponse, error)
	Create(ctx context.Context, actorID int64, req dto.ProjectRequest) (dto.ProjectResponse, error)
	Update(ctx context.Context, actorID, id int64, req dto.ProjectRequest) (dto.ProjectResponse, error)
	Delete(ctx context.Context, actorID, id int64) error
	Like(ctx context.Context, actorID, id int64) (dto.ProjectResponse, error)
	View(ctx context.Context, id int64) (dto.ProjectResponse, error)
	Fork(ctx context.Context, actorID, id int64) (dto.ProjectResponse, error)
	Leaderboard(ctx context.Context, kind string) ([]dto.ProjectResponse, error)
}

type projectService struct {
	store     *store.Store
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProjectService constructs the project service.
func NewProjectService(st *store.Store, validate *validator.Validate, logger zerolog.Logger) ProjectService {
	return &projectService{
		store:     st,
		validator: validate,
		logger:    logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) List(ctx context.Context, ownerID *int64) ([]dto.ProjectResponse, error) {
	return dto.NewProjectResponses(s.store.ListProjects(ownerID)), nil
}

// Get enforces visibility: private projects resolve only for their owner or
// an admin; unlisted and public projects resolve for anyone.
func (s *projectService) Get(ctx context.Context, actorID, id int64) (dto.ProjectResponse, error) {
	project, err := s.store.GetProject(id)
	if err != nil {
		return dto.ProjectResponse{}, err
	}
	if project.Visibility == models.ProjectVisibilityPrivate {
		actor, err := s.store.GetUser(actorID)
		if err != nil || (project.UserID != actor.ID && !actor.IsAdmin()) {
			return dto.ProjectResponse{}, store.ErrNotFound
		}
	}
	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Create(ctx context.Context, actorID int64, req dto.ProjectRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ProjectResponse{}, err
	}
	project, err := s.store.CreateProject(ctx, actorID, toProjectInput(req))
	if err != nil && !store.IsPersistence(err) {
		return dto.ProjectResponse{}, err
	}
	return dto.NewProjectResponse(project), err
}

func (s *projectService) Update(ctx context.Context, actorID, id int64, req dto.ProjectRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ProjectResponse{}, err
	}
	if err := s.requireOwner(actorID, id); err != nil {
		return dto.ProjectResponse{}, err
	}
	project, err := s.store.UpdateProject(ctx, id, toProjectInput(req))
	if err != nil && !store.IsPersistence(err) {
		return dto.ProjectResponse{}, err
	}
	return dto.NewProjectResponse(project), err
}

func (s *projectService) Delete(ctx context.Context, actorID, id int64) error {
	if err := s.requireOwner(actorID, id); err != nil {
		return err
	}
	return s.store.DeleteProject(ctx, id)
}

func (s *projectService) Like(ctx context.Context, actorID, id int64) (dto.ProjectResponse, error) {
	project, err := s.store.LikeProject(ctx, id, actorID)
	if err != nil && !store.IsPersistence(err) {
		return dto.ProjectResponse{}, err
	}
	return dto.NewProjectResponse(project), err
}

func (s *projectService) View(ctx context.Context, id int64) (dto.ProjectResponse, error) {
	project, err := s.store.ViewProject(ctx, id)
	if err != nil && !store.IsPersistence(err) {
		return dto.ProjectResponse{}, err
	}
	return dto.NewProjectResponse(project), err
}

func (s *projectService) Fork(ctx context.Context, actorID, id int64) (dto.ProjectResponse, error) {
	project, err := s.store.ForkProject(ctx, id, actorID)
	if err != nil && !store.IsPersistence(err) {
		return dto.ProjectResponse{}, err
	}
	return dto.NewProjectResponse(project), err
}

func (s *projectService) Leaderboard(ctx context.Context, kind string) ([]dto.ProjectResponse, error) {
	return dto.NewProjectResponses(s.store.Leaderboard(kind)), nil
}

func (s *projectService) requireOwner(actorID, id int64) error {
	project, err := s.store.GetProject(id)
	if err != nil {
		return err
	}
	actor, err := s.store.GetUser(actorID)
	if err != nil {
		return ErrForbidden
	}
	if project.UserID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func toProjectInput(req dto.ProjectRequest) store.ProjectInput {
	return store.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
		Visibility:  req.Visibility,
		Category:    req.Category,
		Tags:        req.Tags,
	}
}
