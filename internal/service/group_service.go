package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// GroupService manages study groups and their chat threads.
type GroupService interface {
	List(ctx context.Context, actorID int64) ([]dto.GroupResponse, error)
	Get(ctx context.Context, actorID, id int64) (dto.GroupResponse, error)
	Create(ctx context.Context, actorID int64, req dto.GroupRequest) (dto.GroupResponse, error)
	Update(ctx context.Context, actorID, id int64, req dto.GroupRequest) (dto.GroupResponse, error)
	PostMessage(ctx context.Context, actorID, groupID int64, req dto.MessageRequest) (dto.MessageResponse, error)
	Messages(ctx context.Context, actorID, groupID int64) ([]dto.MessageResponse, error)
}

type groupService struct {
	store     *store.Store
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewGroupService constructs the group service.
func NewGroupService(st *store.Store, validate *validator.Validate, logger zerolog.Logger) GroupService {
	return &groupService{
		store:     st,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "group_service").Logger(),
	}
}

// List returns the groups visible to the actor: admins see everything, other
// roles see only their memberships.
func (s *groupService) List(ctx context.Context, actorID int64) ([]dto.GroupResponse, error) {
	actor, err := s.store.GetUser(actorID)
	if err != nil {
		return nil, err
	}
	return dto.NewGroupResponses(s.store.AccessibleGroups(actor)), nil
}

func (s *groupService) Get(ctx context.Context, actorID, id int64) (dto.GroupResponse, error) {
	group, err := s.memberGroup(actorID, id)
	if err != nil {
		return dto.GroupResponse{}, err
	}
	return dto.NewGroupResponse(group), nil
}

func (s *groupService) Create(ctx context.Context, actorID int64, req dto.GroupRequest) (dto.GroupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GroupResponse{}, err
	}
	group, err := s.store.CreateGroup(ctx, actorID, toGroupInput(req))
	if err != nil && !store.IsPersistence(err) {
		return dto.GroupResponse{}, err
	}
	return dto.NewGroupResponse(group), err
}

// Update is restricted to the group's creator or an admin.
func (s *groupService) Update(ctx context.Context, actorID, id int64, req dto.GroupRequest) (dto.GroupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GroupResponse{}, err
	}
	existing, err := s.store.GetGroup(id)
	if err != nil {
		return dto.GroupResponse{}, err
	}
	actor, err := s.store.GetUser(actorID)
	if err != nil {
		return dto.GroupResponse{}, ErrForbidden
	}
	if existing.CreatedBy != actor.ID && !actor.IsAdmin() {
		return dto.GroupResponse{}, ErrForbidden
	}
	group, err := s.store.UpdateGroup(ctx, id, toGroupInput(req))
	if err != nil && !store.IsPersistence(err) {
		return dto.GroupResponse{}, err
	}
	return dto.NewGroupResponse(group), err
}

// PostMessage sanitizes the content before it enters the shared document so
// markup never reaches other members.
func (s *groupService) PostMessage(ctx context.Context, actorID, groupID int64, req dto.MessageRequest) (dto.MessageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MessageResponse{}, err
	}
	actor, err := s.store.GetUser(actorID)
	if err != nil {
		return dto.MessageResponse{}, err
	}
	content := s.sanitizer.Sanitize(req.Content)
	message, err := s.store.PostGroupMessage(ctx, groupID, actor, content)
	if err != nil && !store.IsPersistence(err) {
		return dto.MessageResponse{}, err
	}
	return dto.NewMessageResponse(message), err
}

func (s *groupService) Messages(ctx context.Context, actorID, groupID int64) ([]dto.MessageResponse, error) {
	if _, err := s.memberGroup(actorID, groupID); err != nil {
		return nil, err
	}
	return dto.NewMessageResponses(s.store.ListGroupMessages(groupID)), nil
}

// memberGroup resolves a group the actor may see. Non-members get ErrNotFound
// rather than a hint that the group exists.
func (s *groupService) memberGroup(actorID, id int64) (models.Group, error) {
	group, err := s.store.GetGroup(id)
	if err != nil {
		return models.Group{}, err
	}
	actor, err := s.store.GetUser(actorID)
	if err != nil {
		return models.Group{}, store.ErrNotFound
	}
	if !group.HasMember(actor.ID) && !actor.IsAdmin() {
		return models.Group{}, store.ErrNotFound
	}
	return group, nil
}

func toGroupInput(req dto.GroupRequest) store.GroupInput {
	return store.GroupInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	}
}
