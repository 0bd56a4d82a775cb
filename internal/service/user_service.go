package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/biometric"
	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// UserService manages portal accounts and biometric enrollment.
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, id int64) (dto.UserResponse, error)
	Create(ctx context.Context, req dto.UserRequest) (dto.UserResponse, error)
	Update(ctx context.Context, id int64, req dto.UserRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, id int64) error
	StartFaceRegistration(ctx context.Context, id int64) error
	CancelFaceRegistration(ctx context.Context) bool
	FaceRegistrationStatus(ctx context.Context) dto.ScanStatusResponse
}

type userService struct {
	store         *store.Store
	scanner       *biometric.Scanner
	validator     *validator.Validate
	frames        int
	frameInterval time.Duration
	logger        zerolog.Logger
}

// NewUserService constructs the user service. The scanner drives face
// enrollment captures; frames and frameInterval shape a registration session.
func NewUserService(st *store.Store, scanner *biometric.Scanner, validate *validator.Validate, frames int, frameInterval time.Duration, logger zerolog.Logger) UserService {
	return &userService{
		store:         st,
		scanner:       scanner,
		validator:     validate,
		frames:        frames,
		frameInterval: frameInterval,
		logger:        logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	return dto.NewUserResponses(s.store.ListUsers()), nil
}

func (s *userService) Get(ctx context.Context, id int64) (dto.UserResponse, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, req dto.UserRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}
	user, err := s.store.CreateUser(ctx, toUserInput(req))
	if err != nil && !store.IsPersistence(err) {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), err
}

func (s *userService) Update(ctx context.Context, id int64, req dto.UserRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}
	user, err := s.store.UpdateUser(ctx, id, toUserInput(req))
	if err != nil && !store.IsPersistence(err) {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), err
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteUser(ctx, id)
}

// StartFaceRegistration kicks off an enrollment capture for the account. The
// descriptor is written only when every frame has been sampled; a cancelled
// session leaves the account untouched.
func (s *userService) StartFaceRegistration(ctx context.Context, id int64) error {
	if _, err := s.store.GetUser(id); err != nil {
		return err
	}
	return s.scanner.Start(id, s.frames, s.frameInterval, func(ctx context.Context, subject int64) {
		if _, err := s.store.RegisterFaceDescriptor(ctx, subject); err != nil {
			s.logger.Error().Err(err).Int64("user_id", subject).Msg("failed to store face descriptor")
			return
		}
		s.logger.Info().Int64("user_id", subject).Msg("face descriptor registered")
	})
}

func (s *userService) CancelFaceRegistration(ctx context.Context) bool {
	return s.scanner.Cancel()
}

func (s *userService) FaceRegistrationStatus(ctx context.Context) dto.ScanStatusResponse {
	progress := s.scanner.Progress()
	return dto.ScanStatusResponse{
		State:   progress.State,
		Samples: progress.Samples,
		Total:   progress.Total,
	}
}

func toUserInput(req dto.UserRequest) store.UserInput {
	return store.UserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		CourseID: req.CourseID,
		Notes:    req.Notes,
		Status:   req.Status,
	}
}
