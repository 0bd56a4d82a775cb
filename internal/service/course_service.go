package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// CourseService manages the course catalog and its rosters.
type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id int64) (dto.CourseResponse, error)
	Create(ctx context.Context, req dto.CourseRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, id int64, req dto.CourseRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, id int64) error
	Enroll(ctx context.Context, courseID, userID int64) error
	Unenroll(ctx context.Context, courseID, userID int64) error
}

type courseService struct {
	store     *store.Store
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(st *store.Store, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		store:     st,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	return dto.NewCourseResponses(s.store.ListCourses()), nil
}

func (s *courseService) Get(ctx context.Context, id int64) (dto.CourseResponse, error) {
	course, err := s.store.GetCourse(id)
	if err != nil {
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Create(ctx context.Context, req dto.CourseRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CourseResponse{}, err
	}
	course, err := s.store.CreateCourse(ctx, toCourseInput(req))
	if err != nil && !store.IsPersistence(err) {
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), err
}

func (s *courseService) Update(ctx context.Context, id int64, req dto.CourseRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CourseResponse{}, err
	}
	course, err := s.store.UpdateCourse(ctx, id, toCourseInput(req))
	if err != nil && !store.IsPersistence(err) {
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), err
}

func (s *courseService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteCourse(ctx, id)
}

// Enroll moves the user into the course, updating both the account's course
// pointer and the roster in one pass.
func (s *courseService) Enroll(ctx context.Context, courseID, userID int64) error {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}
	if _, err := s.store.GetCourse(courseID); err != nil {
		return err
	}
	input := store.UserInput{
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		CourseID: &courseID,
		Notes:    user.Notes,
		Status:   user.Status,
	}
	_, err = s.store.UpdateUser(ctx, userID, input)
	return err
}

// Unenroll clears the user's course assignment and drops them from the
// roster.
func (s *courseService) Unenroll(ctx context.Context, courseID, userID int64) error {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}
	if user.CourseID == nil || *user.CourseID != courseID {
		return store.ErrNotFound
	}
	input := store.UserInput{
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		CourseID: nil,
		Notes:    user.Notes,
		Status:   user.Status,
	}
	_, err = s.store.UpdateUser(ctx, userID, input)
	return err
}

func toCourseInput(req dto.CourseRequest) store.CourseInput {
	return store.CourseInput{
		Code:        req.Code,
		Name:        req.Name,
		Lecturer:    req.Lecturer,
		Schedule:    req.Schedule,
		Credits:     req.Credits,
		Description: req.Description,
	}
}
