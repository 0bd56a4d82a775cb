package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// AuthService authenticates portal accounts and manages the single session.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context) error
	TouchActivity(ctx context.Context) error
	ExpireIfIdle(ctx context.Context) (bool, error)
}

type authService struct {
	store          *store.Store
	validator      *validator.Validate
	jwtSecret      string
	sessionTimeout time.Duration
	logger         zerolog.Logger
}

// NewAuthService constructs the authentication service.
func NewAuthService(st *store.Store, validate *validator.Validate, jwtSecret string, sessionTimeout time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		store:          st,
		validator:      validate,
		jwtSecret:      jwtSecret,
		sessionTimeout: sessionTimeout,
		logger:         logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.store.Login(ctx, req.Username, req.Password)
	if err != nil && !store.IsPersistence(err) {
		return dto.LoginResponse{}, err
	}
	if store.IsPersistence(err) {
		s.logger.Warn().Err(err).Msg("login succeeded but persistence is degraded")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.sessionTimeout).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	if err := s.store.TouchActivity(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to stamp activity at login")
	}

	return dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.store.Logout(ctx)
}

func (s *authService) TouchActivity(ctx context.Context) error {
	return s.store.TouchActivity(ctx)
}

func (s *authService) ExpireIfIdle(ctx context.Context) (bool, error) {
	return s.store.ExpireIfIdle(ctx, s.sessionTimeout.Milliseconds())
}
