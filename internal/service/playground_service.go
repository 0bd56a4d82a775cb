package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/storage"
)

// PlaygroundService autosaves and restores the code editor buffer. The
// snapshot lives outside the shared document so editor keystrokes never churn
// the main payload.
type PlaygroundService interface {
	SaveSnapshot(ctx context.Context, req dto.SnapshotRequest) error
	LoadSnapshot(ctx context.Context) (dto.SnapshotResponse, error)
	ClearSnapshot(ctx context.Context) error
}

type playgroundService struct {
	backend storage.Storage
	logger  zerolog.Logger
}

// NewPlaygroundService constructs the playground service.
func NewPlaygroundService(backend storage.Storage, logger zerolog.Logger) PlaygroundService {
	return &playgroundService{
		backend: backend,
		logger:  logger.With().Str("component", "playground_service").Logger(),
	}
}

func (s *playgroundService) SaveSnapshot(ctx context.Context, req dto.SnapshotRequest) error {
	raw, err := json.Marshal(req.Source)
	if err != nil {
		return err
	}
	return s.backend.Put(ctx, storage.KeyEditorSnapshot, raw)
}

// LoadSnapshot returns the last autosave, or an empty snapshot when nothing
// has been saved yet.
func (s *playgroundService) LoadSnapshot(ctx context.Context) (dto.SnapshotResponse, error) {
	raw, err := s.backend.Get(ctx, storage.KeyEditorSnapshot)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return dto.SnapshotResponse{}, nil
	}
	if err != nil {
		return dto.SnapshotResponse{}, err
	}
	var source string
	if err := json.Unmarshal(raw, &source); err != nil {
		s.logger.Warn().Err(err).Msg("discarding corrupt editor snapshot")
		return dto.SnapshotResponse{}, nil
	}
	return dto.SnapshotResponse{Source: source}, nil
}

func (s *playgroundService) ClearSnapshot(ctx context.Context) error {
	err := s.backend.Delete(ctx, storage.KeyEditorSnapshot)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	return err
}
