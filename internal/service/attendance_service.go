package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/biometric"
	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// Campus check-in kiosk position. The simulated scanner always reports the
// kiosk coordinates.
const (
	kioskLat = 40.7128
	kioskLng = -74.0060
)

// AttendanceService drives face-scan check-ins and the attendance history.
type AttendanceService interface {
	StartScan(ctx context.Context, userID int64, force bool) error
	CancelScan(ctx context.Context) bool
	ScanStatus(ctx context.Context) dto.ScanStatusResponse
	History(ctx context.Context, filter store.AttendanceFilter) ([]dto.AttendanceResponse, error)
	Rate(ctx context.Context, userID int64) int
}

type attendanceService struct {
	store      *store.Store
	scanner    *biometric.Scanner
	scanDelay  time.Duration
	confidence float64
	logger     zerolog.Logger
}

// NewAttendanceService constructs the attendance service. scanDelay is how
// long a check-in scan runs before the match resolves.
func NewAttendanceService(st *store.Store, scanner *biometric.Scanner, scanDelay time.Duration, confidence float64, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		store:      st,
		scanner:    scanner,
		scanDelay:  scanDelay,
		confidence: confidence,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
	}
}

// StartScan begins a check-in capture for the user. The account must have an
// enrolled face descriptor, and unless force is set, at most one check-in per
// day is accepted.
func (s *attendanceService) StartScan(ctx context.Context, userID int64, force bool) error {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}
	if !user.HasFaceID() {
		return store.NewValidationError("faceDescriptor", "no face descriptor registered")
	}
	if !force && s.store.HasMarkedToday(userID) {
		return store.NewValidationError("userId", "attendance already marked today")
	}

	return s.scanner.Start(userID, 1, s.scanDelay, func(ctx context.Context, subject int64) {
		input := store.AttendanceInput{
			UserID:     subject,
			Lat:        kioskLat,
			Lng:        kioskLng,
			Confidence: s.confidence,
			Method:     "face",
			Device:     "kiosk",
		}
		if _, err := s.store.MarkAttendance(ctx, input); err != nil && !store.IsPersistence(err) {
			s.logger.Error().Err(err).Int64("user_id", subject).Msg("failed to mark attendance")
		}
	})
}

func (s *attendanceService) CancelScan(ctx context.Context) bool {
	return s.scanner.Cancel()
}

func (s *attendanceService) ScanStatus(ctx context.Context) dto.ScanStatusResponse {
	progress := s.scanner.Progress()
	return dto.ScanStatusResponse{
		State:   progress.State,
		Samples: progress.Samples,
		Total:   progress.Total,
	}
}

func (s *attendanceService) History(ctx context.Context, filter store.AttendanceFilter) ([]dto.AttendanceResponse, error) {
	return dto.NewAttendanceResponses(s.store.ListAttendance(filter)), nil
}

func (s *attendanceService) Rate(ctx context.Context, userID int64) int {
	return s.store.AttendanceRate(userID)
}
