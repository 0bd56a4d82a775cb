// Package biometric simulates the portal's face-capture hardware. A capture
// is a state machine (Idle, Capturing, Completed, Cancelled) driven by a
// periodic sampler; a real capture pipeline can replace the sampler without
// changing the contract.
package biometric

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Capture states.
const (
	StateIdle      = "Idle"
	StateCapturing = "Capturing"
	StateCompleted = "Completed"
	StateCancelled = "Cancelled"
)

// ErrCaptureInProgress is returned when a capture is started while another is
// still running.
var ErrCaptureInProgress = errors.New("capture already in progress")

// Progress is a point-in-time view of a capture session.
type Progress struct {
	State   string `json:"state"`
	Samples int    `json:"samples"`
	Total   int    `json:"total"`
	Subject int64  `json:"subject,omitempty"`
}

// CompleteFunc runs once when all samples have been collected. It receives a
// fresh context because the request that started the capture has long
// returned.
type CompleteFunc func(ctx context.Context, subject int64)

// Scanner owns at most one capture session at a time. Starting while a
// session is Capturing fails; Cancel is idempotent.
type Scanner struct {
	mu     sync.Mutex
	logger zerolog.Logger

	state   string
	samples int
	total   int
	subject int64
	token   string
	cancel  context.CancelFunc
}

// NewScanner constructs an idle scanner.
func NewScanner(logger zerolog.Logger) *Scanner {
	return &Scanner{
		logger: logger.With().Str("component", "biometric_scanner").Logger(),
		state:  StateIdle,
	}
}

// Start begins sampling for the subject: frames ticks at the given interval,
// then the completion callback. The guard token ensures a cancelled session's
// sampler can never touch a later session.
func (s *Scanner) Start(subject int64, frames int, interval time.Duration, onComplete CompleteFunc) error {
	if frames <= 0 {
		frames = 1
	}
	if interval <= 0 {
		interval = time.Millisecond
	}

	s.mu.Lock()
	if s.state == StateCapturing {
		s.mu.Unlock()
		return ErrCaptureInProgress
	}

	runCtx, cancel := context.WithCancel(context.Background())
	token := uuid.NewString()
	s.state = StateCapturing
	s.samples = 0
	s.total = frames
	s.subject = subject
	s.token = token
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx, token, subject, frames, interval, onComplete)
	return nil
}

func (s *Scanner) run(ctx context.Context, token string, subject int64, frames int, interval time.Duration, onComplete CompleteFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.token != token {
				s.mu.Unlock()
				return
			}
			s.samples++
			done := s.samples >= frames
			if done {
				s.state = StateCompleted
				s.cancel = nil
			}
			s.mu.Unlock()

			if done {
				if onComplete != nil {
					onComplete(context.Background(), subject)
				}
				return
			}
		}
	}
}

// Cancel stops a running capture. Calling it when nothing is running is a
// no-op; reports whether a session was actually cancelled.
func (s *Scanner) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCapturing {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = StateCancelled
	s.samples = 0
	s.token = ""
	s.logger.Info().Int64("subject", s.subject).Msg("capture cancelled")
	return true
}

// Progress returns the current session view.
func (s *Scanner) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Progress{
		State:   s.state,
		Samples: s.samples,
		Total:   s.total,
		Subject: s.subject,
	}
}
