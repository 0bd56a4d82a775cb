package biometric

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestScannerCompletesAfterAllFrames(t *testing.T) {
	scanner := NewScanner(zerolog.Nop())

	var completed atomic.Int64
	err := scanner.Start(7, 3, time.Millisecond, func(_ context.Context, subject int64) {
		completed.Store(subject)
	})
	require.NoError(t, err)

	waitFor(t, func() bool { return scanner.Progress().State == StateCompleted })

	progress := scanner.Progress()
	require.Equal(t, 3, progress.Samples)
	require.Equal(t, 3, progress.Total)
	require.Equal(t, int64(7), progress.Subject)
	require.Equal(t, int64(7), completed.Load())
}

func TestScannerRejectsConcurrentStart(t *testing.T) {
	scanner := NewScanner(zerolog.Nop())

	require.NoError(t, scanner.Start(1, 100, 50*time.Millisecond, nil))
	err := scanner.Start(2, 1, time.Millisecond, nil)
	require.ErrorIs(t, err, ErrCaptureInProgress)

	require.True(t, scanner.Cancel())
}

func TestScannerCancelIsIdempotent(t *testing.T) {
	scanner := NewScanner(zerolog.Nop())

	require.False(t, scanner.Cancel())

	require.NoError(t, scanner.Start(5, 100, 50*time.Millisecond, nil))
	require.True(t, scanner.Cancel())
	require.False(t, scanner.Cancel())
	require.Equal(t, StateCancelled, scanner.Progress().State)
}

func TestScannerCancelledSamplerNeverCompletes(t *testing.T) {
	scanner := NewScanner(zerolog.Nop())

	var completions atomic.Int32
	require.NoError(t, scanner.Start(1, 2, 20*time.Millisecond, func(context.Context, int64) {
		completions.Add(1)
	}))
	require.True(t, scanner.Cancel())

	// Start a second session after cancelling; only it may complete.
	require.NoError(t, scanner.Start(2, 1, time.Millisecond, func(context.Context, int64) {
		completions.Add(1)
	}))
	waitFor(t, func() bool { return scanner.Progress().State == StateCompleted })

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), completions.Load())
}

func TestScannerCanRestartAfterCompletion(t *testing.T) {
	scanner := NewScanner(zerolog.Nop())

	require.NoError(t, scanner.Start(1, 1, time.Millisecond, nil))
	waitFor(t, func() bool { return scanner.Progress().State == StateCompleted })

	require.NoError(t, scanner.Start(2, 1, time.Millisecond, nil))
	waitFor(t, func() bool {
		p := scanner.Progress()
		return p.State == StateCompleted && p.Subject == 2
	})
}
