package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

type countingRunner struct {
	calls    atomic.Int32
	err      error
	deadline atomic.Bool
}

func (r *countingRunner) Execute(ctx context.Context) (*entity.ReportSnapshot, error) {
	r.calls.Add(1)
	if _, ok := ctx.Deadline(); ok {
		r.deadline.Store(true)
	}
	if r.err != nil {
		return nil, r.err
	}
	return &entity.ReportSnapshot{ID: uuid.New()}, nil
}

func TestScheduler_Start(t *testing.T) {
	t.Run("rejects invalid schedule", func(t *testing.T) {
		s := NewScheduler(&countingRunner{}, "every tuesday", time.Second, nil)
		assert.Error(t, s.Start())
	})

	t.Run("runs on schedule", func(t *testing.T) {
		runner := &countingRunner{}
		s := NewScheduler(runner, "@every 1s", time.Second, time.UTC)
		require.NoError(t, s.Start())
		defer s.Stop()

		assert.Eventually(t, func() bool { return runner.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	})
}

func TestScheduler_TakeSnapshot(t *testing.T) {
	t.Run("bounds the run with a timeout", func(t *testing.T) {
		runner := &countingRunner{}
		s := NewScheduler(runner, "0 1 * * *", time.Minute, nil)

		s.takeSnapshot()

		assert.Equal(t, int32(1), runner.calls.Load())
		assert.True(t, runner.deadline.Load())
	})

	t.Run("survives runner errors", func(t *testing.T) {
		runner := &countingRunner{err: errors.New("database unavailable")}
		s := NewScheduler(runner, "0 1 * * *", time.Minute, nil)

		assert.NotPanics(t, s.takeSnapshot)
		assert.Equal(t, int32(1), runner.calls.Load())
	})
}
