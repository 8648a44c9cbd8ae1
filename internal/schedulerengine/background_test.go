package schedulerengine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gitlab.com/codeprep.net/internal/adapter/logging"
)

type countingSweeper struct {
	calls atomic.Int64
	err   error
}

func (c *countingSweeper) Sweep(ctx context.Context) (int, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestSweepOnceVisitsEverySweeper(t *testing.T) {
	engine := NewSweepEngine(time.Minute, logging.NewNopLogger())
	ok := &countingSweeper{}
	failing := &countingSweeper{err: errors.New("boom")}
	engine.Register("ok", ok)
	engine.Register("failing", failing)

	engine.SweepOnce(t.Context())

	assert.Equal(t, int64(1), ok.calls.Load())
	assert.Equal(t, int64(1), failing.calls.Load())
}

func TestStartStopsWithContext(t *testing.T) {
	engine := NewSweepEngine(5*time.Millisecond, logging.NewNopLogger())
	sweeper := &countingSweeper{}
	engine.Register("roles", sweeper)

	ctx, cancel := context.WithCancel(t.Context())
	engine.Start(ctx)

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	engine.Wait()
}
