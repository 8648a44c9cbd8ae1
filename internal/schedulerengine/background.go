package schedulerengine

import (
	"context"
	"sync"
	"time"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
)

// Sweeper evicts stale entries from an in-process store
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

type SweepEngine struct {
	interval time.Duration
	sweepers map[string]Sweeper
	logger   primary.Logger
	wg       sync.WaitGroup
}

func NewSweepEngine(interval time.Duration, logger primary.Logger) *SweepEngine {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SweepEngine{
		interval: interval,
		sweepers: make(map[string]Sweeper),
		logger:   logger,
	}
}

// Register adds a named sweeper; call before Start
func (s *SweepEngine) Register(name string, sweeper Sweeper) {
	s.sweepers[name] = sweeper
}

// Start runs every sweeper once per interval until ctx is done
func (s *SweepEngine) Start(ctx context.Context) {
	if len(s.sweepers) == 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepOnce(ctx)
			}
		}
	}()
}

// Wait blocks until the loop started by Start has returned
func (s *SweepEngine) Wait() {
	s.wg.Wait()
}

func (s *SweepEngine) SweepOnce(ctx context.Context) {
	for name, sweeper := range s.sweepers {
		removed, err := sweeper.Sweep(ctx)
		if err != nil {
			s.logger.Error("Failed to sweep", "store", name, "error", err)
			continue
		}
		if removed > 0 {
			s.logger.Debug("Swept expired entries", "store", name, "count", removed)
		}
	}
}
