// Package testhelpers holds in-memory doubles of the secondary ports.
package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
)

var _ secondary.ExecutionSandbox = (*FakeSandbox)(nil)

// FakeSandbox answers Submit/AwaitResult from a function of the request.
type FakeSandbox struct {
	// Execute produces the outcome for a request; nil results with nil
	// error are reported as accepted with empty stdout.
	Execute func(req domain.ExecutionRequest) (*domain.ExecutionResult, error)
	// SubmitErr fails every Submit call when set.
	SubmitErr error
	// Delay is slept inside AwaitResult before answering.
	Delay time.Duration

	mu       sync.Mutex
	requests map[string]domain.ExecutionRequest
	waits    []time.Duration
	seq      atomic.Int64

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func (f *FakeSandbox) Submit(ctx context.Context, req domain.ExecutionRequest) (string, error) {
	if f.SubmitErr != nil {
		return "", f.SubmitErr
	}
	token := fmt.Sprintf("tok-%d", f.seq.Add(1))
	f.mu.Lock()
	if f.requests == nil {
		f.requests = make(map[string]domain.ExecutionRequest)
	}
	f.requests[token] = req
	f.mu.Unlock()
	return token, nil
}

func (f *FakeSandbox) AwaitResult(ctx context.Context, token string, maxWait time.Duration) (*domain.ExecutionResult, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		max := f.maxInFlight.Load()
		if n <= max || f.maxInFlight.CompareAndSwap(max, n) {
			break
		}
	}

	f.mu.Lock()
	req, ok := f.requests[token]
	f.waits = append(f.waits, maxWait)
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown token %s", token)
	}

	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.Delay):
		}
	}

	if f.Execute == nil {
		return Accepted(""), nil
	}
	result, err := f.Execute(req)
	if err == nil && result == nil {
		return Accepted(""), nil
	}
	return result, err
}

// Submissions returns how many jobs were created.
func (f *FakeSandbox) Submissions() int {
	return int(f.seq.Load())
}

// Requests returns the created jobs' requests in submission order.
func (f *FakeSandbox) Requests() []domain.ExecutionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ExecutionRequest, 0, len(f.requests))
	for i := int64(1); i <= f.seq.Load(); i++ {
		if req, ok := f.requests[fmt.Sprintf("tok-%d", i)]; ok {
			out = append(out, req)
		}
	}
	return out
}

// Waits returns the maxWait values passed to AwaitResult.
func (f *FakeSandbox) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.waits...)
}

// MaxInFlight is the highest number of concurrent AwaitResult calls seen.
func (f *FakeSandbox) MaxInFlight() int {
	return int(f.maxInFlight.Load())
}

func Accepted(stdout string) *domain.ExecutionResult {
	elapsed, mem := "0.01", int64(1024)
	return &domain.ExecutionResult{
		Stdout: &stdout,
		Status: domain.SandboxStatus{ID: domain.StatusAccepted, Description: "Accepted"},
		Time:   &elapsed,
		Memory: &mem,
	}
}

func CompileError(output string) *domain.ExecutionResult {
	return &domain.ExecutionResult{
		CompileOutput: &output,
		Status:        domain.SandboxStatus{ID: domain.StatusCompilationError, Description: "Compilation Error"},
	}
}

func RuntimeError(stderr string) *domain.ExecutionResult {
	return &domain.ExecutionResult{
		Stderr: &stderr,
		Status: domain.SandboxStatus{ID: domain.StatusRuntimeErrorNZEC, Description: "Runtime Error (NZEC)"},
	}
}
