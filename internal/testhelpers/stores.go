package testhelpers

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var (
	_ secondary.SubmissionStore  = (*MemorySubmissionStore)(nil)
	_ secondary.IdentityProvider = (*StaticIdentityProvider)(nil)
	_ secondary.RoleStore        = (*StaticRoleStore)(nil)
)

type MemorySubmissionStore struct {
	CreateErr error

	mu   sync.Mutex
	rows []*domain.Submission
}

func (s *MemorySubmissionStore) Create(ctx context.Context, submission *domain.Submission) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *submission
	s.rows = append(s.rows, &copied)
	return nil
}

func (s *MemorySubmissionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (s *MemorySubmissionStore) ListByUser(ctx context.Context, userID, problemID string, limit int) ([]*domain.Submission, error) {
	return s.filter(func(sub *domain.Submission) bool {
		return sub.UserID == userID && (problemID == "" || sub.ProblemID == problemID)
	}, limit), nil
}

func (s *MemorySubmissionStore) ListByProblem(ctx context.Context, problemID string, limit int) ([]*domain.Submission, error) {
	return s.filter(func(sub *domain.Submission) bool {
		return sub.ProblemID == problemID
	}, limit), nil
}

func (s *MemorySubmissionStore) filter(keep func(*domain.Submission) bool, limit int) []*domain.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Submission, 0)
	for _, row := range s.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// All returns every stored submission in insertion order.
func (s *MemorySubmissionStore) All() []*domain.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Submission(nil), s.rows...)
}

// StaticIdentityProvider maps known tokens to identities.
type StaticIdentityProvider struct {
	Tokens map[string]domain.Identity
}

func (p *StaticIdentityProvider) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	identity, ok := p.Tokens[token]
	if !ok {
		return nil, errs.ErrUnauthenticated
	}
	return &identity, nil
}

type StaticRoleStore struct {
	Roles map[string]string
	Err   error

	mu    sync.Mutex
	calls int
}

func (s *StaticRoleStore) GetRole(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.Roles[userID], nil
}

func (s *StaticRoleStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
