// Package submissionrepository stores graded submissions in PostgreSQL
package submissionrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	querybuilder "gitlab.com/codeprep.net/internal/utils"
)

var _ secondary.SubmissionStore = (*SubmissionRepository)(nil)

const defaultListLimit = 50

type submissionRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	ProblemID string    `db:"problem_id"`
	Code      string    `db:"code"`
	Language  string    `db:"language"`
	Passed    bool      `db:"passed"`
	TestCases []byte    `db:"testcases"`
	Output    string    `db:"output"`
	CreatedAt time.Time `db:"created_at"`
}

func (r submissionRow) toDomain() (*domain.Submission, error) {
	sub := &domain.Submission{
		ID:        r.ID,
		UserID:    r.UserID,
		ProblemID: r.ProblemID,
		Code:      r.Code,
		Language:  domain.Language(r.Language),
		Passed:    r.Passed,
		Output:    r.Output,
		CreatedAt: r.CreatedAt,
	}
	if len(r.TestCases) > 0 {
		if err := json.Unmarshal(r.TestCases, &sub.TestCases); err != nil {
			return nil, fmt.Errorf("failed to unmarshal testcases: %w", err)
		}
	}
	return sub, nil
}

// pgText removes NUL bytes; Postgres text and jsonb values cannot contain them
func pgText(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func pgTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := pgText(*s)
	return &clean
}

func pgTestCases(results []domain.TestCaseResult) []domain.TestCaseResult {
	out := make([]domain.TestCaseResult, len(results))
	for i, r := range results {
		r.Expected = pgText(r.Expected)
		r.Actual = pgTextPtr(r.Actual)
		r.Error = pgTextPtr(r.Error)
		out[i] = r
	}
	return out
}

// SubmissionRepository implements the SubmissionStore interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	if schema == "" {
		schema = "public"
	}
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// Create inserts one submission row; rows are never updated afterwards
func (r *SubmissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	testCasesJSON, err := json.Marshal(pgTestCases(sub.TestCases))
	if err != nil {
		r.logger.Error("Failed to marshal testcases", "submissionId", sub.ID, "error", err)
		return fmt.Errorf("failed to marshal testcases: %w", err)
	}

	tbl := domain.GetSubmissionTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.TableName()).
		Values(
			sub.ID, sub.UserID, sub.ProblemID, pgText(sub.Code), string(sub.Language),
			sub.Passed, string(testCasesJSON), pgText(sub.Output), sub.CreatedAt,
		).
		Build()
	if err != nil {
		return err
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save submission", "submissionId", sub.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// Get retrieves a submission by ID
func (r *SubmissionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()
	if err != nil {
		return nil, err
	}

	var row submissionRow
	err = r.db.GetContext(ctx, &row, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "submissionId", id, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return row.toDomain()
}

// ListByUser retrieves a user's submissions, newest first
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID, problemID string, limit int) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID)
	if problemID != "" {
		qb = qb.And(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID)
	}
	return r.list(ctx, qb, limit)
}

// ListByProblem retrieves all submissions for a problem, newest first
func (r *SubmissionRepository) ListByProblem(ctx context.Context, problemID string, limit int) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID)
	return r.list(ctx, qb, limit)
}

func (r *SubmissionRepository) list(ctx context.Context, qb querybuilder.QueryBuilder, limit int) ([]*domain.Submission, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	query, args, err := qb.
		OrderBy(domain.GetSubmissionTable().CreatedAt, false).
		Limit(limit).
		Build()
	if err != nil {
		return nil, err
	}

	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to list submissions", "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	subs := make([]*domain.Submission, 0, len(rows))
	for _, row := range rows {
		sub, err := row.toDomain()
		if err != nil {
			r.logger.Error("Failed to decode submission", "submissionId", row.ID, "error", err)
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
