package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a persisted graded attempt of one user on one problem
type Submission struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    string           `json:"userId" db:"user_id"`
	ProblemID string           `json:"problemId" db:"problem_id"`
	Code      string           `json:"code" db:"code"`
	Language  Language         `json:"language" db:"language"`
	Passed    bool             `json:"passed" db:"passed"`
	TestCases []TestCaseResult `json:"testcases" db:"-"`
	Output    string           `json:"output" db:"output"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// NewSubmission creates a submission whose passed flag is derived from its results
func NewSubmission(userID, problemID, code string, language Language, results []TestCaseResult, output string) *Submission {
	return &Submission{
		ID:        uuid.New(),
		UserID:    userID,
		ProblemID: problemID,
		Code:      code,
		Language:  language,
		Passed:    len(results) > 0 && CountPassed(results) == len(results),
		TestCases: results,
		Output:    output,
		CreatedAt: time.Now().UTC(),
	}
}

type SubmissionTable struct {
	ID        string
	UserID    string
	ProblemID string
	Code      string
	Language  string
	Passed    string
	TestCases string
	Output    string
	CreatedAt string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:        "id",
		UserID:    "user_id",
		ProblemID: "problem_id",
		Code:      "code",
		Language:  "language",
		Passed:    "passed",
		TestCases: "testcases",
		Output:    "output",
		CreatedAt: "created_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}

// Columns lists the submission columns in insert/select order
func (t SubmissionTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ProblemID, t.Code, t.Language, t.Passed, t.TestCases, t.Output, t.CreatedAt}
}
