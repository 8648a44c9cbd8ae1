package execution

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeprep.net/internal/adapter/logging"
	"gitlab.com/codeprep.net/internal/core/services/grader"
	"gitlab.com/codeprep.net/internal/core/services/runner"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
	"gitlab.com/codeprep.net/internal/testhelpers"
)

type fixture struct {
	sandbox *testhelpers.FakeSandbox
	store   *testhelpers.MemorySubmissionStore
	router  *mux.Router
}

func newFixture(execute func(domain.ExecutionRequest) (*domain.ExecutionResult, error)) *fixture {
	f := &fixture{
		sandbox: &testhelpers.FakeSandbox{Execute: execute},
		store:   &testhelpers.MemorySubmissionStore{},
		router:  mux.NewRouter(),
	}
	logger := logging.NewNopLogger()
	identity := &testhelpers.StaticIdentityProvider{Tokens: map[string]domain.Identity{
		"good": {UserID: "user-1"},
	}}
	NewHandler(
		runner.NewCodeRunner(f.sandbox, logger, runner.Options{MaxWait: 10 * time.Second}),
		grader.NewSolutionGrader(f.sandbox, f.store, identity, logger, grader.Options{MaxWait: 15 * time.Second, MaxConcurrency: 4}),
		logger,
	).RegisterRoutes(f.router)
	return f
}

func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRunReturnsRawOutput(t *testing.T) {
	f := newFixture(func(req domain.ExecutionRequest) (*domain.ExecutionResult, error) {
		return testhelpers.Accepted(req.Stdin + "\n"), nil
	})

	rec := f.do(http.MethodPost, "/api/run", `{"code":"print(input())","language":"python","input":"hi"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "hi\n", body["stdout"])
	assert.Nil(t, body["stderr"])
	assert.Nil(t, body["compile_output"])
	assert.Equal(t, float64(domain.StatusAccepted), body["status"].(map[string]interface{})["id"])
	assert.Equal(t, "0.01", body["time"])
	assert.Equal(t, float64(1024), body["memory"])
}

func TestRunReportsCompileErrorsAsResults(t *testing.T) {
	f := newFixture(func(domain.ExecutionRequest) (*domain.ExecutionResult, error) {
		return testhelpers.CompileError("main.cpp:1: error"), nil
	})

	rec := f.do(http.MethodPost, "/api/run", `{"code":"int main(","language":"cpp"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "main.cpp:1: error", decode(t, rec)["compile_output"])
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		execute func(domain.ExecutionRequest) (*domain.ExecutionResult, error)
		code    int
		stderr  string
	}{
		{
			name:   "unsupported language",
			body:   `{"code":"x","language":"cobol"}`,
			code:   http.StatusBadRequest,
			stderr: "unsupported language: cobol",
		},
		{
			name:   "malformed body",
			body:   `{"code":`,
			code:   http.StatusBadRequest,
			stderr: "request body must be a JSON object",
		},
		{
			name: "sandbox down",
			body: `{"code":"x","language":"python"}`,
			execute: func(domain.ExecutionRequest) (*domain.ExecutionResult, error) {
				return nil, &errs.SandboxError{StatusCode: 503, Body: "upstream trace"}
			},
			code:   http.StatusBadGateway,
			stderr: "Sandbox unavailable",
		},
		{
			name: "timeout",
			body: `{"code":"x","language":"python"}`,
			execute: func(domain.ExecutionRequest) (*domain.ExecutionResult, error) {
				return nil, errs.ErrExecutionTimeout
			},
			code:   http.StatusGatewayTimeout,
			stderr: "Execution timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.execute)
			rec := f.do(http.MethodPost, "/api/run", tt.body, "")
			require.Equal(t, tt.code, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, "Failed to execute code", body["error"])
			assert.Equal(t, tt.stderr, body["stderr"])
			assert.NotContains(t, rec.Body.String(), "upstream trace")
		})
	}
}

func TestSubmitGradesAndPersists(t *testing.T) {
	f := newFixture(func(req domain.ExecutionRequest) (*domain.ExecutionResult, error) {
		if req.Stdin == "2 3" {
			return testhelpers.Accepted("5\n"), nil
		}
		return testhelpers.Accepted("0"), nil
	})

	rec := f.do(http.MethodPost, "/api/submit", `{
		"code": "print(sum(map(int, input().split())))",
		"language": "python",
		"problemId": "add",
		"testCases": [
			{"input": "2 3", "expectedOutput": "5"},
			{"input": "1 1", "expectedOutput": "2"}
		]
	}`, "good")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.NotEmpty(t, body["submissionId"])
	assert.Equal(t, false, body["passed"])
	assert.Equal(t, float64(1), body["passedTests"])
	assert.Equal(t, float64(2), body["totalTests"])
	assert.Equal(t, "1/2 test cases passed", body["message"])
	assert.NotContains(t, body, "error")

	results := body["testResults"].([]interface{})
	require.Len(t, results, 2)
	first := results[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["testCase"])
	assert.Equal(t, true, first["passed"])
	assert.Equal(t, "5", first["actual"])

	require.Len(t, f.store.All(), 1)
	assert.Equal(t, "user-1", f.store.All()[0].UserID)
}

func TestSubmitFailureEnvelope(t *testing.T) {
	validBody := `{"code":"x","language":"python","problemId":"add","testCases":[{"input":"1","expectedOutput":"1"}]}`

	tests := []struct {
		name    string
		body    string
		token   string
		saveErr error
		code    int
		message string
	}{
		{name: "missing token", body: validBody, code: http.StatusUnauthorized, message: "Unauthorized"},
		{name: "unknown token", body: validBody, token: "bad", code: http.StatusUnauthorized, message: "Unauthorized"},
		{name: "no test cases", body: `{"code":"x","language":"python","problemId":"add","testCases":[]}`, token: "good", code: http.StatusBadRequest, message: "Invalid request"},
		{name: "bad language", body: `{"code":"x","language":"rust","problemId":"add","testCases":[{"input":"1","expectedOutput":"1"}]}`, token: "good", code: http.StatusBadRequest, message: "Unsupported language"},
		{name: "store down", body: validBody, token: "good", saveErr: errors.New("db down"), code: http.StatusInternalServerError, message: "Failed to save submission"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			f.store.CreateErr = tt.saveErr

			rec := f.do(http.MethodPost, "/api/submit", tt.body, tt.token)
			require.Equal(t, tt.code, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, tt.message, body["error"])
			assert.Equal(t, false, body["passed"])
			assert.Equal(t, []interface{}{}, body["testResults"])
			assert.Equal(t, float64(0), body["passedTests"])
			assert.Equal(t, float64(0), body["totalTests"])
			assert.NotContains(t, body, "submissionId")
		})
	}
}

func TestSubmitUnauthenticatedNeverReachesSandbox(t *testing.T) {
	f := newFixture(nil)
	f.do(http.MethodPost, "/api/submit", `{"code":"x","language":"python","problemId":"add","testCases":[{"input":"1","expectedOutput":"1"}]}`, "")
	assert.Zero(t, f.sandbox.Submissions())
}
