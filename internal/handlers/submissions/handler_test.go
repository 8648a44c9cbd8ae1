package submissions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeprep.net/internal/adapter/logging"
	"gitlab.com/codeprep.net/internal/adapter/memory/rolecache"
	"gitlab.com/codeprep.net/internal/core/services/role"
	"gitlab.com/codeprep.net/internal/core/services/submission"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/handlers"
	"gitlab.com/codeprep.net/internal/testhelpers"
)

type fixture struct {
	store  *testhelpers.MemorySubmissionStore
	router *mux.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logging.NewNopLogger()
	store := &testhelpers.MemorySubmissionStore{}
	roles := role.NewService(
		&testhelpers.StaticRoleStore{Roles: map[string]string{"root": domain.RoleAdmin}},
		rolecache.New(nil), logger, role.Options{TTL: time.Minute},
	)
	identity := &testhelpers.StaticIdentityProvider{Tokens: map[string]domain.Identity{
		"alice-token": {UserID: "alice"},
		"bob-token":   {UserID: "bob"},
		"root-token":  {UserID: "root"},
	}}

	router := mux.NewRouter()
	NewHandler(submission.NewService(store, roles, logger), logger).
		Register(router, handlers.New(identity, logger, "*"))
	return &fixture{store: store, router: router}
}

func (f *fixture) seed(t *testing.T, userID, problemID string) *domain.Submission {
	t.Helper()
	sub := domain.NewSubmission(userID, problemID, "code", domain.LanguageJava, nil, "0/0 test cases passed")
	require.NoError(t, f.store.Create(t.Context(), sub))
	return sub
}

func (f *fixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestGetSubmission(t *testing.T) {
	f := newFixture(t)
	sub := f.seed(t, "alice", "two-sum")
	path := "/api/submissions/" + sub.ID.String()

	rec := f.get(path, "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, "two-sum", got.ProblemID)

	assert.Equal(t, http.StatusNotFound, f.get(path, "bob-token").Code)
	assert.Equal(t, http.StatusOK, f.get(path, "root-token").Code)
	assert.Equal(t, http.StatusUnauthorized, f.get(path, "").Code)
	assert.Equal(t, http.StatusBadRequest, f.get("/api/submissions/not-a-uuid", "alice-token").Code)
}

func TestListMine(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "alice", "two-sum")
	f.seed(t, "alice", "fizzbuzz")
	f.seed(t, "bob", "two-sum")

	rec := f.get("/api/submissions?problem_id=two-sum", "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)

	var out ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Submissions, 1)
	assert.Equal(t, "alice", out.Submissions[0].UserID)
}

func TestListForProblemIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "alice", "two-sum")
	f.seed(t, "bob", "two-sum")

	rec := f.get("/api/admin/submissions?problem_id=two-sum", "alice-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())

	rec = f.get("/api/admin/submissions", "root-token")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.get("/api/admin/submissions?problem_id=two-sum&limit=1", "root-token")
	require.Equal(t, http.StatusOK, rec.Code)
	var out ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Submissions, 1)
}
