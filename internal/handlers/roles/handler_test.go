package roles

import (
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
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/handlers"
	"gitlab.com/codeprep.net/internal/testhelpers"
)

func newRouter(store *testhelpers.StaticRoleStore) (*mux.Router, *role.Service) {
	logger := logging.NewNopLogger()
	roles := role.NewService(store, rolecache.New(nil), logger, role.Options{TTL: time.Hour})
	identity := &testhelpers.StaticIdentityProvider{Tokens: map[string]domain.Identity{
		"root-token": {UserID: "root"},
		"dev-token":  {UserID: "dev"},
	}}
	router := mux.NewRouter()
	NewHandler(roles, logger).Register(router, handlers.New(identity, logger, "*"))
	return router, roles
}

func forget(router *mux.Router, userID, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/roles/"+userID+"/cache", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestForgetRole(t *testing.T) {
	store := &testhelpers.StaticRoleStore{Roles: map[string]string{"root": domain.RoleAdmin, "dev": "user"}}
	router, roles := newRouter(store)

	ok, err := roles.IsAdmin(t.Context(), "dev")
	require.NoError(t, err)
	assert.False(t, ok)
	store.Roles["dev"] = domain.RoleAdmin

	assert.Equal(t, http.StatusUnauthorized, forget(router, "dev", "").Code)
	assert.Equal(t, http.StatusForbidden, forget(router, "dev", "dev-token").Code)

	ok, _ = roles.IsAdmin(t.Context(), "dev")
	assert.False(t, ok, "cached role survives a rejected call")

	rec := forget(router, "dev", "root-token")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	ok, err = roles.IsAdmin(t.Context(), "dev")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestForgetRoleMethods(t *testing.T) {
	router, _ := newRouter(&testhelpers.StaticRoleStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/roles/dev/cache", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
