package roles

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/services/role"
	"gitlab.com/codeprep.net/internal/handlers"
)

type ApiHandler struct {
	RoleService role.IRoleService
	logger      primary.Logger
}

func NewHandler(roleService role.IRoleService, logger primary.Logger) *ApiHandler {
	return &ApiHandler{
		RoleService: roleService,
		logger:      logger,
	}
}

func (api *ApiHandler) Register(r *mux.Router, mw *handlers.MiddlewareProvider) {
	r.Handle("/api/admin/roles/{userId}/cache", mw.Authenticate(http.HandlerFunc(api.ForgetRole))).
		Methods(http.MethodDelete, http.MethodOptions)
}

// ForgetRole drops a user's cached role so the next check reads their profile
func (api *ApiHandler) ForgetRole(w http.ResponseWriter, r *http.Request) {
	err := api.RoleService.ForgetAs(r.Context(), handlers.IdentityFrom(r.Context()), mux.Vars(r)["userId"])
	if err != nil {
		if code, _ := handlers.ErrorStatus(err); code >= http.StatusInternalServerError {
			api.logger.Error("Failed to drop cached role", "error", err)
		}
		handlers.ResponseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
