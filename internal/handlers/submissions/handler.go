package submissions

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/services/submission"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/handlers"
	"gitlab.com/codeprep.net/internal/handlers/response"
)

type ListResponse struct {
	Submissions []*domain.Submission `json:"submissions"`
}

type ApiHandler struct {
	SubmissionService submission.ISubmissionService
	logger            primary.Logger
}

func NewHandler(submissionService submission.ISubmissionService, logger primary.Logger) *ApiHandler {
	return &ApiHandler{
		SubmissionService: submissionService,
		logger:            logger,
	}
}

// Register mounts the history routes behind the authentication middleware
func (api *ApiHandler) Register(r *mux.Router, mw *handlers.MiddlewareProvider) {
	r.Handle("/api/submissions", mw.Authenticate(http.HandlerFunc(api.ListMine))).
		Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/api/submissions/{id}", mw.Authenticate(http.HandlerFunc(api.Get))).
		Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/api/admin/submissions", mw.Authenticate(http.HandlerFunc(api.ListForProblem))).
		Methods(http.MethodGet, http.MethodOptions)
}

func (api *ApiHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "Invalid submission id", StatusCode: http.StatusBadRequest})
		return
	}

	sub, err := api.SubmissionService.Get(r.Context(), handlers.IdentityFrom(r.Context()), id)
	if err != nil {
		api.fail(w, "Failed to get submission", err)
		return
	}

	response.WriteSuccess(w, sub)
}

func (api *ApiHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	subs, err := api.SubmissionService.ListMine(r.Context(), handlers.IdentityFrom(r.Context()),
		r.URL.Query().Get("problem_id"), limitParam(r))
	if err != nil {
		api.fail(w, "Failed to list submissions", err)
		return
	}

	response.WriteSuccess(w, ListResponse{Submissions: subs})
}

func (api *ApiHandler) ListForProblem(w http.ResponseWriter, r *http.Request) {
	subs, err := api.SubmissionService.ListForProblem(r.Context(), handlers.IdentityFrom(r.Context()),
		r.URL.Query().Get("problem_id"), limitParam(r))
	if err != nil {
		api.fail(w, "Failed to list problem submissions", err)
		return
	}

	response.WriteSuccess(w, ListResponse{Submissions: subs})
}

func (api *ApiHandler) fail(w http.ResponseWriter, msg string, err error) {
	if code, _ := handlers.ErrorStatus(err); code >= http.StatusInternalServerError {
		api.logger.Error(msg, "error", err)
	}
	handlers.ResponseError(w, err)
}

func limitParam(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}
