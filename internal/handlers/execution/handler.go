package execution

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/services/grader"
	"gitlab.com/codeprep.net/internal/core/services/runner"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/handlers"
	"gitlab.com/codeprep.net/internal/handlers/response"
)

type Handler struct {
	runner runner.ICodeRunner
	grader grader.ISolutionGrader
	logger primary.Logger
}

func NewHandler(runner runner.ICodeRunner, grader grader.ISolutionGrader, logger primary.Logger) *Handler {
	return &Handler{
		runner: runner,
		grader: grader,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/run", h.Run).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/submit", h.Submit).Methods(http.MethodPost, http.MethodOptions)
}

// Run executes ad hoc code and returns the raw sandbox output
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, handlers.MaxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode run request", "error", err)
		response.WriteJSON(w, http.StatusBadRequest, RunErrorResponse{
			Error:  "Failed to execute code",
			Stderr: "request body must be a JSON object",
		})
		return
	}

	result, err := h.runner.Run(r.Context(), runner.RunRequest{
		Code:     req.Code,
		Language: req.Language,
		Input:    req.Input,
	})
	if err != nil {
		h.logger.Error("Failed to execute code", "language", req.Language, "error", err)
		code, message := handlers.ErrorStatus(err)
		detail := message
		if code == http.StatusBadRequest {
			detail = err.Error()
		}
		response.WriteJSON(w, code, RunErrorResponse{Error: "Failed to execute code", Stderr: detail})
		return
	}

	response.WriteSuccess(w, result)
}

// Submit grades code against the supplied test cases and persists the attempt
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, handlers.MaxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode submit request", "error", err)
		writeSubmitError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	result, err := h.grader.Grade(r.Context(), grader.GradeRequest{
		Code:        req.Code,
		Language:    req.Language,
		ProblemID:   req.ProblemID,
		TestCases:   req.TestCases,
		InputSchema: req.InputSchema,
	}, handlers.BearerToken(r))
	if err != nil {
		code, message := handlers.ErrorStatus(err)
		if code >= http.StatusInternalServerError {
			h.logger.Error("Failed to grade submission", "problemId", req.ProblemID, "error", err)
		}
		writeSubmitError(w, code, message)
		return
	}

	response.WriteSuccess(w, SubmitResponse{
		SubmissionID: &result.SubmissionID,
		Passed:       result.Passed,
		TestResults:  result.TestResults,
		PassedTests:  result.PassedCount,
		TotalTests:   result.TotalCount,
		Message:      result.Message,
	})
}

func writeSubmitError(w http.ResponseWriter, code int, message string) {
	response.WriteJSON(w, code, SubmitResponse{
		Error:       message,
		TestResults: []domain.TestCaseResult{},
	})
}
