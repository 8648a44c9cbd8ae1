package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/services/grader"
	"gitlab.com/codeprep.net/internal/core/services/role"
	"gitlab.com/codeprep.net/internal/core/services/runner"
	"gitlab.com/codeprep.net/internal/core/services/submission"
	"gitlab.com/codeprep.net/internal/handlers"
	"gitlab.com/codeprep.net/internal/handlers/execution"
	"gitlab.com/codeprep.net/internal/handlers/roles"
	"gitlab.com/codeprep.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	runnerService     runner.ICodeRunner
	graderService     grader.ISolutionGrader
	submissionService submission.ISubmissionService
	roleService       role.IRoleService
}

func NewServiceProvider(
	runnerService runner.ICodeRunner,
	graderService grader.ISolutionGrader,
	submissionService submission.ISubmissionService,
	roleService role.IRoleService,
) *ServiceProvider {
	return &ServiceProvider{
		runnerService:     runnerService,
		graderService:     graderService,
		submissionService: submissionService,
		roleService:       roleService,
	}
}

const defaultWriteTimeout = 90 * time.Second

type Server struct {
	router *mux.Router
	srv    *http.Server
	Port   int
	// WriteTimeout raises the response deadline when a grading call can outlast the default
	WriteTimeout    time.Duration
	ServiceName     string
	ServiceProvider ServiceProvider
	middleware      *handlers.MiddlewareProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, middleware *handlers.MiddlewareProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		middleware:      middleware,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.middleware == nil {
		return errors.New("http server: middleware provider is required")
	}
	r := mux.NewRouter()
	r.Use(mux.CORSMethodMiddleware(r), s.middleware.CORS)

	r.HandleFunc("/healthz", handlers.Health).Methods(http.MethodGet)
	execution.
		NewHandler(s.ServiceProvider.runnerService, s.ServiceProvider.graderService, s.logger).
		RegisterRoutes(r)
	submissions.
		NewHandler(s.ServiceProvider.submissionService, s.logger).
		Register(r, s.middleware)
	roles.
		NewHandler(s.ServiceProvider.roleService, s.logger).
		Register(r, s.middleware)

	s.router = r
	return nil
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newHTTPServer(ctx context.Context) *http.Server {
	// grading waits on the sandbox for every test case, so writes get more room than reads
	writeTimeout := defaultWriteTimeout
	if s.WriteTimeout > writeTimeout {
		writeTimeout = s.WriteTimeout
	}
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func (s *Server) Start(ctx context.Context) <-chan error {
	s.srv = s.newHTTPServer(ctx)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("Server listening", "service", s.ServiceName, "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
	}()
	return errCh
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
