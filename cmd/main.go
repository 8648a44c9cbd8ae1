package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/codeprep.net/internal/adapter/authapi"
	"gitlab.com/codeprep.net/internal/adapter/crypto"
	"gitlab.com/codeprep.net/internal/adapter/judge0"
	"gitlab.com/codeprep.net/internal/adapter/logging"
	memrolecache "gitlab.com/codeprep.net/internal/adapter/memory/rolecache"
	"gitlab.com/codeprep.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codeprep.net/internal/adapter/postgres/userrepository"
	redisrolecache "gitlab.com/codeprep.net/internal/adapter/redis/rolecache"
	"gitlab.com/codeprep.net/internal/config"
	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/core/services/grader"
	"gitlab.com/codeprep.net/internal/core/services/role"
	"gitlab.com/codeprep.net/internal/core/services/runner"
	"gitlab.com/codeprep.net/internal/core/services/submission"
	logger2 "gitlab.com/codeprep.net/internal/global/logger"
	"gitlab.com/codeprep.net/internal/handlers"
	http2 "gitlab.com/codeprep.net/internal/http"
	"gitlab.com/codeprep.net/internal/schedulerengine"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	if sysCfg.DebugMode {
		logger2.Use(logging.NewDebugZapLogger())
	}
	logger := logger2.Logger
	defer logger.Sync()
	logger2.Info("Starting execution relay service")

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	defer db.Close()

	// SECONDARY PORTS
	sandbox := judge0.NewClient(sysCfg.SandboxConfig, logger)
	submissionStore := submissionrepository.NewSubmissionRepository(db, logger, sysCfg.PostgresConfig.Schema)
	roleStore := userrepository.New(db, logger, sysCfg.PostgresConfig.Schema)
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	sweepEngine := schedulerengine.NewSweepEngine(sysCfg.RoleCacheConfig.SweepInterval, logger)
	roleCache, closeCache := setupRoleCache(sysCfg, sweepEngine, logger)
	defer closeCache()
	sweepEngine.Start(bgCtx)
	identity := setupIdentity(sysCfg, logger)

	//services
	runnerSvc := runner.NewCodeRunner(sandbox, logger, runner.Options{
		MaxWait: sysCfg.SandboxConfig.RunMaxWait,
	})
	graderOpts := grader.Options{
		MaxWait:        sysCfg.SandboxConfig.GradeMaxWait,
		MaxConcurrency: sysCfg.GraderConfig.MaxConcurrency,
		MaxTestCases:   sysCfg.GraderConfig.MaxTestCases,
		RequestTimeout: sysCfg.SandboxConfig.RequestTimeout,
	}
	graderSvc := grader.NewSolutionGrader(sandbox, submissionStore, identity, logger, graderOpts)
	gradeBudget := graderOpts.Budget() + 5*time.Second
	roleSvc := role.NewService(roleStore, roleCache, logger, role.Options{TTL: sysCfg.RoleCacheConfig.TTL})
	submissionSvc := submission.NewService(submissionStore, roleSvc, logger)
	serviceProvider := http2.NewServiceProvider(runnerSvc, graderSvc, submissionSvc, roleSvc)

	//server
	middleware := handlers.New(identity, logger, sysCfg.CorsAllowedOrigin)
	httpServer := http2.NewServer(sysCfg.HttpPort, "executionRelay", *serviceProvider, middleware, logger)
	httpServer.WriteTimeout = gradeBudget
	if err := httpServer.Init(); err != nil {
		log.Fatalf("Failed to init http server: %v", err)
	}
	serverErr := httpServer.Start(context.Background())

	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server stopped unexpectedly", "error", err)
		}
	}
	logger.Info("Shutting down server...")

	// in-flight gradings keep polling the sandbox, give them their full budget
	ctx, cancel := context.WithTimeout(context.Background(), gradeBudget)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	stopBackground()
	sweepEngine.Wait()

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// setupRoleCache picks the role cache backend; redis is shared between replicas
func setupRoleCache(cfg *config.AppConfig, sweepEngine *schedulerengine.SweepEngine, logger primary.Logger) (secondary.RoleCache, func()) {
	if cfg.RoleCacheConfig.Backend != "redis" {
		cache := memrolecache.New(time.Now)
		sweepEngine.Register("roles", cache)
		return cache, func() {}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConfig.Url,
		Password: cfg.RedisConfig.Password,
		DB:       cfg.RedisConfig.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, role lookups will hit the database", "addr", cfg.RedisConfig.Url, "error", err)
	}
	return redisrolecache.NewRoleRepository(redisClient, logger), func() { _ = redisClient.Close() }
}

func setupIdentity(cfg *config.AppConfig, logger primary.Logger) secondary.IdentityProvider {
	switch cfg.IdentityConfig.Mode {
	case config.IdentityModeRemote:
		if cfg.IdentityConfig.AuthURL == "" {
			log.Fatalf("AUTH_URL is required when IDENTITY_MODE=%s", config.IdentityModeRemote)
		}
		return authapi.NewClient(cfg.IdentityConfig, &http.Client{Timeout: 10 * time.Second}, logger)
	case config.IdentityModeJWT:
		if cfg.JwtConfig.Secret == "" {
			logger.Warn("JWT_SECRET is empty, every bearer token will be rejected")
		}
		return crypto.NewJWTIdentityProvider(crypto.NewJWTService(cfg.JwtConfig), logger)
	default:
		log.Fatalf("unknown IDENTITY_MODE %q", cfg.IdentityConfig.Mode)
		return nil
	}
}

// InitReader loads <env>.env when an environment name is passed as the first argument
func InitReader() {
	if len(os.Args) < 2 {
		return
	}
	environment := os.Args[1]
	if err := godotenv.Load(fmt.Sprintf("%s.env", environment)); err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
