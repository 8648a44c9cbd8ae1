package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "DEBUG_MODE", "JUDGE0_URL", "JUDGE0_API_KEY_HEADER", "JUDGE0_POLL_INTERVAL_MS",
		"JUDGE0_RUN_MAX_WAIT_SEC", "JUDGE0_GRADE_MAX_WAIT_SEC", "GRADER_MAX_CONCURRENCY",
		"GRADER_MAX_TEST_CASES", "JUDGE0_REQUEST_TIMEOUT_SEC",
		"ROLE_CACHE", "ROLE_CACHE_TTL_SEC", "IDENTITY_MODE", "DB_SCHEMA", "CORS_ALLOWED_ORIGIN",
	} {
		t.Setenv(key, "")
	}

	cfg := NewSystemConfig()
	assert.False(t, cfg.DebugMode)
	assert.Equal(t, 8082, cfg.HttpPort)
	assert.Equal(t, "*", cfg.CorsAllowedOrigin)
	assert.Equal(t, "https://judge0-ce.p.rapidapi.com", cfg.SandboxConfig.BaseURL)
	assert.Equal(t, "X-RapidAPI-Key", cfg.SandboxConfig.APIKeyHeader)
	assert.Equal(t, time.Second, cfg.SandboxConfig.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.SandboxConfig.RunMaxWait)
	assert.Equal(t, 15*time.Second, cfg.SandboxConfig.GradeMaxWait)
	assert.Equal(t, 4, cfg.GraderConfig.MaxConcurrency)
	assert.Equal(t, 50, cfg.GraderConfig.MaxTestCases)
	assert.Equal(t, 10*time.Second, cfg.SandboxConfig.RequestTimeout)
	assert.Equal(t, "memory", cfg.RoleCacheConfig.Backend)
	assert.Equal(t, 5*time.Minute, cfg.RoleCacheConfig.TTL)
	assert.Equal(t, IdentityModeJWT, cfg.IdentityConfig.Mode)
	assert.Equal(t, "public", cfg.PostgresConfig.Schema)
}

func TestOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("JUDGE0_POLL_INTERVAL_MS", "250")
	t.Setenv("JUDGE0_GRADE_MAX_WAIT_SEC", "30")
	t.Setenv("GRADER_MAX_CONCURRENCY", "-2")
	t.Setenv("GRADER_MAX_TEST_CASES", "200")
	t.Setenv("ROLE_CACHE", "redis")
	t.Setenv("ROLE_CACHE_TTL_SEC", "bogus")
	t.Setenv("IDENTITY_MODE", "remote")

	cfg := NewSystemConfig()
	assert.True(t, cfg.DebugMode)
	assert.Equal(t, 9000, cfg.HttpPort)
	assert.Equal(t, 250*time.Millisecond, cfg.SandboxConfig.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.SandboxConfig.GradeMaxWait)
	assert.Equal(t, 4, cfg.GraderConfig.MaxConcurrency)
	assert.Equal(t, 200, cfg.GraderConfig.MaxTestCases)
	assert.Equal(t, "redis", cfg.RoleCacheConfig.Backend)
	assert.Equal(t, 5*time.Minute, cfg.RoleCacheConfig.TTL)
	assert.Equal(t, IdentityModeRemote, cfg.IdentityConfig.Mode)
}
