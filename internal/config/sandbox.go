package config

import (
	"os"
	"time"
)

type SandboxConfig struct {
	BaseURL        string
	APIKey         string
	APIKeyHeader   string
	APIHost        string
	PollInterval   time.Duration
	RunMaxWait     time.Duration
	GradeMaxWait   time.Duration
	RequestTimeout time.Duration
}

func NewSandboxConfig() *SandboxConfig {
	return &SandboxConfig{
		BaseURL:        getEnv("JUDGE0_URL", "https://judge0-ce.p.rapidapi.com"),
		APIKey:         os.Getenv("JUDGE0_API_KEY"),
		APIKeyHeader:   getEnv("JUDGE0_API_KEY_HEADER", "X-RapidAPI-Key"),
		APIHost:        os.Getenv("JUDGE0_API_HOST"),
		PollInterval:   getDurationEnv("JUDGE0_POLL_INTERVAL_MS", time.Millisecond, time.Second),
		RunMaxWait:     getDurationEnv("JUDGE0_RUN_MAX_WAIT_SEC", time.Second, 10*time.Second),
		GradeMaxWait:   getDurationEnv("JUDGE0_GRADE_MAX_WAIT_SEC", time.Second, 15*time.Second),
		RequestTimeout: getDurationEnv("JUDGE0_REQUEST_TIMEOUT_SEC", time.Second, 10*time.Second),
	}
}
