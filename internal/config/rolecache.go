package config

import "time"

type RoleCacheConfig struct {
	Backend       string
	TTL           time.Duration
	SweepInterval time.Duration
}

func NewRoleCacheConfig() *RoleCacheConfig {
	return &RoleCacheConfig{
		Backend:       getEnv("ROLE_CACHE", "memory"),
		TTL:           getDurationEnv("ROLE_CACHE_TTL_SEC", time.Second, 5*time.Minute),
		SweepInterval: getDurationEnv("ROLE_CACHE_SWEEP_SEC", time.Second, time.Minute),
	}
}
