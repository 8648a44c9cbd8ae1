package config

import "os"

type AppConfig struct {
	DebugMode         bool
	HttpPort          int
	CorsAllowedOrigin string
	SandboxConfig     *SandboxConfig
	GraderConfig      *GraderConfig
	RedisConfig       *RedisConfig
	PostgresConfig    *PostgresConfig
	JwtConfig         *JwtConfig
	IdentityConfig    *IdentityConfig
	RoleCacheConfig   *RoleCacheConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:         os.Getenv("DEBUG_MODE") == "true",
		HttpPort:          getIntEnv("HTTP_PORT", 8082),
		CorsAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		SandboxConfig:     NewSandboxConfig(),
		GraderConfig:      NewGraderConfig(),
		RedisConfig:       NewRedisConfig(),
		PostgresConfig:    NewPostgresConfig(),
		JwtConfig:         NewJwtConfig(),
		IdentityConfig:    NewIdentityConfig(),
		RoleCacheConfig:   NewRoleCacheConfig(),
	}
}
