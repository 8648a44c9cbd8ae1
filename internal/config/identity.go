package config

import "os"

type IdentityMode string

const (
	IdentityModeJWT    IdentityMode = "jwt"
	IdentityModeRemote IdentityMode = "remote"
)

type IdentityConfig struct {
	Mode    IdentityMode
	AuthURL string
	APIKey  string
}

func NewIdentityConfig() *IdentityConfig {
	return &IdentityConfig{
		Mode:    IdentityMode(getEnv("IDENTITY_MODE", string(IdentityModeJWT))),
		AuthURL: os.Getenv("AUTH_URL"),
		APIKey:  os.Getenv("AUTH_API_KEY"),
	}
}
