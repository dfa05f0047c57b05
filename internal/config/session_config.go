package config

import "time"

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionExpiry() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionSecret returns the HMAC secret used to sign session tokens.
// Sessions are fully stateless: validity is recomputable from the token
// bytes plus this secret, so rotating it invalidates every live session.
func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "")
}

func (Session) GetSessionExpiry() time.Duration {
	return 24 * time.Hour
}
