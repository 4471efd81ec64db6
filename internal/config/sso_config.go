package config

import "time"

type SSOConfig interface {
	GetRealm() string
	GetRefreshWindow() time.Duration
	GetMaxReLogins() int
	GetRequestTimeout() time.Duration
}

type SSO struct{}

var _ SSOConfig = SSO{}

// GetRealm returns the broker realm used by the UMA ticket endpoint
func (SSO) GetRealm() string {
	return GetEnv("SSO_REALM", "myrealm")
}

// GetRefreshWindow is how long before expiry the access token is refreshed
func (SSO) GetRefreshWindow() time.Duration {
	return 200 * time.Second
}

// GetMaxReLogins caps consecutive re-login attempts triggered by 401s
func (SSO) GetMaxReLogins() int {
	return 10
}

func (SSO) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}
