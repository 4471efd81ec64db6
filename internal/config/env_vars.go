package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	appIDVar        = "APP_ID"
	baseURLVar      = "SSO_BASE_URL"
	publicURLVar    = "PUBLIC_URL"
	logLevelEnvVar  = "LOG_LEVEL"
	environmentVar  = "ENV"
	defaultPort     = "8080"
	defaultBaseURL  = "http://localhost:8080"
	defaultLogLevel = "info"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, defaultPort)
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "SSO Client")
}

// GetAppID returns the application identifier, used as the OAuth client_id
// and as the store namespace
func (EnvVars) GetAppID() string {
	return GetEnv(appIDVar, "")
}

// GetBaseURL returns the base URL of the SSO gateway (e.g.
// "https://work.example.com"). All API paths are resolved against it.
func (EnvVars) GetBaseURL() string {
	return strings.TrimRight(GetEnv(baseURLVar, defaultBaseURL), "/")
}

// GetPublicURL returns the URL browsers use to reach this host. It is the
// redirect_uri registered with the broker.
func (e EnvVars) GetPublicURL() string {
	return strings.TrimRight(GetEnv(publicURLVar, "http://localhost"+e.GetPort()), "/")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, defaultLogLevel)
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(environmentVar)
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
