package config

type Config interface {
	EnvConfig
	SSOConfig
	StoreConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAppID() string
	GetBaseURL() string
	GetPublicURL() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	SSO
	Store
}

func New() Config {
	return mainConfig{}
}
