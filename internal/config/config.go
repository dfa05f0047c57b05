package config

type Config interface {
	EnvConfig
	CorsConfig
	SessionConfig
	ServiceAccountConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetNotifyWebhookURL() string
	GetReportEndpoint() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Session
	ServiceAccount
}

func New() Config {
	return mainConfig{}
}
