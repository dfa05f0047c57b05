package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar = "PORT"
	appNameVar = "APP_NAME"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Inventory Server")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetNotifyWebhookURL returns the chat-bot webhook used for stock notifications
func (EnvVars) GetNotifyWebhookURL() string {
	return GetEnv("NOTIFY_WEBHOOK_URL", "")
}

// GetReportEndpoint returns the completion endpoint used for AI stock reports
func (EnvVars) GetReportEndpoint() string {
	return GetEnv("REPORT_ENDPOINT", "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
