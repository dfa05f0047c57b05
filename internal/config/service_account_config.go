package config

import (
	"os"
	"time"
)

// ServiceAccountConfig holds the identity used to obtain delegated access
// to the spreadsheet backend via the jwt-bearer grant (RFC 7523).
type ServiceAccountConfig interface {
	GetServiceAccountEmail() string
	GetServiceAccountKeyPEM() (string, error)
	GetTokenEndpoint() string
	GetSheetsScope() string
	GetSpreadsheetID() string
	GetAssertionExpiry() time.Duration
}

type ServiceAccount struct{}

var _ ServiceAccountConfig = ServiceAccount{}

func (ServiceAccount) GetServiceAccountEmail() string {
	return GetEnv("SERVICE_ACCOUNT_EMAIL", "")
}

// GetServiceAccountKeyPEM returns the PEM-encoded RSA private key for the
// service account, either inline (SERVICE_ACCOUNT_KEY) or from a file
// (SERVICE_ACCOUNT_KEY_FILE).
func (ServiceAccount) GetServiceAccountKeyPEM() (string, error) {
	if key := os.Getenv("SERVICE_ACCOUNT_KEY"); key != "" {
		return key, nil
	}
	path := GetEnv("SERVICE_ACCOUNT_KEY_FILE", "")
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (ServiceAccount) GetTokenEndpoint() string {
	return GetEnv("TOKEN_ENDPOINT", "https://oauth2.googleapis.com/token")
}

func (ServiceAccount) GetSheetsScope() string {
	return GetEnv("SHEETS_SCOPE", "https://www.googleapis.com/auth/spreadsheets")
}

func (ServiceAccount) GetSpreadsheetID() string {
	return GetEnv("SPREADSHEET_ID", "")
}

func (ServiceAccount) GetAssertionExpiry() time.Duration {
	return 1 * time.Hour
}
