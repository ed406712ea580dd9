// Package config resolves the runtime configuration: API credentials from
// the environment (.env supported), the data directory layout, the unit
// preference file, and the persisted auth token.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/util"
)

const (
	envAPIKey   = "RWGPS_API_KEY"
	envEmail    = "RWGPS_EMAIL"
	envPassword = "RWGPS_PASSWORD"

	unitPreferenceFile = "unit_preference"
	tokenFile          = "token"
	credentialsFile    = "credentials.json"
)

// ErrNoToken is returned when no auth token has been persisted yet.
var ErrNoToken = errors.New("no stored auth token")

// ErrNoCredentials is returned when neither the environment nor the
// credentials file provides an email/password pair.
var ErrNoCredentials = errors.New("no credentials configured")

// DefaultUnit is used when no preference has been saved.
const DefaultUnit = model.UnitMiles

// Config holds the resolved runtime settings.
type Config struct {
	APIKey  string
	BaseDir string
}

// Load reads the environment (including an optional .env file in the
// working directory) and resolves the data directory.
func Load(baseDir string) (*Config, error) {
	// Missing .env is fine; explicit environment still applies.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		util.LogDebugf("Skipping .env: %v", err)
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Config{
		APIKey:  os.Getenv(envAPIKey),
		BaseDir: baseDir,
	}, nil
}

// RequireAPIKey returns the API key or an actionable error.
func (c *Config) RequireAPIKey() (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("missing required %s environment variable", envAPIKey)
	}
	return c.APIKey, nil
}

// Credentials is the email/password pair used for the token handshake.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoadCredentials resolves credentials from the environment first, then
// from the credentials file.
func (c *Config) LoadCredentials() (*Credentials, error) {
	email, password := os.Getenv(envEmail), os.Getenv(envPassword)
	if email != "" && password != "" {
		return &Credentials{Email: email, Password: password}, nil
	}

	data, err := os.ReadFile(filepath.Join(c.BaseDir, credentialsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := sonic.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if creds.Email == "" || creds.Password == "" {
		return nil, ErrNoCredentials
	}
	return &creds, nil
}

// SaveCredentials persists credentials with owner-only permissions.
func (c *Config) SaveCredentials(creds *Credentials) error {
	data, err := sonic.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	return os.WriteFile(filepath.Join(c.BaseDir, credentialsFile), data, 0600)
}

// LoadToken reads the persisted auth token.
func (c *Config) LoadToken() (string, error) {
	data, err := os.ReadFile(filepath.Join(c.BaseDir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// SaveToken persists the auth token with owner-only permissions.
func (c *Config) SaveToken(token string) error {
	return os.WriteFile(filepath.Join(c.BaseDir, tokenFile), []byte(token+"\n"), 0600)
}

// LoadUnitPreference reads the saved display unit, falling back to the
// default when the file is absent or holds an invalid value.
func (c *Config) LoadUnitPreference() model.Unit {
	data, err := os.ReadFile(filepath.Join(c.BaseDir, unitPreferenceFile))
	if err != nil {
		return DefaultUnit
	}

	unit, err := model.ParseUnit(strings.TrimSpace(string(data)))
	if err != nil {
		util.LogWarnf("Invalid unit in preference file, using %s: %v", DefaultUnit, err)
		return DefaultUnit
	}
	return unit
}

// SaveUnitPreference persists the display unit.
func (c *Config) SaveUnitPreference(unit model.Unit) error {
	return os.WriteFile(filepath.Join(c.BaseDir, unitPreferenceFile), []byte(unit.String()+"\n"), 0644)
}
