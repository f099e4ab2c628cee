package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Auth      AuthConfig
	Sheets    SheetsConfig
	SMS       SMSConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig carries token signing material and account bootstrap values.
type AuthConfig struct {
	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	BcryptCost       int
	DefaultAdminUser string
	DefaultAdminPass string
}

// SheetsConfig contains configuration required to export monthly reports to
// Google Sheets. Leaving it empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReportRange     string
}

// Enabled reports whether sheet export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// SMSConfig contains credentials for the SMS gateway used for manager
// notifications. Leaving it empty disables outbound SMS.
type SMSConfig struct {
	BaseURL      string
	APIKey       string
	Sender       string
	ManagerPhone string
}

// Enabled reports whether outbound SMS is configured.
func (c SMSConfig) Enabled() bool {
	return c.BaseURL != "" && c.APIKey != "" && c.ManagerPhone != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "hallbook"),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
			AccessTokenTTL:   getenvDuration("ACCESS_TOKEN_TTL", time.Hour),
			RefreshTokenTTL:  getenvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
			BcryptCost:       getenvInt("BCRYPT_COST", 10),
			DefaultAdminUser: getenvWithDefault("DEFAULT_ADMIN_USERNAME", "admin"),
			DefaultAdminPass: os.Getenv("DEFAULT_ADMIN_PASSWORD"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
			ReportRange:     getenvWithDefault("GOOGLE_SHEET_REPORT_RANGE", "Reports!A:E"),
		},
		SMS: SMSConfig{
			BaseURL:      os.Getenv("SMS_BASE_URL"),
			APIKey:       os.Getenv("SMS_API_KEY"),
			Sender:       os.Getenv("SMS_SENDER"),
			ManagerPhone: os.Getenv("SMS_MANAGER_PHONE"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 21 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Tehran"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	switch {
	case c.Auth.JWTSecret == "":
		return errors.New("JWT_SECRET must be provided")
	case c.Auth.JWTRefreshSecret == "":
		return errors.New("JWT_REFRESH_SECRET must be provided")
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return errors.New("BCRYPT_COST must be between 4 and 31")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
