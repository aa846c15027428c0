package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Weather WeatherConfig
	Sheets  SheetsConfig
	Monitor MonitorConfig
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

// WeatherConfig holds settings for the forecast provider.
type WeatherConfig struct {
	BaseURL       string
	ForecastHours int
}

// SheetsConfig contains configuration for the shared Google Sheets ledger.
// Leaving both fields empty disables the ledger entirely.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// MonitorConfig holds the daily risk sweep settings.
type MonitorConfig struct {
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

	forecastHours, err := strconv.Atoi(getenvWithDefault("WEATHER_FORECAST_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("WEATHER_FORECAST_HOURS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "tambero"),
		},
		Weather: WeatherConfig{
			BaseURL:       getenvWithDefault("WEATHER_BASE_URL", "https://api.open-meteo.com"),
			ForecastHours: forecastHours,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_LEDGER_ID"),
		},
		Monitor: MonitorConfig{
			CronSchedule: getenvWithDefault("RISK_CRON_SCHEDULE", "0 6 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Argentina/Buenos_Aires"),
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

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Weather.BaseURL == "" {
		return errors.New("WEATHER_BASE_URL must not be empty")
	}

	if c.Weather.ForecastHours <= 0 {
		return errors.New("WEATHER_FORECAST_HOURS must be positive")
	}

	// The ledger is optional, but a half-configured one is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_LEDGER_ID must be set together")
	}

	if c.Monitor.CronSchedule == "" {
		return errors.New("RISK_CRON_SCHEDULE must be provided")
	}

	if c.Monitor.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// LedgerEnabled reports whether the Sheets ledger is configured.
func (c *Config) LedgerEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
