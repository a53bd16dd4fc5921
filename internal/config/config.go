package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Addr          string `env:"SERVER_ADDR"     envDefault:":8080"`
	SessionSecret string `env:"SESSION_SECRET"`
	UserFile      string `env:"USER_FILE"       envDefault:"users.csv"`
	DatasetPath   string `env:"DATASET_PATH"    envDefault:"data/business_data.csv"`
	WatchDataset  bool   `env:"DATASET_WATCH"   envDefault:"true"`
	ReportPath    string `env:"REPORT_PATH"     envDefault:"prediction_report.pdf"`
	Currency      string `env:"CURRENCY_SYMBOL" envDefault:"₹"`
	// ReportCurrency prefixes the value in the PDF, whose core fonts cannot draw ₹.
	ReportCurrency string  `env:"REPORT_CURRENCY" envDefault:"INR"`
	LogFormat      string  `env:"LOG_FORMAT"      envDefault:"text"`
	LogLevel       string  `env:"LOG_LEVEL"       envDefault:"debug"`
	AuthRateLimit  float64 `env:"AUTH_RATE_LIMIT" envDefault:"10"`

	// GeneratedSecret reports that SESSION_SECRET was unset and a random one
	// was created, so sessions do not survive a restart.
	GeneratedSecret bool
}

// New loads configuration from an optional .env file and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse reads the environment into a Config without touching .env files.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
		cfg.GeneratedSecret = true
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.UserFile == "" {
		errs = append(errs, errors.New("USER_FILE must not be empty"))
	}
	if c.DatasetPath == "" {
		errs = append(errs, errors.New("DATASET_PATH must not be empty"))
	}
	if c.ReportPath == "" {
		errs = append(errs, errors.New("REPORT_PATH must not be empty"))
	}
	if c.AuthRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT must be positive, got %v", c.AuthRateLimit))
	}
	return errors.Join(errs...)
}

func randomSecret() (string, error) {
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return "", errors.New("generate session secret: no randomness available")
	}
	return hex.EncodeToString(key), nil
}
