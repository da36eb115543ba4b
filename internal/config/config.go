package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Spreadsheet backend
	SpreadsheetID   string `mapstructure:"SPREADSHEET_ID"`
	CredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	// Redis (audit log queue). Optional when AUDIT_SYNC=true.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Audit pipeline
	WorkerPoolSize int  `mapstructure:"WORKER_POOL_SIZE"`
	AuditSync      bool `mapstructure:"AUDIT_SYNC"`

	// Reconciler
	ReconcileInterval time.Duration `mapstructure:"RECONCILE_INTERVAL"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("AUDIT_SYNC", false)
	viper.SetDefault("RECONCILE_INTERVAL", "10m")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
