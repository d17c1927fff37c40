package config

import (
	"os"
	"strconv"
)

// Deployment modes. The mode selects the database profile defaults and
// controls how much error detail leaves the process (see handler.ErrorHandler).
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// LogConfig holds logging settings. When FilePath is set, log output is also
// written to a size-rotated file.
type LogConfig struct {
	Level      string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env               string
	AppHost           string
	Port              string
	RequestTimeoutSec int
	Database          DatabaseConfig
	Log               LogConfig
}

// IsProduction reports whether the app runs in production mode.
func (c *AppConfig) IsProduction() bool { return c.Env == EnvProduction }

// IsDevelopment reports whether the app runs in development mode.
func (c *AppConfig) IsDevelopment() bool { return c.Env == EnvDevelopment }

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	env := getEnv("APP_ENV", EnvDevelopment)
	switch env {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		env = EnvDevelopment
	}

	return &AppConfig{
		Env:               env,
		AppHost:           getEnv("APP_HOST", "localhost:8080"),
		Port:              getEnv("PORT", "8080"), // default only for non-sensitive value
		RequestTimeoutSec: getEnvInt("REQUEST_TIMEOUT_SEC", 30),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", defaultDBName(env)),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FilePath:   getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
	}
}

// defaultDBName keeps each deployment mode on its own database unless DB_NAME
// overrides it, so tests can never touch development data by accident.
func defaultDBName(env string) string {
	switch env {
	case EnvTest:
		return "docstore_test"
	case EnvProduction:
		return "docstore"
	default:
		return "docstore_dev"
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
