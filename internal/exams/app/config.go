package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/opencourse/transcripts/pkg/jwtx"
)

type Config struct {
	Issuer         string // Required: issuer claim for tokens (default: opencourse-exams)
	BootstrapToken string // Optional: token required to perform bootstrap; empty disables it

	AccessTokenTTL time.Duration // Optional: access token lifetime (default: 30m)
	MFATTL         time.Duration // Optional: lifetime of a pending MFA challenge (default: 5m)

	NumKeys        int           // Optional: number of signing keys to generate (default: 3, max: 10)
	KeyStorageMode string        // Optional: key storage mode (ephemeral, persistent) (default: ephemeral)
	KeyGracePeriod time.Duration // Optional: how long retired keys keep verifying (default: 24h)
	MasterKeyPath  string        // Optional: path to master encryption key file (for persistent keys)

	DatabaseFile string // Optional: path to SQLite database file (default: ./exams.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	// A .env file is a dev convenience; production sets real env vars.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:         getEnvOrDefault("EXAMS_ISSUER", "opencourse-exams"),
		BootstrapToken: os.Getenv("BOOTSTRAP_TOKEN"),

		AccessTokenTTL: getEnvDurationOrDefault("EXAMS_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		MFATTL:         getEnvDurationOrDefault("EXAMS_MFA_TTL", 5*time.Minute),

		NumKeys:        getEnvIntOrDefault("EXAMS_NUM_KEYS", 0), // 0 = jwtx default
		KeyStorageMode: getEnvOrDefault("EXAMS_KEY_STORAGE", "ephemeral"),
		KeyGracePeriod: getEnvDurationOrDefault("EXAMS_KEY_GRACE_PERIOD", 24*time.Hour),
		MasterKeyPath:  os.Getenv("EXAMS_MASTER_KEY_PATH"),

		DatabaseFile: getEnvOrDefault("EXAMS_DATABASE_FILE", "exams.db"),
		PepperFile:   getEnvOrDefault("EXAMS_PEPPER_FILE", "pepper"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
