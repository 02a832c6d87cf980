package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/archive"
	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/internal/registrar/session"
	"github.com/aussiebroadwan/registrar/pkg/jwtx"
	"github.com/joho/godotenv"
)

// Values of NODE_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the process configuration, read from the environment by
// LoadConfig.
type Config struct {
	Env          string // Environment (development, production) (default: development)
	Port         int    // HTTP server port (default: 8080)
	DatabaseFile string // Path to SQLite database file (default: ./registrar.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	SessionSecret string        // Required in production: HMAC key for session cookies
	SessionStore  string        // Session store (memory, database, redis) (default: memory, database in production)
	SessionTTL    time.Duration // Session lifetime (default: 24h)
	RedisURL      string        // Required when SessionStore is redis

	AdminUsername  string // Required in production
	AdminPassword  string // Required in production
	Admin2Username string // Optional second admin
	Admin2Password string // Optional second admin

	TrustProxy         bool     // Honour X-Forwarded-For / X-Real-IP (default: true in production)
	CORSAllowedOrigins []string // Comma separated; CORS is off when empty
	Timezone           string   // IANA zone for day boundaries and report dates (default: Local)

	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	SentryDSN      string // Optional: error reporting
	ReportFontFile string // Optional: UTF-8 TTF used for PDF reports

	Archive archive.Config // Optional: report archive, enabled when fully set

	SheetsCredentialsFile string // Optional: service account JSON for the Sheets export
	SheetsSpreadsheetID   string // Optional: target spreadsheet
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()

	env := getEnvOrDefault("NODE_ENV", EnvDevelopment)
	production := env == EnvProduction

	defaultStore := session.StoreMemory
	if production {
		defaultStore = session.StoreDatabase
	}

	return Config{
		Env:          env,
		Port:         getEnvIntOrDefault("PORT", 8080),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "registrar.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionStore:  getEnvOrDefault("SESSION_STORE", defaultStore),
		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", session.DefaultTTL),
		RedisURL:      os.Getenv("REDIS_URL"),

		AdminUsername:  os.Getenv("ADMIN_USERNAME"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		Admin2Username: os.Getenv("ADMIN2_USERNAME"),
		Admin2Password: os.Getenv("ADMIN2_PASSWORD"),

		TrustProxy:         getEnvBoolOrDefault("TRUST_PROXY", production),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		Timezone:           getEnvOrDefault("TIMEZONE", "Local"),

		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		SentryDSN:      os.Getenv("SENTRY_DSN"),
		ReportFontFile: os.Getenv("REPORT_FONT_FILE"),

		Archive: archive.Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("R2_BUCKET"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},

		SheetsCredentialsFile: os.Getenv("SHEETS_CREDENTIALS_FILE"),
		SheetsSpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
	}
}

// Production reports whether NODE_ENV is production.
func (c Config) Production() bool { return c.Env == EnvProduction }

// SheetsEnabled reports whether the Sheets export is configured.
func (c Config) SheetsEnabled() bool {
	return c.SheetsCredentialsFile != "" && c.SheetsSpreadsheetID != ""
}

// Admins returns the configured admin credentials.
func (c Config) Admins() []service.Credential {
	var out []service.Credential
	if c.AdminUsername != "" {
		out = append(out, service.Credential{Username: c.AdminUsername, Password: c.AdminPassword})
	}
	if c.Admin2Username != "" {
		out = append(out, service.Credential{Username: c.Admin2Username, Password: c.Admin2Password})
	}
	return out
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("NODE_ENV must be %s or %s, got %q", EnvDevelopment, EnvProduction, c.Env))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if !session.ValidStoreKind(c.SessionStore) {
		errs = append(errs, fmt.Errorf("SESSION_STORE must be memory, database or redis, got %q", c.SessionStore))
	}
	if c.SessionStore == session.StoreRedis && c.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL is required when SESSION_STORE=redis"))
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together"))
	}
	if (c.Admin2Username == "") != (c.Admin2Password == "") {
		errs = append(errs, errors.New("ADMIN2_USERNAME and ADMIN2_PASSWORD must be set together"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}

	if c.Production() {
		if c.SessionSecret == "" {
			errs = append(errs, errors.New("SESSION_SECRET is required in production"))
		}
		if c.AdminUsername == "" {
			errs = append(errs, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD are required in production"))
		}
		if c.SessionStore == session.StoreMemory {
			errs = append(errs, errors.New("SESSION_STORE=memory is not allowed in production"))
		}
	}

	return errors.Join(errs...)
}

// getEnvOrDefault treats an empty variable as unset.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault falls back to defaultValue when the value does not parse.
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations and bare minute counts.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvList splits a comma separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
