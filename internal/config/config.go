package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm/logger"

	"promptbench/internal/database"
	"promptbench/internal/utils"
)

type Config struct {
	HTTPAddr              string
	DB                    database.Config
	EncryptionSecret      string
	JWTSecret             string
	CORSAllowedOrigins    []string
	GenerationConcurrency int
	ProviderTimeout       time.Duration
	DefaultCandidateModel string
}

// SecretSource supplies the encryption secret when the environment does not.
type SecretSource interface {
	EncryptionSecret() (string, error)
}

// Load reads .env and the process environment. secrets may be nil.
func Load(secrets SecretSource) (*Config, error) {
	if err := utils.LoadEnv(); err != nil {
		elog.DefaultLogger.Warn("failed to load .env", elog.FieldErr(err))
	}

	cfg := &Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		DB: database.Config{
			Driver: strings.ToLower(getenv("DB_DRIVER", database.DriverSQLite)),
			DSN:    os.Getenv("DB_DSN"),
		},
		EncryptionSecret:      strings.TrimSpace(os.Getenv("USER_API_KEY_ENCRYPTION_SECRET")),
		JWTSecret:             strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
		CORSAllowedOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DefaultCandidateModel: strings.TrimSpace(os.Getenv("DEFAULT_CANDIDATE_MODEL")),
	}
	if cfg.DB.DSN == "" && cfg.DB.Driver == database.DriverSQLite {
		cfg.DB.DSN = database.GetDefaultDBPath()
	}

	level, err := parseLogLevel(os.Getenv("DB_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.DB.LogLevel = level

	if cfg.GenerationConcurrency, err = getInt("GENERATION_CONCURRENCY"); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(os.Getenv("PROVIDER_TIMEOUT")); v != "" {
		if cfg.ProviderTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("PROVIDER_TIMEOUT: %w", err)
		}
	}

	if cfg.EncryptionSecret == "" && secrets != nil {
		secret, err := secrets.EncryptionSecret()
		if err != nil && !errors.Is(err, ErrSecretNotFound) {
			return nil, fmt.Errorf("read encryption secret: %w", err)
		}
		cfg.EncryptionSecret = secret
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	var problems []string
	if c.EncryptionSecret == "" {
		problems = append(problems, "USER_API_KEY_ENCRYPTION_SECRET is not set and no secret is stored in the keyring (run `promptbench secret init`)")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "AUTH_JWT_SECRET is required")
	}
	if c.GenerationConcurrency < 0 {
		problems = append(problems, "GENERATION_CONCURRENCY must be >= 0")
	}
	if c.ProviderTimeout < 0 {
		problems = append(problems, "PROVIDER_TIMEOUT must be >= 0")
	}
	switch c.DB.Driver {
	case database.DriverSQLite, database.DriverPostgres, database.DriverMySQL:
	default:
		problems = append(problems, fmt.Sprintf("unsupported DB_DRIVER %q", c.DB.Driver))
	}
	if c.DB.DSN == "" {
		problems = append(problems, "DB_DSN is required for "+c.DB.Driver)
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(v string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return 0, nil
	case "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	}
	return 0, fmt.Errorf("DB_LOG_LEVEL: unknown level %q", v)
}
