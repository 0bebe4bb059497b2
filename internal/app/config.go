package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/jobtrack-backend/internal/data/db"
	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/platform/envutil"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoginLimitConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Window      time.Duration `yaml:"window"`
	KeyPrefix   string        `yaml:"key_prefix"`
}

type Config struct {
	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	JWTSecretKey    string        `yaml:"jwt_secret_key"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	TokenSweep      time.Duration `yaml:"token_sweep_interval"`

	DB         db.Config        `yaml:"db"`
	Redis      RedisConfig      `yaml:"redis"`
	LoginLimit LoginLimitConfig `yaml:"login_limit"`

	CORSOrigins    []string                    `yaml:"cors_origins"`
	Tracing        observability.TracingConfig `yaml:"tracing"`
	MetricsEnabled bool                        `yaml:"metrics_enabled"`

	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
}

func DefaultConfig() Config {
	return Config{
		Port:            "8080",
		LogMode:         "development",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		TokenSweep:      time.Hour,
		DB: db.Config{
			Driver:  db.DriverPostgres,
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "jobtrack",
			SSLMode: "disable",
		},
		LoginLimit: LoginLimitConfig{
			MaxAttempts: 5,
			Window:      15 * time.Minute,
			KeyPrefix:   "jobtrack",
		},
		Tracing: observability.TracingConfig{
			ServiceName: "jobtrack-backend",
			SampleRatio: 1,
		},
		MetricsEnabled: true,
		ShutdownGrace:  10 * time.Second,
	}
}

// LoadConfig layers defaults, the optional YAML file at path and then the
// environment. Environment variables win.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = envutil.String("PORT", c.Port)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode)

	c.JWTSecretKey = envutil.String("JWT_SECRET_KEY", c.JWTSecretKey)
	c.AccessTokenTTL = envutil.Duration("ACCESS_TOKEN_TTL", c.AccessTokenTTL)
	c.RefreshTokenTTL = envutil.Duration("REFRESH_TOKEN_TTL", c.RefreshTokenTTL)
	c.TokenSweep = envutil.Duration("TOKEN_SWEEP_INTERVAL", c.TokenSweep)

	c.DB.Driver = envutil.String("DB_DRIVER", c.DB.Driver)
	c.DB.Host = envutil.String("POSTGRES_HOST", c.DB.Host)
	c.DB.Port = envutil.String("POSTGRES_PORT", c.DB.Port)
	c.DB.User = envutil.String("POSTGRES_USER", c.DB.User)
	c.DB.Password = envutil.String("POSTGRES_PASSWORD", c.DB.Password)
	c.DB.Name = envutil.String("POSTGRES_NAME", c.DB.Name)
	c.DB.SSLMode = envutil.String("POSTGRES_SSLMODE", c.DB.SSLMode)
	c.DB.SQLitePath = envutil.String("SQLITE_PATH", c.DB.SQLitePath)

	c.Redis.Addr = envutil.String("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = envutil.String("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = envutil.Int("REDIS_DB", c.Redis.DB)

	c.LoginLimit.MaxAttempts = envutil.Int("LOGIN_MAX_ATTEMPTS", c.LoginLimit.MaxAttempts)
	c.LoginLimit.Window = envutil.Duration("LOGIN_ATTEMPT_WINDOW", c.LoginLimit.Window)

	c.CORSOrigins = envutil.List("CORS_ORIGINS", c.CORSOrigins)

	c.Tracing.Enabled = envutil.Bool("OTEL_ENABLED", c.Tracing.Enabled)
	c.Tracing.ServiceName = envutil.String("OTEL_SERVICE_NAME", c.Tracing.ServiceName)
	c.Tracing.Environment = envutil.String("OTEL_ENVIRONMENT", c.Tracing.Environment)
	c.Tracing.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.Tracing.Insecure)
	if headers := envutil.List("OTEL_EXPORTER_OTLP_HEADERS", nil); len(headers) > 0 {
		c.Tracing.Headers = observability.ParseHeaders(headers)
	}

	c.MetricsEnabled = envutil.Bool("METRICS_ENABLED", c.MetricsEnabled)
	c.ShutdownGrace = envutil.Duration("SHUTDOWN_GRACE", c.ShutdownGrace)
}

func (c Config) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.LogMode)) {
	case "prod", "production":
		return true
	}
	return false
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET_KEY is required in production")
		}
		c.JWTSecretKey = "defaultsecret"
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("access token ttl must be positive, got %s", c.AccessTokenTTL)
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return fmt.Errorf("refresh token ttl (%s) must not be shorter than access token ttl (%s)", c.RefreshTokenTTL, c.AccessTokenTTL)
	}
	if c.LoginLimit.MaxAttempts < 0 {
		return fmt.Errorf("login max attempts must not be negative")
	}
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port is required")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
