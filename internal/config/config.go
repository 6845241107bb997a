package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultPort            = "8080"
	defaultDBPath          = "app.db"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
)

var (
	ErrMissingSecret = errors.New("auth.jwt_secret (JWT_SECRET) must be set")
	ErrUnknownDriver = errors.New("unknown db.driver")
)

type Config struct {
	Port string
	Log  LogConfig
	DB   DBConfig
	Auth AuthConfig
	CORS CORSConfig

	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type DBConfig struct {
	Driver string
	Path   string // sqlite file
	DSN    string // postgres connection string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configs/config.yml (if present) from dir, lets environment
// variables override any key and validates the result. A .env file in the
// working directory is loaded first when it exists.
func Load(dir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("bind JWT_SECRET: %w", err)
	}
	if err := v.BindEnv("db.dsn", "DB_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("bind DATABASE_URL: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port: v.GetString("port"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("db.driver"))),
			Path:   v.GetString("db.path"),
			DSN:    v.GetString("db.dsn"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
}

// Validate rejects configurations the service must not start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("db.path must be set for sqlite")
		}
	case DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("db.dsn must be set for postgres")
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownDriver, c.DB.Driver)
	}
	return nil
}
