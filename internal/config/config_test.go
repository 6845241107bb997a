package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_FromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	dir := writeConfig(t, `
port: "9090"
log:
  level: debug
  format: json
db:
  driver: sqlite
  path: test.db
auth:
  jwt_secret: file-secret
  token_ttl: 2h
cors:
  allowed_origins: ["http://localhost:3000"]
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DB.Driver != DriverSQLite || cfg.DB.Path != "test.db" {
		t.Fatalf("unexpected db config: %+v", cfg.DB)
	}
	if cfg.Auth.JWTSecret != "file-secret" || cfg.Auth.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors: %+v", cfg.CORS)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("expected default shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_EnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "7070")

	cfg, err := Load(t.TempDir()) // no config file
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("expected secret from env, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Port != "7070" {
		t.Fatalf("expected port from env, got %q", cfg.Port)
	}
	if cfg.Auth.TokenTTL != defaultTokenTTL {
		t.Fatalf("expected default ttl 24h, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.DB.Driver != DriverSQLite || cfg.DB.Path != defaultDBPath {
		t.Fatalf("unexpected db defaults: %+v", cfg.DB)
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load(writeConfig(t, "port: \"8080\"\n"))
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DB:   DBConfig{Driver: DriverSQLite, Path: "x.db"},
			Auth: AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
		}
	}
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"blank secret", func(c *Config) { c.Auth.JWTSecret = "  " }, true},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, true},
		{"postgres without dsn", func(c *Config) { c.DB.Driver = DriverPostgres }, true},
		{"postgres with dsn", func(c *Config) { c.DB.Driver = DriverPostgres; c.DB.DSN = "postgres://x" }, false},
		{"sqlite without path", func(c *Config) { c.DB.Path = "" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			err := c.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}
