package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. QUILL_JWT_SECRET for jwt.secret
const EnvPrefix = "QUILL"

// Config holds the server settings
type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	JWTPrivateJWK  string
	MediaDir       string
	MediaBaseURL   string
	LogLevel       string
	AllowedOrigins []string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
}

// Load reads configuration from defaults, an optional file at path, and the environment.
// Environment variables win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("jwt.access_ttl", "15m")
	v.SetDefault("jwt.refresh_ttl", "168h")
	v.SetDefault("media.dir", "./media")
	v.SetDefault("media.base_url", "/media")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// DATABASE_URL is the conventional name on most hosts
	if err := v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database_url: %w", err)
	}
	for _, key := range []string{"jwt.secret", "jwt.private_jwk"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		slog.Info("loaded config file", slog.String("path", v.ConfigFileUsed()))
	}

	privateJWK, err := base64OrPlain(v.GetString("jwt.private_jwk"))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt.private_jwk: %w", err)
	}

	accessTTL, err := duration(v, "jwt.access_ttl")
	if err != nil {
		return nil, err
	}
	refreshTTL, err := duration(v, "jwt.refresh_ttl")
	if err != nil {
		return nil, err
	}

	return &Config{
		Addr:           v.GetString("addr"),
		DatabaseURL:    v.GetString("database_url"),
		JWTSecret:      v.GetString("jwt.secret"),
		JWTPrivateJWK:  privateJWK,
		AccessTTL:      accessTTL,
		RefreshTTL:     refreshTTL,
		MediaDir:       v.GetString("media.dir"),
		MediaBaseURL:   strings.TrimSuffix(v.GetString("media.base_url"), "/"),
		AllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		LogLevel:       strings.ToLower(v.GetString("log.level")),
	}, nil
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database_url is required (QUILL_DATABASE_URL or DATABASE_URL)"))
	}
	if c.JWTSecret == "" && c.JWTPrivateJWK == "" {
		errs = append(errs, errors.New("a signing key is required: set jwt.secret or jwt.private_jwk"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel maps log.level to a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log.level %q: expected debug, info, warn or error", c.LogLevel)
	}
	return level, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: expected a positive duration such as 15m", key, v.GetString(key))
	}
	return d, nil
}

// base64OrPlain decodes values written as "base64:<data>", which keeps JWKs
// free of shell quoting problems in env files. Other values are returned as-is.
func base64OrPlain(value string) (string, error) {
	encoded, ok := strings.CutPrefix(value, "base64:")
	if !ok {
		return value, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid base64 encoding: %w", err)
	}
	return string(decoded), nil
}

// splitList accepts both YAML lists and comma-separated env values
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
