package config

import (
	"fmt"
	"net"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Security SecurityConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Admin    AdminConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port       string `env:"PORT" envDefault:"8000" validate:"required,numeric"`
	Host       string `env:"HOST" envDefault:"0.0.0.0"`
	AppVersion string `env:"APP_VERSION" envDefault:"dev"`
	StaticRoot string `env:"STATIC_ROOT" envDefault:"staticfiles"`
}

type SecurityConfig struct {
	SecretKey    string   `env:"SECRET_KEY" envDefault:"change-me-in-production" validate:"required"`
	Debug        bool     `env:"DEBUG" envDefault:"false"`
	AllowedHosts []string `env:"ALLOWED_HOSTS" envSeparator:"," envDefault:"*" validate:"min=1"`
}

type DatabaseConfig struct {
	URL          string        `env:"DATABASE_URL" envDefault:"sqlite:///db.sqlite3" validate:"required"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10" validate:"gte=0"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5" validate:"gte=0"`
	ConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// StorageConfig selects the media backend. A non-empty bucket name switches
// media to S3; otherwise files live under MediaRoot.
type StorageConfig struct {
	Bucket          string `env:"AWS_STORAGE_BUCKET_NAME"`
	Endpoint        string `env:"AWS_S3_ENDPOINT_URL"`
	Region          string `env:"AWS_S3_REGION_NAME" envDefault:"fr-par"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	QuerystringTTL  int    `env:"AWS_QUERYSTRING_EXPIRE" envDefault:"3600" validate:"gt=0"`
	MediaRoot       string `env:"MEDIA_ROOT" envDefault:"media"`
}

type AdminConfig struct {
	Username     string        `env:"ADMIN_USERNAME"`
	PasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	SessionTTL   time.Duration `env:"ADMIN_SESSION_TTL" envDefault:"12h" validate:"gt=0"`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	Format string `env:"LOG_FORMAT" validate:"omitempty,oneof=json console"`
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(true): func(v string) (interface{}, error) {
				return parseBool(v)
			},
		},
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.normalize()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := ParseDatabaseURL(cfg.Database.URL); err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	return cfg, nil
}

func (c *Config) normalize() {
	hosts := make([]string, 0, len(c.Security.AllowedHosts))
	for _, h := range c.Security.AllowedHosts {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, strings.ToLower(h))
		}
	}
	c.Security.AllowedHosts = hosts

	c.Storage.Bucket = strings.TrimSpace(c.Storage.Bucket)
	c.Storage.Endpoint = strings.TrimSpace(c.Storage.Endpoint)
	c.Storage.AccessKeyID = strings.TrimSpace(c.Storage.AccessKeyID)
	c.Storage.SecretAccessKey = strings.TrimSpace(c.Storage.SecretAccessKey)

	if c.Logging.Format == "" {
		c.Logging.Format = "json"
		if c.Security.Debug {
			c.Logging.Format = "console"
		}
	}
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// StorageMode reports "s3" when a bucket is configured, "local" otherwise.
func (c *Config) StorageMode() string {
	if c.Storage.Bucket != "" {
		return "s3"
	}
	return "local"
}

// AdminEnabled reports whether admin credentials are configured.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Username != "" && c.Admin.PasswordHash != ""
}

func (c *Config) PresignTTL() time.Duration {
	return time.Duration(c.Storage.QuerystringTTL) * time.Second
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "ok", "y", "yes", "1":
		return true, nil
	case "false", "off", "n", "no", "0", "":
		return false, nil
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}
