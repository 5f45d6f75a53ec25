package config

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Site    SiteConfig    `mapstructure:"site"`
	Backend BackendConfig `mapstructure:"backend"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TLS             TLSConfig     `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// SiteConfig describes the public storefront origin.
type SiteConfig struct {
	// URL is the canonical public origin used when request headers cannot be trusted.
	URL string `mapstructure:"url"`
}

// BackendConfig holds the backend REST API settings.
type BackendConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestsPerSecond int           `mapstructure:"max_requests_per_second"`
	UserAgent            string        `mapstructure:"user_agent"`
}

// CacheConfig selects and configures the document cache store.
type CacheConfig struct {
	Driver   string      `mapstructure:"driver"` // "none", "sqlite" or "redis"
	FilePath string      `mapstructure:"file_path"`
	Redis    RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// AuthConfig names the cookie that carries the admin session token.
type AuthConfig struct {
	CookieName string `mapstructure:"cookie_name"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

var (
	schemeRe = regexp.MustCompile(`^https?://`)
	portRe   = regexp.MustCompile(`^[0-9]{1,5}$`)
)

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values. Every key needs one so AutomaticEnv can override it.
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.tls.enabled", false)
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("site.url", "")
	v.SetDefault("backend.base_url", "http://localhost:8080")
	v.SetDefault("backend.timeout", 60*time.Second)
	v.SetDefault("backend.max_requests_per_second", 0)
	v.SetDefault("backend.user_agent", "parts-storefront/1.0")
	v.SetDefault("cache.driver", "none")
	v.SetDefault("cache.file_path", "storefront-cache.db")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.database", 0)
	v.SetDefault("cache.redis.key_prefix", "storefront:")
	v.SetDefault("auth.cookie_name", "auth_token")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Set up viper to read from config file
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/storefront/")
	v.AddConfigPath("$HOME/.storefront")

	// Attempt to read the config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The storefront has always been deployed with these unprefixed names.
	// BindEnv takes the first variable that is set.
	if err := v.BindEnv("site.url", "STOREFRONT_SITE_URL", "SITE_URL", "NEXT_PUBLIC_SITE_URL"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("backend.base_url", "STOREFRONT_BACKEND_BASE_URL", "NEXT_PUBLIC_API_BASE_URL"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.port", "STOREFRONT_SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Backend.BaseURL), "/")
	cfg.Site.URL = strings.TrimSpace(cfg.Site.URL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail on the first request.
// An invalid site URL is not an error here: the URL resolver degrades to its
// built-in production origin instead.
func (c Config) Validate() error {
	return validation.Errors{
		"server.port": validation.Validate(c.Server.Port, validation.Required, validation.Match(portRe)),
		"backend": validation.ValidateStruct(&c.Backend,
			validation.Field(&c.Backend.BaseURL, validation.Required, validation.Match(schemeRe).Error("must start with http:// or https://")),
			validation.Field(&c.Backend.Timeout, validation.Min(time.Duration(0))),
			validation.Field(&c.Backend.MaxRequestsPerSecond, validation.Min(0)),
		),
		"cache.driver":     validation.Validate(c.Cache.Driver, validation.In("none", "sqlite", "redis")),
		"auth.cookie_name": validation.Validate(c.Auth.CookieName, validation.Required),
		"log.format":       validation.Validate(c.Log.Format, validation.In("console", "json")),
	}.Filter()
}
