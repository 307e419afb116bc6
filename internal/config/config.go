// Package config loads process configuration: a .env file (if present), then
// an optional config.yaml, then the environment, which wins.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	PublicBaseURL string
	TLSCertFile   string
	TLSKeyFile    string

	DatabaseURL    string
	DBMaxOpenConns int

	Redis Redis

	JWTSecret string
	ClockSkew time.Duration
	AccessTTL time.Duration

	CORSAllowedOrigins []string
	TrustedProxies     []string
	MaxBodySize        int64
	RateLimitPerSec    float64
	RateLimitBurst     int
	WindowLimit        int
	Window             time.Duration
	StrictSecurity     bool

	PageSizeDefault int
	PageSizeMax     int
}

// Redis is either a full URL or split address/credentials.
type Redis struct {
	URL      string
	Addr     string
	User     string
	Password string
}

// Enabled reports whether any Redis endpoint is configured.
func (r Redis) Enabled() bool { return r.URL != "" || r.Addr != "" }

func (c Config) IsProduction() bool { return strings.EqualFold(c.AppEnv, "production") }

// TLSEnabled reports whether the server should terminate TLS itself.
func (c Config) TLSEnabled() bool { return c.TLSCertFile != "" && c.TLSKeyFile != "" }

// AuthEnabled reports whether mutating routes require a bearer token.
func (c Config) AuthEnabled() bool { return c.JWTSecret != "" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("http_addr", ":3000")
	v.SetDefault("public_base_url", "")
	v.SetDefault("tls_cert_file", "")
	v.SetDefault("tls_key_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("redis_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_user", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("auth_clock_skew_sec", 60)
	v.SetDefault("auth_access_ttl", "15m")
	v.SetDefault("cors_allowed_origins", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("trusted_proxies", "")
	v.SetDefault("max_body_size", 10*1024*1024)
	v.SetDefault("rate_limit_per_sec", 5)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("rate_limit_window_max", 3000)
	v.SetDefault("rate_limit_window", "60m")
	v.SetDefault("strict_security", false)
	v.SetDefault("page_size_default", 10)
	v.SetDefault("page_size_max", 25)
}

// Load reads envFile (missing is fine), config.yaml from configDir (missing is
// fine) and the environment.
func Load(envFile, configDir string) (Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}
	return FromViper(v), nil
}

// FromViper maps already-populated viper keys onto a Config.
func FromViper(v *viper.Viper) Config {
	setDefaults(v)
	return Config{
		AppEnv:         v.GetString("app_env"),
		HTTPAddr:       v.GetString("http_addr"),
		PublicBaseURL:  strings.TrimRight(v.GetString("public_base_url"), "/"),
		TLSCertFile:    v.GetString("tls_cert_file"),
		TLSKeyFile:     v.GetString("tls_key_file"),
		DatabaseURL:    v.GetString("database_url"),
		DBMaxOpenConns: v.GetInt("db_max_open_conns"),
		Redis: Redis{
			URL:      v.GetString("redis_url"),
			Addr:     v.GetString("redis_addr"),
			User:     v.GetString("redis_user"),
			Password: v.GetString("redis_password"),
		},
		JWTSecret:          v.GetString("auth_jwt_secret"),
		ClockSkew:          time.Duration(v.GetInt("auth_clock_skew_sec")) * time.Second,
		AccessTTL:          v.GetDuration("auth_access_ttl"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		TrustedProxies:     splitList(v.GetString("trusted_proxies")),
		MaxBodySize:        v.GetInt64("max_body_size"),
		RateLimitPerSec:    v.GetFloat64("rate_limit_per_sec"),
		RateLimitBurst:     v.GetInt("rate_limit_burst"),
		WindowLimit:        v.GetInt("rate_limit_window_max"),
		Window:             v.GetDuration("rate_limit_window"),
		StrictSecurity:     v.GetBool("strict_security"),
		PageSizeDefault:    v.GetInt("page_size_default"),
		PageSizeMax:        v.GetInt("page_size_max"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
