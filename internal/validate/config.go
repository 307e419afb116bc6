package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/course-library-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Config validates the loaded configuration. Fail-fast on bad config.
func Config(cfg config.Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL not set")
	}
	// An unset secret disables auth; a set one must be reasonably long.
	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("AUTH_ACCESS_TTL: invalid duration %s", cfg.AccessTTL)
	}
	if cfg.PageSizeMax < 1 {
		return fmt.Errorf("PAGE_SIZE_MAX: must be >= 1, got %d", cfg.PageSizeMax)
	}
	if cfg.PageSizeDefault < 1 || cfg.PageSizeDefault > cfg.PageSizeMax {
		return fmt.Errorf("PAGE_SIZE_DEFAULT: must be between 1 and %d, got %d", cfg.PageSizeMax, cfg.PageSizeDefault)
	}
	if cfg.MaxBodySize <= 0 {
		return fmt.Errorf("MAX_BODY_SIZE: must be > 0, got %d", cfg.MaxBodySize)
	}
	if cfg.RateLimitPerSec <= 0 || cfg.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_PER_SEC and RATE_LIMIT_BURST must be positive")
	}
	if cfg.Redis.Enabled() && (cfg.WindowLimit < 1 || cfg.Window <= 0) {
		return errors.New("RATE_LIMIT_WINDOW_MAX and RATE_LIMIT_WINDOW must be positive")
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(cfg config.Config) []string {
	var warns []string

	if cfg.AccessTTL > time.Hour {
		warns = append(warns, fmt.Sprintf("AUTH_ACCESS_TTL=%s is > 1h; consider shorter access tokens", cfg.AccessTTL))
	}
	if !cfg.AuthEnabled() {
		warns = append(warns, "AUTH_JWT_SECRET not set; POST/PUT/DELETE routes are open")
	}
	if cfg.PublicBaseURL == "" {
		warns = append(warns, "PUBLIC_BASE_URL not set; links are built from the request host")
	}

	// Production-specific nudges
	if cfg.IsProduction() {
		if u := cfg.Redis.URL; u != "" && strings.HasPrefix(u, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if cfg.Redis.URL == "" && cfg.Redis.Addr != "" && (cfg.Redis.User == "" || cfg.Redis.Password == "") {
			warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
		}
		if !cfg.Redis.Enabled() {
			warns = append(warns, "no Redis configured; rate limits are per process")
		}
		for _, o := range cfg.CORSAllowedOrigins {
			if o == "*" {
				warns = append(warns, "CORS_ALLOWED_ORIGINS contains *; any site can call the API")
			}
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}
