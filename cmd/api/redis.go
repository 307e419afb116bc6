package main

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/5w1tchy/course-library-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// newRedis builds the client from either a full URL (rediss:// enables TLS)
// or split address and credentials.
func newRedis(cfg config.Config) (*redis.Client, error) {
	if u := cfg.Redis.URL; u != "" {
		opt, err := redis.ParseURL(u)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return redis.NewClient(opt), nil
	}

	opt := &redis.Options{
		Addr:         cfg.Redis.Addr,
		Username:     cfg.Redis.User,
		Password:     cfg.Redis.Password,
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	// Hosted Redis behind split credentials speaks TLS.
	if cfg.IsProduction() {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opt), nil
}
