package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/5w1tchy/course-library-api/internal/api/handlers"
	"github.com/5w1tchy/course-library-api/internal/api/handlers/authors"
	"github.com/5w1tchy/course-library-api/internal/api/handlers/collections"
	"github.com/5w1tchy/course-library-api/internal/api/handlers/courses"
	"github.com/5w1tchy/course-library-api/internal/api/handlers/health"
	mw "github.com/5w1tchy/course-library-api/internal/api/middlewares"
	"github.com/5w1tchy/course-library-api/internal/api/router"
	"github.com/5w1tchy/course-library-api/internal/api/routes"
	"github.com/5w1tchy/course-library-api/internal/config"
	"github.com/5w1tchy/course-library-api/internal/models"
	"github.com/5w1tchy/course-library-api/internal/repository/sqlconnect"
	jwtutil "github.com/5w1tchy/course-library-api/internal/security/jwt"
	authorstore "github.com/5w1tchy/course-library-api/internal/store/authors"
	coursestore "github.com/5w1tchy/course-library-api/internal/store/courses"
	"github.com/5w1tchy/course-library-api/internal/validate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// WriteScope is the token scope required by POST, PUT and DELETE when the
// token is scoped at all.
const WriteScope = "authors:write"

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	if err := validate.Config(cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range validate.HardeningWarnings(cfg) {
		logger.Warn("config", zap.String("warning", w))
	}

	db, err := sqlconnect.ConnectDB(ctx, cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to database")

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		if rdb, err = newRedis(cfg); err != nil {
			logger.Fatal("redis config", zap.Error(err))
		}
		defer rdb.Close()
		// Fail fast if Redis isn't reachable
		if err := validate.PingRedis(rdb, 3*time.Second); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		logger.Info("connected to redis")
	}

	mappings, err := models.NewMappings()
	if err != nil {
		logger.Fatal("invalid property mappings", zap.Error(err))
	}
	table, err := routes.NewTable(routes.All)
	if err != nil {
		logger.Fatal("invalid route table", zap.Error(err))
	}
	table.MustResolve(handlers.LinkedRoutes...)

	links := routes.Linker{Table: table, BaseURL: cfg.PublicBaseURL}.For
	paging := handlers.Paging{DefaultSize: cfg.PageSizeDefault, MaxSize: cfg.PageSizeMax}
	authorsDB := authorstore.New(db)
	coursesDB := coursestore.New(db)

	var protect mw.Middleware
	if cfg.AuthEnabled() {
		signer := jwtutil.NewSigner(cfg)
		requireAuth, requireScope := mw.RequireAuth(signer), mw.RequireScope(WriteScope)
		protect = func(next http.Handler) http.Handler { return requireAuth(requireScope(next)) }
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := mw.NewMetrics(promReg)
	if err != nil {
		logger.Fatal("metrics registration", zap.Error(err))
	}

	checks := map[string]health.Check{"postgres": db.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	mux, err := router.Router(router.Handlers{
		Authors:     authors.NewHandler(authorsDB, mappings, links, paging, logger),
		Courses:     courses.NewHandler(coursesDB, authorsDB, mappings, links, paging, logger),
		Collections: collections.NewHandler(authorsDB, links, logger),
		Health:      health.Handler{Checks: checks},
		Metrics:     promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
		Protect:     protect,
	})
	if err != nil {
		logger.Fatal("router", zap.Error(err))
	}

	// Redis limits are shared by every instance; without Redis each process
	// limits on its own.
	proxies, err := mw.ParseProxies(cfg.TrustedProxies)
	if err != nil {
		logger.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	var burstLimit, windowLimit mw.Middleware
	if rdb != nil {
		burstLimit = mw.NewRedisTokenBucket(rdb, cfg.RateLimitPerSec, cfg.RateLimitBurst, mw.PerIPKey("tb", proxies), logger).Middleware
		windowLimit = mw.NewRedisSlidingWindow(rdb, cfg.WindowLimit, cfg.Window, mw.PerIPKey("sw", proxies), logger).Middleware
	} else {
		burstLimit = mw.NewLocalRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst, mw.PerIPKey("tb", proxies)).Middleware
	}

	secureMux := mw.Chain(mux,
		mw.RequestID,
		mw.Recovery(logger),
		mw.RequestLogger(logger),
		metrics.Middleware,
		mw.Cors(cfg.CORSAllowedOrigins),
		mw.ResponseTime,
		mw.HPP(mw.DefaultHPPOptions()),
		burstLimit,
		windowLimit,
		mw.BodySizeLimit(cfg.MaxBodySize),
		mw.Compression,
		mw.SecurityHeaders(cfg.StrictSecurity),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           secureMux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr), zap.Bool("tls", cfg.TLSEnabled()))
		if cfg.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
