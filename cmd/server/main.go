package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basegraph.app/roster/common/id"
	"basegraph.app/roster/common/logger"
	"basegraph.app/roster/common/otel"
	"basegraph.app/roster/core/config"
	"basegraph.app/roster/core/db"
	"basegraph.app/roster/internal/http/middleware"
	httprouter "basegraph.app/roster/internal/http/router"
	"basegraph.app/roster/internal/notification"
	"basegraph.app/roster/internal/queue"
	"basegraph.app/roster/internal/ratelimit"
	"basegraph.app/roster/internal/service"
	"basegraph.app/roster/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "roster starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	if cfg.DB.AutoMigrate {
		if err := db.Migrate(ctx, cfg.DB.DSN); err != nil {
			slog.ErrorContext(ctx, "failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "migrations applied")
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	// Redis backs the notification stream and, optionally, the rate limiter.
	var redisClient *redis.Client
	if cfg.Queue.Async || cfg.RateLimit.Backend == "redis" {
		redisClient, err = connectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.Stream)
	}

	var dispatcher service.NotificationDispatcher
	if cfg.Queue.Async {
		// The producer shares redisClient, which is closed above.
		dispatcher = service.NewQueuedDispatcher(queue.NewRedisProducer(redisClient, cfg.Queue.Stream, slog.Default()))
	} else {
		dispatcher = service.NewSyncDispatcher(notification.NewRenderer(cfg.SiteURL), notification.NewTransport(cfg.Email))
		slog.InfoContext(ctx, "invitation emails sent inline", "transport", cfg.Email.Transport)
	}

	var limitStore ratelimit.Store
	if cfg.RateLimit.Backend == "redis" {
		limitStore = ratelimit.NewRedisStore(redisClient)
	} else {
		limitStore = ratelimit.NewMemoryStore(nil)
	}
	limiter := ratelimit.NewLimiter(limitStore, cfg.RateLimit)

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, service.NewTxRunner(database), dispatcher, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, limiter)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func setupRouter(cfg config.Config, services *service.Services, limiter *ratelimit.Limiter) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORS))

	httprouter.SetupRoutes(router, services, limiter, httprouter.RouterConfig{
		Version:       cfg.OTel.ServiceVersion,
		DashboardURL:  cfg.SiteURL,
		CookieDomain:  cfg.Auth.CookieDomain,
		SecureCookies: cfg.Auth.SecureCookies,
		SessionTTL:    cfg.Auth.SessionTTL,
	})

	return router
}

const banner = `
 ____   ___  ____ _____ _____ ____
|  _ \ / _ \/ ___|_   _| ____|  _ \
| |_) | | | \___ \ | | |  _| | |_) |
|  _ <| |_| |___) || | | |___|  _ <
|_| \_\\___/|____/ |_| |_____|_| \_\
`
