package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"splitledger/internal/api"
	"splitledger/internal/auth"
	"splitledger/internal/config"
	"splitledger/internal/events"
	"splitledger/internal/notify"
	"splitledger/internal/service"
	"splitledger/internal/session"
	"splitledger/internal/storage/sqlite"
	"splitledger/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	notifier, err := buildNotifier(cfg)
	if err != nil {
		slog.Error("failed to initialize notifier", "error", err)
		os.Exit(1)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("failed to initialize event publisher", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		slog.Info("event publisher initialized", "exchange", cfg.AMQPExchange)
	} else {
		slog.Info("event publishing disabled, activity feed will stay empty")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	sessions := session.NewManager(store, notifier)
	defer sessions.Shutdown()

	router := api.NewRouter(api.Deps{
		Auth:           auth.NewService(store),
		Tokens:         tokens,
		Groups:         service.NewGroupService(store, notifier),
		Expenses:       service.NewExpenseService(store, notifier, publisher),
		Personal:       service.NewPersonalService(store, notifier),
		Sessions:       sessions,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h2c.NewHandler(router, &http2.Server{}),
	}

	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func buildNotifier(cfg *config.Config) (notify.Notifier, error) {
	if cfg.RedisURL == "" {
		slog.Info("using in-process notifier, suitable for single-node only")
		return notify.NewMemory(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	slog.Info("redis notifier initialized", "addr", opts.Addr)
	return notify.NewRedis(client, func(err error) {
		slog.Error("notification stream error", "error", err)
	}), nil
}
