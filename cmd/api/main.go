package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skprofiling/members-api/internal/api"
	"github.com/skprofiling/members-api/internal/infrastructure/config"
	mongostore "github.com/skprofiling/members-api/internal/infrastructure/db/mongo"
	redisstore "github.com/skprofiling/members-api/internal/infrastructure/db/redis"
	"github.com/skprofiling/members-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Development(),
	})

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		logg.Fatal().Err(err).Msg("index creation failed")
	}

	// The cache is an optimisation; run without it rather than refuse to start.
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Warn().Err(err).Msg("redis unavailable, announcement caching disabled")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}

	e := api.NewRouter(db, rdb, cfg, logg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server start failed")
		}
	}()
	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("shutdown failed")
	}
	logg.Info().Msg("server stopped")
}
