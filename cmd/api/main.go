// Support backend API server.
//
// @title        Support Assistant API
// @version      1.0
// @description  Support ticketing backend with streamed AI assistant replies.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/seedx/support-backend/docs"
	"github.com/seedx/support-backend/internal/api"
	"github.com/seedx/support-backend/internal/infrastructure/ai"
	"github.com/seedx/support-backend/internal/infrastructure/config"
	mongodb "github.com/seedx/support-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/seedx/support-backend/internal/infrastructure/db/redis"
	"github.com/seedx/support-backend/internal/infrastructure/queue"
	"github.com/seedx/support-backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	dispatcher := queue.NewDispatcher(0, mongodb.NewMessageRepository(db), log)
	dispatcher.Start(ctx)

	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.URL, log)

	e := api.NewRouter(cfg, db, rdb, aiClient, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
