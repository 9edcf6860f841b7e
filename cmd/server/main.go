package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dextasynergyservices/myweddingpage/internal/api"
	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	mongostore "github.com/dextasynergyservices/myweddingpage/internal/infrastructure/db/mongo"
	redisstore "github.com/dextasynergyservices/myweddingpage/internal/infrastructure/db/redis"
	"github.com/dextasynergyservices/myweddingpage/internal/infrastructure/notify"
	"github.com/dextasynergyservices/myweddingpage/internal/infrastructure/queue"
	"github.com/dextasynergyservices/myweddingpage/internal/pkg/config"
	"github.com/dextasynergyservices/myweddingpage/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Persistence ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongostore.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongostore.NewResetTokenRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("reset token index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Notification pipeline ---
	router := notify.NewRouter()
	router.Register(domain.ChannelEmail, notify.NewEmailSender(notify.EmailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	}))
	router.Register(domain.ChannelWhatsApp, notify.NewWhatsAppSender(cfg.WhatsApp.PhoneID, cfg.WhatsApp.AccessToken))

	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, router, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
