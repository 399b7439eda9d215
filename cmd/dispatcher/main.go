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

	"crm-service/internal/config"
	"crm-service/internal/db"
	"crm-service/internal/events"
	"crm-service/internal/logger"
	"crm-service/internal/metrics"
	"crm-service/internal/queue"
	"crm-service/internal/repository/postgres"
	"crm-service/internal/service/dispatch"
	"crm-service/internal/service/email"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const prefetch = 10

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[DISPATCHER] No .env file found, relying on system env vars")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[DISPATCHER] invalid configuration: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("[DISPATCHER] AMQP_URL must be set")
	}

	logger, err := logger.New("crm-dispatcher", cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("[DISPATCHER] %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("dispatcher stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("dispatcher stopped")
}

func run(cfg config.AppConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.ConnectDB(ctx, db.PostgresConfig{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns})
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := db.NewRedisClient(ctx, db.RedisConfig{
		Address:  cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
		PoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()

	rabbit, err := queue.NewRabbitMQ(cfg.AMQPURL)
	if err != nil {
		return err
	}
	defer rabbit.Close()

	var mailer dispatch.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName)
	} else {
		logger.Warn("SMTP_HOST not set, email messages will be marked failed")
	}

	dispatcher := dispatch.NewDispatcher(
		postgres.NewMessageRepository(pool),
		postgres.NewClientRepository(pool),
		mailer,
		cfg.DispatchRate,
		events.NewBus(redisClient, logger),
		"A message from "+cfg.SMTPFromName,
		logger,
	)

	metricsSrv := &http.Server{
		Addr:              cfg.DispatchMetricsAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("dispatcher consuming",
		zap.String("queue", queue.QueueName),
		zap.Float64("rate_per_second", cfg.DispatchRate),
		zap.String("metrics_addr", cfg.DispatchMetricsAddr),
	)

	consumer := queue.NewConsumer(rabbit.Ch, dispatcher, prefetch, logger)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
