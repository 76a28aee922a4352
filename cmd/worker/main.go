package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/config"
	"github.com/jwalitptl/patient-portal/internal/email"
	"github.com/jwalitptl/patient-portal/internal/repository/postgres"
	"github.com/jwalitptl/patient-portal/internal/worker"
	"github.com/jwalitptl/patient-portal/pkg/logger"
	"github.com/jwalitptl/patient-portal/pkg/messaging/redis"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
)

func setupHealthCheck(port int, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
	return srv
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.New(logger.Config{Level: cfg.LogLevel, Debug: cfg.Debug})

	if cfg.RedisURL == "" {
		log.Fatal().Msg("REDIS_URL is required for the notification worker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewDB(ctx, postgres.Config{URL: cfg.DatabaseURL, MaxOpenConns: 2})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(ctx, redis.Config{URL: cfg.RedisURL, MaxRetries: 3})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(cfg.MetricsNamespace, reg)

	sender := email.NewService(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	mailer := worker.NewMailer(
		broker,
		postgres.NewUserRepository(postgres.NewBaseRepository(db)),
		sender,
		worker.MailerConfig{
			PortalURL:     cfg.PortalURL,
			RetryAttempts: 3,
			RetryDelay:    5 * time.Second,
		},
		m,
	)

	health := setupHealthCheck(cfg.WorkerPort, reg)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("shutting down...")
		cancel()
	}()

	if err := mailer.Start(ctx); err != nil {
		log.Error().Err(err).Msg("notification mailer stopped")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_ = health.Shutdown(shutdownCtx)
}
