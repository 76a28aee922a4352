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
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/patient-portal/internal/config"
	appointmentHandler "github.com/jwalitptl/patient-portal/internal/handler/appointment"
	authHandler "github.com/jwalitptl/patient-portal/internal/handler/auth"
	contentHandler "github.com/jwalitptl/patient-portal/internal/handler/content"
	doctorHandler "github.com/jwalitptl/patient-portal/internal/handler/doctor"
	"github.com/jwalitptl/patient-portal/internal/handler/health"
	labResultHandler "github.com/jwalitptl/patient-portal/internal/handler/labresult"
	notificationHandler "github.com/jwalitptl/patient-portal/internal/handler/notification"
	prescriptionHandler "github.com/jwalitptl/patient-portal/internal/handler/prescription"
	reportHandler "github.com/jwalitptl/patient-portal/internal/handler/report"
	searchHandler "github.com/jwalitptl/patient-portal/internal/handler/search"
	symptomHandler "github.com/jwalitptl/patient-portal/internal/handler/symptom"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/repository/postgres"
	"github.com/jwalitptl/patient-portal/internal/router"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	accountService "github.com/jwalitptl/patient-portal/internal/service/account"
	appointmentService "github.com/jwalitptl/patient-portal/internal/service/appointment"
	contentService "github.com/jwalitptl/patient-portal/internal/service/content"
	doctorService "github.com/jwalitptl/patient-portal/internal/service/doctor"
	labResultService "github.com/jwalitptl/patient-portal/internal/service/labresult"
	notificationService "github.com/jwalitptl/patient-portal/internal/service/notification"
	prescriptionService "github.com/jwalitptl/patient-portal/internal/service/prescription"
	reportService "github.com/jwalitptl/patient-portal/internal/service/report"
	searchService "github.com/jwalitptl/patient-portal/internal/service/search"
	symptomService "github.com/jwalitptl/patient-portal/internal/service/symptom"
	"github.com/jwalitptl/patient-portal/pkg/auth"
	"github.com/jwalitptl/patient-portal/pkg/logger"
	"github.com/jwalitptl/patient-portal/pkg/messaging"
	"github.com/jwalitptl/patient-portal/pkg/messaging/redis"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
	"github.com/jwalitptl/patient-portal/pkg/security"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.New(logger.Config{Level: cfg.LogLevel, Debug: cfg.Debug})

	ctx := context.Background()

	db, err := postgres.NewDB(ctx, postgres.Config{URL: cfg.DatabaseURL, MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		log.Info().Msg("database schema applied")
	}

	// Notifications are published for the mail worker when Redis is configured
	var broker messaging.Broker = messaging.NopBroker{}
	if cfg.RedisURL != "" {
		broker, err = redis.NewRedisBroker(ctx, redis.Config{URL: cfg.RedisURL, MaxRetries: 3})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}
	defer broker.Close()

	tokens, err := auth.NewJWTService(auth.Config{
		Secret:     cfg.JWTSecret,
		Algorithm:  cfg.JWTAlgorithm,
		DefaultTTL: cfg.TokenTTL(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token service")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	m := metrics.New(cfg.MetricsNamespace, reg)
	v := validator.New()

	// Initialize repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	prescriptionRepo := postgres.NewPrescriptionRepository(base)
	reportRepo := postgres.NewReportRepository(base)
	labResultRepo := postgres.NewLabResultRepository(base)
	contentRepo := postgres.NewContentRepository(base)
	symptomRepo := postgres.NewSymptomRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)

	// Initialize services
	notificationSvc := notificationService.NewService(notificationRepo, userRepo, broker, v, m)
	accountSvc := accountService.NewService(userRepo, tokens, security.NewBcryptHasher(cfg.BcryptCost), v)
	doctorSvc := doctorService.NewService(doctorRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, notificationSvc, v)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, patientRepo, notificationSvc, v)
	reportSvc := reportService.NewService(reportRepo, patientRepo, notificationSvc, v, m)
	labResultSvc := labResultService.NewService(labResultRepo, patientRepo, notificationSvc, v, m)
	contentSvc := contentService.NewService(contentRepo, v)
	symptomSvc := symptomService.NewService(symptomRepo, v, m)
	searchSvc := searchService.NewService(doctorRepo, contentRepo)

	authMiddleware := middleware.NewAuthMiddleware(access.NewResolver(tokens, userRepo, patientRepo, doctorRepo))

	handlers := router.NewHandlers(
		authHandler.NewHandler(accountSvc),
		doctorHandler.NewHandler(doctorSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		prescriptionHandler.NewHandler(prescriptionSvc),
		reportHandler.NewHandler(reportSvc),
		labResultHandler.NewHandler(labResultSvc),
		contentHandler.NewHandler(contentSvc),
		symptomHandler.NewHandler(symptomSvc),
		notificationHandler.NewHandler(notificationSvc),
		searchHandler.NewHandler(searchSvc),
		health.NewHandler(db, reg),
	)

	r := router.NewRouter(authMiddleware, handlers, m, router.RouterConfig{
		Debug:            cfg.Debug,
		CORSOrigins:      cfg.CORSOrigins,
		RequestTimeout:   cfg.RequestTimeout(),
		RateLimitEnabled: cfg.RateLimitEnabled,
		RateLimit:        rate.Limit(cfg.RateLimitRPS),
		RateBurst:        cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r.Setup().Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
