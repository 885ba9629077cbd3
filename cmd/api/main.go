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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicly/booking-api/internal/config"
	"github.com/clinicly/booking-api/internal/email"
	appointmenthandler "github.com/clinicly/booking-api/internal/handler/appointment"
	authhandler "github.com/clinicly/booking-api/internal/handler/auth"
	doctorhandler "github.com/clinicly/booking-api/internal/handler/doctor"
	prescriptionhandler "github.com/clinicly/booking-api/internal/handler/prescription"
	"github.com/clinicly/booking-api/internal/middleware"
	"github.com/clinicly/booking-api/internal/repository"
	"github.com/clinicly/booking-api/internal/repository/postgres"
	redisstore "github.com/clinicly/booking-api/internal/repository/redis"
	"github.com/clinicly/booking-api/internal/router"
	authservice "github.com/clinicly/booking-api/internal/service/auth"
	"github.com/clinicly/booking-api/internal/service/booking"
	"github.com/clinicly/booking-api/internal/service/catalog"
	prescriptionservice "github.com/clinicly/booking-api/internal/service/prescription"
	"github.com/clinicly/booking-api/pkg/auth"
	"github.com/clinicly/booking-api/pkg/logger"
	"github.com/clinicly/booking-api/pkg/metrics"
	"github.com/clinicly/booking-api/pkg/security"
)

const shutdownTimeout = 5 * time.Second

func main() {
	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal(err, "failed to load configuration")
	}
	if cfg.JWT.Secret == "" {
		appLogger.Fatal(nil, "JWT secret is not configured")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLogger.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)

	var tokenStore repository.TokenStore = redisstore.NoopTokenStore{}
	if cfg.Redis.URL != "" {
		tokenStore, err = redisstore.NewTokenStore(cfg.Redis.URL)
		if err != nil {
			appLogger.Fatal(err, "failed to connect to Redis")
		}
	} else {
		appLogger.Info("Redis not configured, token revocation disabled")
	}

	var notifier email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		notifier = email.NewGomailService(cfg.SMTP)
	} else {
		appLogger.Info("SMTP not configured, booking notifications disabled")
	}

	tokens := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.ExpiryHours)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer, "clinicly")

	catalogService := catalog.NewService(
		doctorRepo,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupSeconds)*time.Second,
	)
	authService := authservice.NewService(userRepo, doctorRepo, hasher, tokens, tokenStore, catalogService)
	bookingService := booking.NewService(appointmentRepo, doctorRepo, userRepo, notifier, appMetrics)
	rxService := prescriptionservice.NewService(prescriptionRepo, appointmentRepo)

	authMW := middleware.NewAuthMiddleware(tokens, tokenStore)
	engine := router.New(cfg, db, prometheus.DefaultRegisterer, authMW, router.Handlers{
		Auth:         authhandler.NewHandler(authService),
		Doctor:       doctorhandler.NewHandler(catalogService),
		Appointment:  appointmenthandler.NewHandler(bookingService),
		Prescription: prescriptionhandler.NewHandler(rxService),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(err, "forced shutdown")
	}
}
