package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"tablereservation/config"
	_ "tablereservation/docs"
	"tablereservation/internal/adapters/auth"
	"tablereservation/internal/adapters/code"
	delivery "tablereservation/internal/delivery/http"
	"tablereservation/internal/delivery/http/controllers"
	"tablereservation/internal/delivery/http/middleware"
	"tablereservation/internal/repository/postgres"
	"tablereservation/internal/services"
)

// @title Table Reservation API
// @version 1.0
// @description Store table reservations: booking, owner approval, and kiosk visit confirmation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	cancel()

	reservationRepo := postgres.NewReservationRepository(db)
	storeRepo := postgres.NewStoreRepository(db)
	memberRepo := postgres.NewMemberRepository(db)

	jwtProvider := auth.NewJWTProvider(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	codes := code.NewRandomGenerator()

	memberService := services.NewMemberService(memberRepo, hasher, jwtProvider, cfg.JWTExpiry)
	storeService := services.NewStoreService(storeRepo, memberRepo)
	reservationService := services.NewReservationService(reservationRepo, storeRepo, memberRepo, codes, nil)

	router := delivery.NewRouter(
		controllers.NewMemberController(logger, memberService),
		controllers.NewStoreController(logger, storeService),
		controllers.NewReservationController(logger, reservationService),
		jwtProvider,
	)

	handler := middleware.Logging(logger, router)
	if len(cfg.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.AllowedOrigins, handler)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("server stopped")
}
