// Package server assembles the application: configuration, logging,
// database, cache, dependency wiring, the route table, and graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/zaika/app/controllers"
	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/repositories"
	"github.com/shashiranjanraj/zaika/app/routes"
	"github.com/shashiranjanraj/zaika/app/services"
	"github.com/shashiranjanraj/zaika/config"
	"github.com/shashiranjanraj/zaika/pkg/cache"
	"github.com/shashiranjanraj/zaika/pkg/database"
	"github.com/shashiranjanraj/zaika/pkg/identity"
	"github.com/shashiranjanraj/zaika/pkg/logger"
	"github.com/shashiranjanraj/zaika/pkg/metrics"
	"github.com/shashiranjanraj/zaika/pkg/middleware"
	"github.com/shashiranjanraj/zaika/pkg/payment"
	"github.com/shashiranjanraj/zaika/pkg/reqid"
	"github.com/shashiranjanraj/zaika/pkg/router"
)

const shutdownTimeout = 15 * time.Second

// Run boots the server and blocks until SIGINT/SIGTERM, then drains
// in-flight requests.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	closeLogs := logger.Setup()
	defer closeLogs()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Reservation{},
		&models.Order{},
	); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, using in-memory rate limiting", "error", err)
	}

	r := BuildRouter()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// BuildRouter wires repositories, services, and controllers onto a fresh
// router with the full middleware stack. Exposed for route:list.
func BuildRouter() *router.Router {
	userRepo := repositories.NewUserRepository(database.DB)
	reservationRepo := repositories.NewReservationRepository(database.DB)
	orderRepo := repositories.NewOrderRepository(database.DB)

	var verifier identity.Verifier
	if clientID := config.GoogleClientID(); clientID != "" {
		verifier = identity.NewGoogle(clientID)
	}

	var gateway payment.Client
	if config.RazorpayKeyID() != "" && config.RazorpayKeySecret() != "" {
		gateway = payment.NewRazorpay(config.RazorpayKeyID(), config.RazorpayKeySecret())
	}

	authSvc := services.NewAuthService(userRepo, verifier)
	reservationSvc := services.NewReservationService(reservationRepo, services.RandomAllocator{})
	orderSvc := services.NewOrderService(orderRepo)
	paymentSvc := services.NewPaymentService(orderRepo, gateway,
		config.RazorpayKeySecret(), config.RazorpayWebhookSecret())

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions(config.CORSAllowedOrigins())),
		middleware.RateLimit(300, time.Minute),
	)

	routes.Register(r, routes.Controllers{
		Auth:        controllers.NewAuthController(authSvc),
		Reservation: controllers.NewReservationController(reservationSvc),
		Order:       controllers.NewOrderController(orderSvc),
		Payment:     controllers.NewPaymentController(paymentSvc),
		Resolve:     authSvc.ResolveUser,
		Metrics:     metrics.Handler(),
	})

	return r
}
