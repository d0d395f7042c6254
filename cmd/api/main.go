package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventuras/config"
	_ "eventuras/docs"
	"eventuras/internal/adapters/auth"
	"eventuras/internal/adapters/email"
	"eventuras/internal/adapters/sms"
	httpdelivery "eventuras/internal/delivery/http"
	"eventuras/internal/delivery/http/controllers"
	"eventuras/internal/delivery/http/middleware"
	"eventuras/internal/domain"
	"eventuras/internal/repository/postgres"
	"eventuras/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Eventuras API
// @version 1.0
// @description Event registration, order reconciliation, invoicing and notification dispatch.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	productRepo := postgres.NewProductRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	settingsRepo := postgres.NewChannelSettingsRepository(db)
	userRepo := postgres.NewUserRepository(db)

	tokens := auth.NewJWTTokens(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	emailChannels := []services.EmailChannel{
		{Kind: domain.ChannelSMTP, Factory: email.NewSMTPSender},
		{Kind: domain.ChannelSES, Factory: email.NewSESSender},
		{Kind: domain.ChannelSendGrid, Factory: email.NewSendGridSender},
		{Kind: domain.ChannelLog, Factory: func(*domain.ChannelSettings) (domain.EmailSender, error) {
			return email.NewLogSender(logger), nil
		}},
	}
	smsChannels := []services.SmsChannel{
		{Kind: domain.ChannelTwilio, Factory: sms.NewTwilioSender},
		{Kind: domain.ChannelLog, Factory: func(*domain.ChannelSettings) (domain.SmsSender, error) {
			return sms.NewLogSender(logger), nil
		}},
	}

	access := services.NewAccessControlService()
	notifications := services.NewNotificationService(settingsRepo, emailChannels, smsChannels, logger)
	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry)
	eventService := services.NewEventService(eventRepo, productRepo, access, serviceTimeout)
	registrationService := services.NewRegistrationService(eventRepo, productRepo, registrationRepo, orderRepo, userRepo, access, notifications, logger, serviceTimeout)
	orderService := services.NewOrderService(registrationRepo, productRepo, orderRepo, access, logger, serviceTimeout)
	invoicingService := services.NewInvoicingService(orderRepo, invoiceRepo, access, serviceTimeout)
	statisticsService := services.NewStatisticsService(eventRepo, registrationRepo, access, serviceTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:          controllers.NewAuthController(logger, authService),
		Events:        controllers.NewEventController(logger, eventService, statisticsService),
		Registrations: controllers.NewRegistrationController(logger, registrationService),
		Orders:        controllers.NewOrderController(logger, orderService),
		Invoices:      controllers.NewInvoiceController(logger, invoicingService),
		Health:        controllers.NewHealthController(logger, db, notifications),
	}, tokens, logger)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)
	if len(cfg.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.AllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	logger.Info("server stopped")
}
