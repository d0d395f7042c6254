package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventuras/internal/delivery/http/controllers"
	"eventuras/internal/delivery/http/middleware"
	"eventuras/internal/domain"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Orders        *controllers.OrderController
	Invoices      *controllers.InvoiceController
	Health        *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// Org-scoped routes require both a Bearer token and the Eventuras-Org-Id
// header; auth and health routes are open.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	scoped := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireOrg(h))
	}

	// Auth
	mux.HandleFunc("POST /v3/auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /v3/auth/login", c.Auth.Login)

	// Events
	mux.HandleFunc("POST /v3/events", scoped(c.Events.CreateEvent))
	mux.HandleFunc("GET /v3/events", scoped(c.Events.ListEvents))
	mux.HandleFunc("GET /v3/events/{eventID}", scoped(c.Events.GetEventByID))
	mux.HandleFunc("POST /v3/events/{eventID}/products", scoped(c.Events.AddProduct))
	mux.HandleFunc("GET /v3/events/{eventID}/statistics", scoped(c.Events.GetRegistrationStatistics))
	mux.HandleFunc("GET /v3/events/{eventID}/registrations", scoped(c.Registrations.ListRegistrationsForEvent))

	// Registrations
	mux.HandleFunc("POST /v3/registrations", scoped(c.Registrations.CreateRegistration))
	mux.HandleFunc("GET /v3/registrations/{id}", scoped(c.Registrations.GetRegistrationByID))
	mux.HandleFunc("PUT /v3/registrations/{id}", scoped(c.Registrations.UpdateRegistration))
	mux.HandleFunc("POST /v3/registrations/{id}/products", scoped(c.Orders.ReconcileProducts))

	// Orders
	mux.HandleFunc("GET /v3/orders/{id}", scoped(c.Orders.GetOrderByID))
	mux.HandleFunc("POST /v3/orders/{id}/draft-registration", scoped(c.Registrations.CreateDraftFromCancelledOrder))

	// Invoices
	mux.HandleFunc("POST /v3/invoices", scoped(c.Invoices.CreateInvoice))
	mux.HandleFunc("GET /v3/invoices/{id}", scoped(c.Invoices.GetInvoiceByID))
	mux.HandleFunc("POST /v3/invoices/{id}/paid", scoped(c.Invoices.MarkInvoicePaid))

	// Operational endpoints
	mux.HandleFunc("GET /healthz", c.Health.Healthz)
	mux.HandleFunc("GET /v3/notifications/health", scoped(c.Health.NotificationHealth))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
