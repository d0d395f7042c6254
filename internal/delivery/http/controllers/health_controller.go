package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"eventuras/internal/delivery/http/helpers"
	"eventuras/internal/domain"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	Logger        *slog.Logger
	DB            Pinger
	Notifications domain.NotificationService
}

func NewHealthController(logger *slog.Logger, db Pinger, notifications domain.NotificationService) *HealthController {
	return &HealthController{
		Logger:        logger,
		DB:            db,
		Notifications: notifications,
	}
}

// HealthResponse is the response body for GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Healthz godoc
// @Summary Liveness and store health
// @Description Returns ok when the service is up and the database answers a ping.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains {status: ok}"
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /healthz [get]
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := c.DB.PingContext(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "database unreachable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ReadinessResponse is the response body for GET /v3/notifications/health.
type ReadinessResponse struct {
	Channels []domain.ChannelHealth `json:"channels"`
}

// NotificationHealth godoc
// @Summary Notification channel readiness
// @Description Reports per-channel health for the organization's configured notification transports. Disabled channels are reported but not probed. Requires an organization admin.
// @Tags health
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Success 200 {object} helpers.APIResponse "data contains per-channel health"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /v3/notifications/health [get]
func (c *HealthController) NotificationHealth(w http.ResponseWriter, r *http.Request) {
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	if !principal.IsAdminOf(orgID) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "access denied")
		return
	}
	channels := c.Notifications.ChannelHealth(r.Context(), orgID)
	helpers.WriteJSONSuccess(w, http.StatusOK, ReadinessResponse{Channels: channels})
}
