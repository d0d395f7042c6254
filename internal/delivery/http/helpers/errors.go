package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventuras/internal/domain"
	"eventuras/internal/observability"
)

// WriteServiceError translates a service-layer error into the standard JSON
// error envelope. Domain sentinels map to stable codes; anything unknown is
// logged with request context and reported as a 500 without leaking internals.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrOrgNotSpecified):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeOrgNotSpecified, "organization header missing")
	case errors.Is(err, domain.ErrInvoicingConflict):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeInvoicingConflict, err.Error())
	case errors.Is(err, domain.ErrNotAccessible):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "access denied")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicateRegistration):
		WriteJSONError(w, http.StatusConflict, ErrCodeDuplicate, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		WriteJSONError(w, http.StatusConflict, ErrCodeInvalidTransition, err.Error())
	case errors.Is(err, domain.ErrConflict):
		observability.ConcurrencyConflictsTotal.Inc()
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "the resource was modified concurrently, retry the request")
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"err", err,
		)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
