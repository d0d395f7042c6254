package controllers

import (
	"net/http"
	"strconv"

	"eventuras/internal/delivery/http/helpers"
	"eventuras/internal/delivery/http/middleware"
	"eventuras/internal/domain"
)

// requestScope extracts the authenticated principal and tenant organization
// from the request context. It writes the error response itself and returns
// ok=false when either is missing; callers should return immediately.
func requestScope(w http.ResponseWriter, r *http.Request) (*domain.Principal, int, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, 0, false
	}
	orgID, ok := middleware.OrgIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeOrgNotSpecified, "missing "+middleware.OrgHeader+" header")
		return nil, 0, false
	}
	return principal, orgID, true
}

// pathID parses the named path value as a positive int64 id. It writes a 400
// response and returns ok=false on a missing or malformed value.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
