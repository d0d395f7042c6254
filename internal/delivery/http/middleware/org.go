package middleware

import (
	"context"
	"net/http"
	"strconv"

	h "eventuras/internal/delivery/http/helpers"
)

// OrgHeader carries the tenant organization id on every org-scoped request.
const OrgHeader = "Eventuras-Org-Id"

const orgIDKey contextKey = "orgID"

// SetOrgID returns a context with the tenant organization id set.
func SetOrgID(ctx context.Context, orgID int) context.Context {
	return context.WithValue(ctx, orgIDKey, orgID)
}

// OrgIDFromContext returns the tenant organization id from the context,
// if present.
func OrgIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(orgIDKey).(int)
	return id, ok
}

// RequireOrg returns a wrapper that parses the organization header and sets
// the org id in the request context. A missing or malformed header responds
// with 400 org_not_specified and does not call next.
func RequireOrg(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(OrgHeader)
		if raw == "" {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeOrgNotSpecified, "missing "+OrgHeader+" header")
			return
		}
		orgID, err := strconv.Atoi(raw)
		if err != nil || orgID < 1 {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeOrgNotSpecified, "invalid "+OrgHeader+" header")
			return
		}
		r = r.WithContext(SetOrgID(r.Context(), orgID))
		next(w, r)
	}
}
