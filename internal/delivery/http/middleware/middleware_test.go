package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventuras/internal/domain"
)

type fakeVerifier struct {
	principal *domain.Principal
	err       error
}

func (f *fakeVerifier) Verify(token string) (*domain.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.principal, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *fakeVerifier
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid token",
			header:     "Bearer good-token",
			verifier:   &fakeVerifier{principal: &domain.Principal{UserID: "user-1"}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			header:     "",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad-token",
			verifier:   &fakeVerifier{err: assert.AnError},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var gotPrincipal *domain.Principal
			next := func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotPrincipal, _ = PrincipalFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "http://test/v3/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			RequireAuth(tt.verifier, testLogger())(next)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				require.NotNil(t, gotPrincipal)
				assert.Equal(t, "user-1", gotPrincipal.UserID)
			}
		})
	}
}

func TestRequireOrg(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantOrgID  int
	}{
		{name: "valid org header", header: "7", wantStatus: http.StatusOK, wantOrgID: 7},
		{name: "missing header", header: "", wantStatus: http.StatusBadRequest},
		{name: "non-numeric header", header: "acme", wantStatus: http.StatusBadRequest},
		{name: "zero org", header: "0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOrgID int
			next := func(w http.ResponseWriter, r *http.Request) {
				gotOrgID, _ = OrgIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "http://test/v3/events", nil)
			if tt.header != "" {
				req.Header.Set(OrgHeader, tt.header)
			}
			rr := httptest.NewRecorder()

			RequireOrg(next)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantOrgID, gotOrgID)
			}
		})
	}
}

func TestRequestID_EchoesIncoming(t *testing.T) {
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "http://test/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rr, req)

	assert.Equal(t, "req-42", gotID)
	assert.Equal(t, "req-42", rr.Header().Get(RequestIDHeader))
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "http://test/healthz", nil)
	rr := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}
