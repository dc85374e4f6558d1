package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meridianadvisory/api-portal/internal/auth"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

// buildTestRouter builds a minimal router with the auth middleware and a
// role gate in front of a handler that returns 200.
func buildTestRouter(role string) *mux.Router {
	r := mux.NewRouter()
	secured := r.NewRoute().Subrouter()
	secured.Use(auth.Middleware)
	gated := secured.PathPrefix("/protected").Subrouter()
	gated.Use(auth.RequireRole(role))
	gated.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	return r
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(1, "someone@example.com", role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(r *mux.Router, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	auth.Configure(testSecret, time.Hour)
	r := buildTestRouter(auth.RoleAffiliate)

	t.Run("missing token is 401", func(t *testing.T) {
		rec := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		rec := doRequest(r, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role is 403", func(t *testing.T) {
		rec := doRequest(r, tokenForRole(t, auth.RoleClient))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching role passes", func(t *testing.T) {
		rec := doRequest(r, tokenForRole(t, auth.RoleAffiliate))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin passes every gate", func(t *testing.T) {
		rec := doRequest(r, tokenForRole(t, auth.RoleAdmin))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestParseToken_RoundTrip(t *testing.T) {
	auth.Configure(testSecret, time.Hour)

	tok, err := auth.GenerateToken(42, "partner@example.com", auth.RoleAffiliate)
	require.NoError(t, err)

	claims, err := auth.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "partner@example.com", claims.Email)
	assert.Equal(t, auth.RoleAffiliate, claims.Role)
}
