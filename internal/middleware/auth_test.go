package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/backend/internal/middleware"
)

var testSecret = []byte("test-secret")

// signToken builds an HS256 token with the given subject and expiry, signed
// with secret. Mirrors what the auth provider issues in production.
func signToken(t *testing.T, secret []byte, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

// echoUserHandler writes the user ID found in context, or 500 if absent.
var echoUserHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(userID.String()))
})

// TestAuth_ValidToken_SetsUserID verifies that a well-signed bearer token
// passes and that the subject claim lands in the request context.
func TestAuth_ValidToken_SetsUserID(t *testing.T) {
	userID := uuid.New()
	h := middleware.NewAuth(testSecret)(echoUserHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID.String(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

// TestAuth_MissingHeader_Returns401 verifies that a request without an
// Authorization header never reaches the next handler.
func TestAuth_MissingHeader_Returns401(t *testing.T) {
	h := middleware.NewAuth(testSecret)(echoUserHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestAuth_WrongSecret_Returns401 verifies that a token signed with a
// different key is rejected.
func TestAuth_WrongSecret_Returns401(t *testing.T) {
	h := middleware.NewAuth(testSecret)(echoUserHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other-secret"), uuid.NewString(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestAuth_ExpiredToken_Returns401 verifies expiry is enforced.
func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	h := middleware.NewAuth(testSecret)(echoUserHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, uuid.NewString(), time.Now().Add(-time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestAuth_NonUUIDSubject_Returns401 verifies that a token whose subject is
// not a UUID is rejected rather than passed through with a zero user ID.
func TestAuth_NonUUIDSubject_Returns401(t *testing.T) {
	h := middleware.NewAuth(testSecret)(echoUserHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "not-a-uuid", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
