package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protected(t *testing.T) (http.Handler, *bool) {
	reached := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		token, ok := r.Context().Value("jwt").(*jwt.Token)
		require.True(t, ok)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "inviter@colorado.edu", claims["email"])
		w.WriteHeader(http.StatusOK)
	})
	return Verifier(NewJwtService(testSecret))(handler), &reached
}

func TestVerifierBearerToken(t *testing.T) {
	handler, reached := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{"email": "inviter@colorado.edu"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestVerifierCookieToken(t *testing.T) {
	handler, reached := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookieName, Value: signedToken(t, jwt.MapClaims{"email": "inviter@colorado.edu"})})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestVerifierRejectsMissingToken(t *testing.T) {
	handler, reached := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestVerifierRejectsBadSignature(t *testing.T) {
	handler, reached := protected(t)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "inviter@colorado.edu"})
	signed, err := other.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}
