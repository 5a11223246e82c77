package tos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-invite/pkg/account"
)

func setupHandler(t *testing.T, capabilities SchemaCapabilities) (*chi.Mux, uuid.UUID) {
	t.Helper()

	repo := account.NewInMemoryAccountRepository()
	created, err := repo.Create(context.Background(), account.CreateAccountParams{
		Handle:  "jdoe",
		Email:   "jdoe@colorado.edu",
		Enabled: true,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandle(NewTosService(repo, capabilities)).RegisterRoutes(r)
	return r, created.ID
}

func acceptRequest(userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/tos/accept", nil)
	token := &jwt.Token{Claims: jwt.MapClaims{"user_id": userID.String()}}
	return req.WithContext(context.WithValue(req.Context(), "jwt", token))
}

func TestAcceptEndpoint(t *testing.T) {
	router, userID := setupHandler(t, DefaultSchemaCapabilities())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, acceptRequest(userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AcceptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Terms of Service accepted successfully.", resp.Message)
}

func TestAcceptEndpointUnknownUser(t *testing.T) {
	router, _ := setupHandler(t, DefaultSchemaCapabilities())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, acceptRequest(uuid.New()))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp AcceptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "User not found.", resp.Message)
}

func TestAcceptEndpointFieldUnavailable(t *testing.T) {
	router, userID := setupHandler(t, SchemaCapabilities{AcceptanceField: false})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, acceptRequest(userID))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp AcceptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "TOS acceptance field not found.", resp.Message)
}

func TestAcceptEndpointMissingToken(t *testing.T) {
	router, _ := setupHandler(t, DefaultSchemaCapabilities())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tos/accept", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
