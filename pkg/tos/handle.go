package tos

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tendant/simple-invite/pkg/account"
)

// AcceptResponse is the JSON body returned by the acceptance endpoint.
type AcceptResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handle serves the TOS acceptance endpoint.
type Handle struct {
	service *TosService
}

// NewHandle creates a new TOS handler
func NewHandle(service *TosService) *Handle {
	return &Handle{service: service}
}

// RegisterRoutes mounts the TOS routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/tos/accept", h.Accept)
}

// Accept handles POST /tos/accept
func (h *Handle) Accept(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserIDFromContext(r)
	if err != nil {
		slog.Error("Failed to get user ID from context", "error", err)
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, AcceptResponse{Success: false, Message: "Unauthorized."})
		return
	}

	err = h.service.AcceptTos(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, AcceptResponse{Success: false, Message: "User not found."})
		case errors.Is(err, ErrTosFieldUnavailable):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, AcceptResponse{Success: false, Message: "TOS acceptance field not found."})
		default:
			slog.Error("Failed to record tos acceptance", "error", err, "userId", userID)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, AcceptResponse{Success: false, Message: "An error occurred while accepting the Terms of Service."})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, AcceptResponse{Success: true, Message: "Terms of Service accepted successfully."})
}

// getUserIDFromContext extracts the user ID from the JWT token in the request context
func getUserIDFromContext(r *http.Request) (uuid.UUID, error) {
	token, ok := r.Context().Value("jwt").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, errors.New("no JWT token found in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid JWT claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok || userIDStr == "" {
		return uuid.Nil, errors.New("user_id not found in JWT claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid user_id in JWT claims")
	}

	return userID, nil
}
