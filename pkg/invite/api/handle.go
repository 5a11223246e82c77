package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tendant/simple-invite/pkg/identity"
	"github.com/tendant/simple-invite/pkg/invite"
	"github.com/tendant/simple-invite/pkg/role"
)

// Handle serves the invite endpoints.
type Handle struct {
	inviteService *invite.InviteService
	catalog       *role.CatalogService
}

// NewHandle creates a new invite handler
func NewHandle(inviteService *invite.InviteService, catalog *role.CatalogService) *Handle {
	return &Handle{
		inviteService: inviteService,
		catalog:       catalog,
	}
}

// RegisterRoutes mounts the invite routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/invite/roles", h.ListRoles)
	r.Post("/invite", h.SendInvites)
}

// ListRoles handles GET /invite/roles. Only roles an administrator enabled in
// the settings appear; an unconfigured system reports an empty list.
func (h *Handle) ListRoles(w http.ResponseWriter, r *http.Request) {
	invitable, err := h.catalog.ListInvitableRoles(r.Context())
	if err != nil {
		slog.Error("Failed listing invitable roles", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to list roles."})
		return
	}

	roles := make([]InvitableRoleResponse, 0, len(invitable))
	for id, ir := range invitable {
		roles = append(roles, InvitableRoleResponse{
			ID:          id,
			Label:       ir.Label,
			Default:     ir.Default,
			Description: ir.Description,
		})
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })

	render.Status(r, http.StatusOK)
	render.JSON(w, r, roles)
}

// SendInvites handles POST /invite
func (h *Handle) SendInvites(w http.ResponseWriter, r *http.Request) {
	inviterEmail, err := getInviterEmailFromContext(r)
	if err != nil {
		slog.Error("Failed to get inviter email from context", "error", err)
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "Unauthorized."})
		return
	}

	var req SendInvitesRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body."})
		return
	}

	result, err := h.inviteService.SendInvites(r.Context(), invite.InviteBatch{
		Handles:       identity.SplitHandles(req.Handles),
		RoleIDs:       req.RoleIDs,
		CustomMessage: req.CustomMessage,
		InviterEmail:  inviterEmail,
	})
	if err != nil {
		var invalidErr *invite.InvalidHandlesError
		switch {
		case errors.As(err, &invalidErr):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{
				Error:          "One or more handles are not valid.",
				Field:          "handles",
				InvalidHandles: invalidErr.Handles,
			})
		case errors.Is(err, invite.ErrNoHandles):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "At least one handle is required.", Field: "handles"})
		case errors.Is(err, invite.ErrNoRolesSelected):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "At least one role must be selected.", Field: "role_ids"})
		case errors.Is(err, role.ErrRoleNotFound):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "One or more selected roles do not exist.", Field: "role_ids"})
		default:
			slog.Error("Failed processing invite batch", "err", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "An error occurred while sending invitations."})
		}
		return
	}

	resp := SendInvitesResponse{
		Sent:   make([]DeliveryReport, 0, len(result.Sent)),
		Failed: make([]DeliveryReport, 0, len(result.Failed)),
	}
	for _, d := range result.Sent {
		resp.Sent = append(resp.Sent, DeliveryReport{Handle: d.Handle, Email: d.Email})
	}
	for _, d := range result.Failed {
		report := DeliveryReport{Handle: d.Handle, Email: d.Email}
		if d.Err != nil {
			report.Error = d.Err.Error()
		}
		resp.Failed = append(resp.Failed, report)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// getInviterEmailFromContext extracts the inviter's email from the JWT token
// in the request context
func getInviterEmailFromContext(r *http.Request) (string, error) {
	token, ok := r.Context().Value("jwt").(*jwt.Token)
	if !ok || token == nil {
		return "", errors.New("no JWT token found in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid JWT claims")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("email not found in JWT claims")
	}
	return email, nil
}
