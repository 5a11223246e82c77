package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/tendant/simple-invite/pkg/role"
	"github.com/tendant/simple-invite/pkg/settings"
)

// Handle serves the invite settings endpoints.
type Handle struct {
	settingsService *settings.SettingsService
	catalog         *role.CatalogService
}

// NewHandle creates a new settings handler
func NewHandle(settingsService *settings.SettingsService, catalog *role.CatalogService) *Handle {
	return &Handle{
		settingsService: settingsService,
		catalog:         catalog,
	}
}

// RegisterRoutes mounts the settings routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)
}

// GetSettings handles GET /settings. The response carries both the stored
// configuration and the system's full role list so the form can offer roles
// that are not yet enabled.
func (h *Handle) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		slog.Error("Failed loading settings", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to load settings."})
		return
	}

	allRoles, err := h.catalog.ListAllRoles(r.Context())
	if err != nil {
		slog.Error("Failed listing roles", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to list roles."})
		return
	}

	var resp GetSettingsResponse
	if err := copier.Copy(&resp.Settings, &cfg); err != nil {
		slog.Error("Failed mapping settings", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to load settings."})
		return
	}
	if resp.Settings.Roles == nil {
		resp.Settings.Roles = make(map[string]RoleConfigDTO)
	}
	if err := copier.Copy(&resp.AvailableRoles, &allRoles); err != nil {
		slog.Error("Failed mapping roles", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to list roles."})
		return
	}
	if resp.AvailableRoles == nil {
		resp.AvailableRoles = []RoleOption{}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// UpdateSettings handles PUT /settings
func (h *Handle) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsDTO
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body."})
		return
	}

	var cfg settings.Settings
	if err := copier.Copy(&cfg, &req); err != nil {
		slog.Error("Failed mapping settings request", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to save settings."})
		return
	}
	if cfg.Roles == nil {
		cfg.Roles = make(map[string]settings.RoleConfig)
	}

	if err := h.settingsService.UpdateSettings(r.Context(), cfg); err != nil {
		var validationErr *settings.ValidationError
		if errors.As(err, &validationErr) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: validationErr.Message, Field: validationErr.Field})
			return
		}
		slog.Error("Failed saving settings", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to save settings."})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, req)
}
