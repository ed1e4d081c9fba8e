package handler

import (
	"net/http"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/service"
)

// SettingsHandler serves firm settings to the site and the admin dashboard.
type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Public handles GET /api/settings. Notification settings are not exposed.
func (h *SettingsHandler) Public(w http.ResponseWriter, r *http.Request) {
	s, err := h.settingsService.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "settings_failed")
		return
	}
	writeJSON(w, http.StatusOK, s.Public())
}

// AdminGet handles GET /api/admin/settings.
func (h *SettingsHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.settingsService.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "settings_failed")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update handles PUT /api/admin/settings. The body is the full settings object.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s model.Settings
	if !decodeJSON(w, r, &s) {
		return
	}
	if err := h.settingsService.Update(r.Context(), &s); err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, &s)
}
