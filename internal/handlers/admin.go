package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fittrack/internal/middleware"
	"fittrack/internal/services"
)

type AdminHandler struct {
	admin  *services.AdminService
	logger *zap.Logger
}

func NewAdminHandler(admin *services.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// Overview returns site-wide counters to superusers.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	out, err := h.admin.Overview(r.Context(), middleware.CurrentUser(r.Context()))
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}
