package api

import (
	"database/sql"
	"net/http"
)

// HealthHandler reports whether the durable store is reachable.
type HealthHandler struct {
	DB *sql.DB
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		jsonError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	jsonData(w, http.StatusOK, map[string]string{"status": "ok"})
}
