package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/fleetassist/missions/internal/model"
	"github.com/fleetassist/missions/internal/store"
)

// StatsHandler handles read-only reporting and search endpoints.
type StatsHandler struct {
	DB *sql.DB
}

// Basic handles GET /api/missions/stats. When the store is unreachable
// it degrades to all-zero counts instead of failing; /api/health
// carries the corresponding health signal.
func (h *StatsHandler) Basic(w http.ResponseWriter, r *http.Request) {
	counts, err := store.GetStatusCounts(r.Context(), h.DB)
	if err != nil {
		slog.Error("basic stats degraded to zeroes", "error", err)
		counts = store.StatusCounts{}
	}
	jsonData(w, http.StatusOK, counts)
}

// Advanced handles GET /api/missions/stats/advanced. Unlike the basic
// endpoint, the composite fails if any sub-query fails.
func (h *StatsHandler) Advanced(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetAdvancedStats(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	jsonData(w, http.StatusOK, stats)
}

// searchFilters extracts the search filters from query parameters.
func searchFilters(r *http.Request) store.SearchFilters {
	q := r.URL.Query()
	return store.SearchFilters{
		Query:    q.Get("q"),
		Status:   q.Get("status"),
		Brand:    q.Get("vehicle_brand"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
	}
}

// Search handles GET /api/missions/search.
func (h *StatsHandler) Search(w http.ResponseWriter, r *http.Request) {
	missions, err := store.SearchMissions(r.Context(), h.DB, searchFilters(r))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to search missions")
		return
	}
	if missions == nil {
		missions = []model.Mission{}
	}
	jsonData(w, http.StatusOK, missions)
}
