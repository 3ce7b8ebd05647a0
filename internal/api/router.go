package api

import (
	"database/sql"
	"net/http"

	"github.com/fleetassist/missions/internal/storage"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, blobs storage.Storage) http.Handler {
	mux := http.NewServeMux()

	missions := &MissionsHandler{DB: db}
	inspections := &InspectionsHandler{DB: db}
	photos := &PhotosHandler{DB: db, Storage: blobs}
	stats := &StatsHandler{DB: db}
	health := &HealthHandler{DB: db}

	mux.HandleFunc("GET /api/health", health.Check)

	// Missions. Literal segments (search, export, stats) take priority
	// over the {token} pattern.
	mux.HandleFunc("POST /api/missions", missions.Create)
	mux.HandleFunc("GET /api/missions", missions.List)
	mux.HandleFunc("GET /api/missions/search", stats.Search)
	mux.HandleFunc("GET /api/missions/export", stats.Export)
	mux.HandleFunc("GET /api/missions/stats", stats.Basic)
	mux.HandleFunc("GET /api/missions/stats/advanced", stats.Advanced)
	mux.HandleFunc("GET /api/missions/{token}", missions.Get)
	mux.HandleFunc("PUT /api/missions/{id}/status", missions.SetStatus)
	mux.HandleFunc("PUT /api/missions/{id}/observations", missions.UpdateObservations)
	mux.HandleFunc("PUT /api/missions/{id}/signature", missions.SetSignature)

	// Inspection and photos.
	mux.HandleFunc("POST /api/missions/{id}/inspection", inspections.Submit)
	mux.HandleFunc("POST /api/missions/{id}/photos", photos.Upload)

	return mux
}
