package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/fleetassist/missions/internal/model"
	"github.com/fleetassist/missions/internal/store"
)

// InspectionsHandler handles the inspection submission endpoint.
type InspectionsHandler struct {
	DB *sql.DB
}

type submitInspectionRequest struct {
	Observations   string         `json:"observations"`
	Signature      string         `json:"signature"`
	Checklist      map[string]any `json:"checklist"`
	KeyCount       int            `json:"key_count"`
	OptionalPhotos int            `json:"optional_photos"`
}

// Submit handles POST /api/missions/{id}/inspection. The inspection is
// an upsert: resubmitting replaces every field.
func (h *InspectionsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid mission id")
		return
	}

	var req submitInspectionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.KeyCount < 0 {
		jsonError(w, http.StatusBadRequest, "key_count must not be negative")
		return
	}
	if req.Checklist == nil {
		req.Checklist = map[string]any{}
	}

	insp, err := store.SubmitInspection(r.Context(), h.DB, id, &model.Inspection{
		Observations:   req.Observations,
		Signature:      req.Signature,
		Checklist:      req.Checklist,
		KeyCount:       req.KeyCount,
		OptionalPhotos: req.OptionalPhotos,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save inspection")
		return
	}
	if insp == nil {
		jsonError(w, http.StatusNotFound, "mission not found")
		return
	}
	jsonData(w, http.StatusOK, insp)
}
