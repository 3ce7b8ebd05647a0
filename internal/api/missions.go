package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/fleetassist/missions/internal/model"
	"github.com/fleetassist/missions/internal/store"
)

// MissionsHandler handles mission CRUD endpoints.
type MissionsHandler struct {
	DB *sql.DB
}

type createMissionRequest struct {
	MissionType string `json:"mission_type"`

	VehicleBrand      string `json:"vehicle_brand"`
	VehicleModel      string `json:"vehicle_model"`
	VehicleYear       int    `json:"vehicle_year"`
	VehiclePlate      string `json:"vehicle_plate"`
	VehicleVIN        string `json:"vehicle_vin"`
	VehicleMileage    int    `json:"vehicle_mileage"`
	FuelLevel         string `json:"fuel_level"`
	InteriorCondition string `json:"interior_condition"`
	ExteriorCondition string `json:"exterior_condition"`

	PickupLocation   string `json:"pickup_location"`
	DeliveryLocation string `json:"delivery_location"`
	PickupDate       string `json:"pickup_date"`
	DeliveryDate     string `json:"delivery_date"`
	Urgency          string `json:"urgency"`

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	ProviderName  string `json:"provider_name"`
	ProviderEmail string `json:"provider_email"`
	ProviderPhone string `json:"provider_phone"`

	InternalNotes string `json:"internal_notes"`
}

// Create handles POST /api/missions.
func (h *MissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMissionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.VehicleBrand == "":
		jsonError(w, http.StatusBadRequest, "vehicle_brand required")
		return
	case req.VehicleModel == "":
		jsonError(w, http.StatusBadRequest, "vehicle_model required")
		return
	case req.PickupLocation == "":
		jsonError(w, http.StatusBadRequest, "pickup_location required")
		return
	case req.DeliveryLocation == "":
		jsonError(w, http.StatusBadRequest, "delivery_location required")
		return
	case req.ClientName == "":
		jsonError(w, http.StatusBadRequest, "client_name required")
		return
	case req.ClientEmail == "":
		jsonError(w, http.StatusBadRequest, "client_email required")
		return
	}

	mission, err := store.CreateMission(r.Context(), h.DB, &model.Mission{
		MissionType:       req.MissionType,
		VehicleBrand:      req.VehicleBrand,
		VehicleModel:      req.VehicleModel,
		VehicleYear:       req.VehicleYear,
		VehiclePlate:      req.VehiclePlate,
		VehicleVIN:        req.VehicleVIN,
		VehicleMileage:    req.VehicleMileage,
		FuelLevel:         req.FuelLevel,
		InteriorCondition: req.InteriorCondition,
		ExteriorCondition: req.ExteriorCondition,
		PickupLocation:    req.PickupLocation,
		DeliveryLocation:  req.DeliveryLocation,
		PickupDate:        req.PickupDate,
		DeliveryDate:      req.DeliveryDate,
		Urgency:           req.Urgency,
		ClientName:        req.ClientName,
		ClientEmail:       req.ClientEmail,
		ClientPhone:       req.ClientPhone,
		ProviderName:      req.ProviderName,
		ProviderEmail:     req.ProviderEmail,
		ProviderPhone:     req.ProviderPhone,
		InternalNotes:     req.InternalNotes,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create mission")
		return
	}

	jsonData(w, http.StatusCreated, mission)
}

// List handles GET /api/missions.
func (h *MissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	missions, err := store.ListMissions(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list missions")
		return
	}
	if missions == nil {
		missions = []model.Mission{}
	}
	jsonData(w, http.StatusOK, missions)
}

// Get handles GET /api/missions/{token}, where token is a mission code
// or a numeric ID. Returns the aggregated read view.
func (h *MissionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := store.GetMissionView(r.Context(), h.DB, r.PathValue("token"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get mission")
		return
	}
	if view == nil {
		jsonError(w, http.StatusNotFound, "mission not found")
		return
	}
	jsonData(w, http.StatusOK, view)
}

// SetStatus handles PUT /api/missions/{id}/status.
func (h *MissionsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid mission id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.ValidStatus(req.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	mission, err := store.SetStatus(r.Context(), h.DB, id, req.Status)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	if mission == nil {
		jsonError(w, http.StatusNotFound, "mission not found")
		return
	}
	jsonData(w, http.StatusOK, mission)
}

// UpdateObservations handles PUT /api/missions/{id}/observations.
func (h *MissionsHandler) UpdateObservations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid mission id")
		return
	}

	var req struct {
		Observations string `json:"observations"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mission, err := store.UpdateObservations(r.Context(), h.DB, id, req.Observations)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update observations")
		return
	}
	if mission == nil {
		jsonError(w, http.StatusNotFound, "mission not found")
		return
	}
	jsonData(w, http.StatusOK, mission)
}

// SetSignature handles PUT /api/missions/{id}/signature.
func (h *MissionsHandler) SetSignature(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid mission id")
		return
	}

	var req struct {
		Signature string `json:"signature"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Signature == "" {
		jsonError(w, http.StatusBadRequest, "signature required")
		return
	}

	mission, err := store.SetSignature(r.Context(), h.DB, id, req.Signature)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to set signature")
		return
	}
	if mission == nil {
		jsonError(w, http.StatusNotFound, "mission not found")
		return
	}
	jsonData(w, http.StatusOK, mission)
}
