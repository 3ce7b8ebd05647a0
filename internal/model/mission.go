package model

import "time"

// Mission represents one vehicle-transport job tracked from intake to
// completion.
type Mission struct {
	ID          int64  `json:"id"`
	MissionCode string `json:"mission_code"`
	MissionType string `json:"mission_type"`
	Status      string `json:"status"`

	VehicleBrand      string `json:"vehicle_brand"`
	VehicleModel      string `json:"vehicle_model"`
	VehicleYear       int    `json:"vehicle_year,omitempty"`
	VehiclePlate      string `json:"vehicle_plate,omitempty"`
	VehicleVIN        string `json:"vehicle_vin,omitempty"`
	VehicleMileage    int    `json:"vehicle_mileage,omitempty"`
	FuelLevel         string `json:"fuel_level,omitempty"`
	InteriorCondition string `json:"interior_condition,omitempty"`
	ExteriorCondition string `json:"exterior_condition,omitempty"`

	PickupLocation   string `json:"pickup_location"`
	DeliveryLocation string `json:"delivery_location"`
	PickupDate       string `json:"pickup_date,omitempty"`
	DeliveryDate     string `json:"delivery_date,omitempty"`
	Urgency          string `json:"urgency,omitempty"`

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone,omitempty"`
	ProviderName  string `json:"provider_name,omitempty"`
	ProviderEmail string `json:"provider_email,omitempty"`
	ProviderPhone string `json:"provider_phone,omitempty"`

	Observations       string     `json:"observations,omitempty"`
	InternalNotes      string     `json:"internal_notes,omitempty"`
	ClientSignature    string     `json:"client_signature,omitempty"`
	SignatureTimestamp *time.Time `json:"signature_timestamp,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Mission statuses. Any recognized status may follow any other; there
// is deliberately no transition-adjacency check.
const (
	StatusPending     = "pending"
	StatusAssigned    = "assigned"
	StatusInProgress  = "in_progress"
	StatusPhotosTaken = "photos_taken"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
)

// Statuses lists all recognized mission statuses.
var Statuses = []string{
	StatusPending,
	StatusAssigned,
	StatusInProgress,
	StatusPhotosTaken,
	StatusCompleted,
	StatusCancelled,
}

// ValidStatus reports whether s is a recognized mission status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultMissionType is assigned when a mission is created without an
// explicit type.
const DefaultMissionType = "inspection"
