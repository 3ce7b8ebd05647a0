package model

import "time"

// Inspection is the checklist/signature/observations record attached to
// a mission. At most one exists per mission; submitting again fully
// replaces every field.
type Inspection struct {
	MissionID      int64          `json:"mission_id"`
	Observations   string         `json:"observations,omitempty"`
	Signature      string         `json:"signature,omitempty"`
	Checklist      map[string]any `json:"checklist"`
	KeyCount       int            `json:"key_count"`
	OptionalPhotos int            `json:"optional_photos"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
