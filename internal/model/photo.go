package model

import "time"

// Photo is an uploaded asset attached to a mission. A mission holds at
// most one photo per photo type; re-uploading the same type replaces
// the existing record.
type Photo struct {
	ID           int64     `json:"id"`
	MissionID    int64     `json:"mission_id"`
	PhotoType    string    `json:"photo_type"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name,omitempty"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `json:"mime_type"`
	URL          string    `json:"url"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	DeviceInfo   string    `json:"device_info,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// PhotoSummary is the trimmed photo shape embedded in the aggregated
// mission view.
type PhotoSummary struct {
	ID         int64     `json:"id"`
	PhotoType  string    `json:"photo_type"`
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// AllowedPhotoMIME lists the accepted upload MIME types.
var AllowedPhotoMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}
