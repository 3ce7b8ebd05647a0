package store

import (
	"context"
	"database/sql"

	"github.com/fleetassist/missions/internal/model"
)

// MissionView is the aggregated read view for a single mission: the
// mission fields, the inspection fields (zero values when no
// inspection has been submitted), and its photos ordered by upload
// time.
type MissionView struct {
	model.Mission
	Checklist      map[string]any       `json:"checklist"`
	KeyCount       int                  `json:"key_count"`
	OptionalPhotos int                  `json:"optional_photos"`
	Photos         []model.PhotoSummary `json:"photos"`
}

// AggregateMission builds the composite view for a mission. The join
// is all-or-nothing: if any sub-fetch fails, the whole aggregation
// fails and no partial result is returned. A mission without photos
// yields an empty slice, never null.
func AggregateMission(ctx context.Context, db *sql.DB, m *model.Mission) (*MissionView, error) {
	insp, err := GetInspection(ctx, db, m.ID)
	if err != nil {
		return nil, err
	}

	photos, err := ListPhotoSummaries(ctx, db, m.ID)
	if err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []model.PhotoSummary{}
	}

	view := &MissionView{
		Mission:   *m,
		Checklist: map[string]any{},
		Photos:    photos,
	}
	if insp != nil {
		view.Checklist = insp.Checklist
		view.KeyCount = insp.KeyCount
		view.OptionalPhotos = insp.OptionalPhotos
	}
	return view, nil
}

// GetMissionView resolves a mission by code or numeric ID and returns
// its aggregated view, or (nil, nil) if no mission matches.
func GetMissionView(ctx context.Context, db *sql.DB, token string) (*MissionView, error) {
	m, err := GetMissionByCodeOrID(ctx, db, token)
	if err != nil || m == nil {
		return nil, err
	}
	return AggregateMission(ctx, db, m)
}
