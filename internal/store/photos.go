package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fleetassist/missions/internal/model"
)

// UpsertPhoto inserts a photo record or, when one already exists for
// the same (mission, photo type) pair, replaces its metadata in place.
// The upsert is a single atomic statement; there is never more than
// one row per pair. Returns (nil, nil) if the mission does not exist.
func UpsertPhoto(ctx context.Context, db *sql.DB, p *model.Photo) (*model.Photo, error) {
	exists, err := MissionExists(ctx, db, p.MissionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO photos (mission_id, photo_type, filename, original_name, size_bytes, mime_type, url, latitude, longitude, device_info)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (mission_id, photo_type) DO UPDATE SET
		     filename = excluded.filename,
		     original_name = excluded.original_name,
		     size_bytes = excluded.size_bytes,
		     mime_type = excluded.mime_type,
		     url = excluded.url,
		     latitude = excluded.latitude,
		     longitude = excluded.longitude,
		     device_info = excluded.device_info,
		     uploaded_at = CURRENT_TIMESTAMP`,
		p.MissionID, p.PhotoType, p.Filename, p.OriginalName, p.SizeBytes, p.MimeType, p.URL,
		p.Latitude, p.Longitude, p.DeviceInfo,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting photo: %w", err)
	}

	return GetPhoto(ctx, db, p.MissionID, p.PhotoType)
}

// GetPhoto returns the photo for a (mission, photo type) pair, or
// (nil, nil) if none exists.
func GetPhoto(ctx context.Context, db *sql.DB, missionID int64, photoType string) (*model.Photo, error) {
	p := &model.Photo{}
	var originalName, deviceInfo sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, mission_id, photo_type, filename, original_name, size_bytes, mime_type, url,
		        latitude, longitude, device_info, uploaded_at
		 FROM photos WHERE mission_id = ? AND photo_type = ?`,
		missionID, photoType,
	).Scan(&p.ID, &p.MissionID, &p.PhotoType, &p.Filename, &originalName, &p.SizeBytes, &p.MimeType, &p.URL,
		&p.Latitude, &p.Longitude, &deviceInfo, &p.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting photo: %w", err)
	}
	p.OriginalName = originalName.String
	p.DeviceInfo = deviceInfo.String
	return p, nil
}

// ListPhotoSummaries returns the photos attached to a mission, oldest
// upload first, in the trimmed shape used by the aggregated view.
func ListPhotoSummaries(ctx context.Context, db *sql.DB, missionID int64) ([]model.PhotoSummary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, photo_type, url, filename, uploaded_at
		 FROM photos WHERE mission_id = ? ORDER BY uploaded_at ASC, id ASC`,
		missionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	defer rows.Close()

	var photos []model.PhotoSummary
	for rows.Next() {
		var p model.PhotoSummary
		if err := rows.Scan(&p.ID, &p.PhotoType, &p.URL, &p.Filename, &p.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
