package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fleetassist/missions/internal/model"
)

// SubmitInspection creates or fully replaces the inspection for a
// mission. Every field is overwritten on resubmission; there is no
// partial merge. The parent mission's observations and client
// signature are overwritten in the same transaction so the two stay in
// sync. Returns (nil, nil) if the mission does not exist.
func SubmitInspection(ctx context.Context, db *sql.DB, missionID int64, insp *model.Inspection) (*model.Inspection, error) {
	checklist, err := json.Marshal(insp.Checklist)
	if err != nil {
		return nil, fmt.Errorf("encoding checklist: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM missions WHERE id = ?`, missionID).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking mission: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO inspections (mission_id, observations, signature, checklist, key_count, optional_photos)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (mission_id) DO UPDATE SET
		     observations = excluded.observations,
		     signature = excluded.signature,
		     checklist = excluded.checklist,
		     key_count = excluded.key_count,
		     optional_photos = excluded.optional_photos,
		     updated_at = CURRENT_TIMESTAMP`,
		missionID, insp.Observations, insp.Signature, string(checklist), insp.KeyCount, insp.OptionalPhotos,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting inspection: %w", err)
	}

	// Keep the parent mission's observation and signature fields in
	// sync with the inspection payload.
	if insp.Signature != "" {
		_, err = tx.ExecContext(ctx,
			`UPDATE missions SET observations = ?, client_signature = ?,
			     signature_timestamp = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			insp.Observations, insp.Signature, missionID,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE missions SET observations = ?, client_signature = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			insp.Observations, insp.Signature, missionID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("syncing mission from inspection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing inspection: %w", err)
	}

	return GetInspection(ctx, db, missionID)
}

// GetInspection returns the inspection for a mission, or (nil, nil) if
// none has been submitted.
func GetInspection(ctx context.Context, db *sql.DB, missionID int64) (*model.Inspection, error) {
	insp := &model.Inspection{}
	var observations, signature, checklist sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT mission_id, observations, signature, checklist, key_count, optional_photos, created_at, updated_at
		 FROM inspections WHERE mission_id = ?`, missionID,
	).Scan(&insp.MissionID, &observations, &signature, &checklist,
		&insp.KeyCount, &insp.OptionalPhotos, &insp.CreatedAt, &insp.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting inspection: %w", err)
	}

	insp.Observations = observations.String
	insp.Signature = signature.String
	insp.Checklist = map[string]any{}
	if checklist.String != "" {
		if err := json.Unmarshal([]byte(checklist.String), &insp.Checklist); err != nil {
			return nil, fmt.Errorf("decoding checklist: %w", err)
		}
	}
	return insp, nil
}
