package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: index photos by mission for the aggregated read view.
	`CREATE INDEX IF NOT EXISTS idx_photos_mission ON photos(mission_id)`,
	// Migration 2: index vehicle brand/model for search and top-vehicle stats.
	`CREATE INDEX IF NOT EXISTS idx_missions_vehicle ON missions(vehicle_brand, vehicle_model)`,
}

// Migrate ensures the schema exists and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
