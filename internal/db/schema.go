package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS missions (
    id                  INTEGER PRIMARY KEY,
    mission_code        TEXT NOT NULL,
    mission_type        TEXT NOT NULL DEFAULT 'inspection',
    status              TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'assigned', 'in_progress', 'photos_taken', 'completed', 'cancelled')),
    vehicle_brand       TEXT NOT NULL,
    vehicle_model       TEXT NOT NULL,
    vehicle_year        INTEGER,
    vehicle_plate       TEXT,
    vehicle_vin         TEXT,
    vehicle_mileage     INTEGER,
    fuel_level          TEXT,
    interior_condition  TEXT,
    exterior_condition  TEXT,
    pickup_location     TEXT NOT NULL,
    delivery_location   TEXT NOT NULL,
    pickup_date         TEXT,
    delivery_date       TEXT,
    urgency             TEXT,
    client_name         TEXT NOT NULL,
    client_email        TEXT NOT NULL,
    client_phone        TEXT,
    provider_name       TEXT,
    provider_email      TEXT,
    provider_phone      TEXT,
    observations        TEXT,
    internal_notes      TEXT,
    client_signature    TEXT,
    signature_timestamp DATETIME,
    started_at          DATETIME,
    completed_at        DATETIME,
    created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_missions_code ON missions(mission_code);
CREATE INDEX IF NOT EXISTS idx_missions_status ON missions(status);
CREATE INDEX IF NOT EXISTS idx_missions_created_at ON missions(created_at);

CREATE TABLE IF NOT EXISTS inspections (
    mission_id      INTEGER PRIMARY KEY REFERENCES missions(id) ON DELETE CASCADE,
    observations    TEXT,
    signature       TEXT,
    checklist       TEXT,
    key_count       INTEGER NOT NULL DEFAULT 0 CHECK (key_count >= 0),
    optional_photos INTEGER NOT NULL DEFAULT 0,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS photos (
    id            INTEGER PRIMARY KEY,
    mission_id    INTEGER NOT NULL REFERENCES missions(id) ON DELETE CASCADE,
    photo_type    TEXT NOT NULL,
    filename      TEXT NOT NULL,
    original_name TEXT,
    size_bytes    INTEGER NOT NULL DEFAULT 0,
    mime_type     TEXT NOT NULL,
    url           TEXT NOT NULL,
    latitude      REAL,
    longitude     REAL,
    device_info   TEXT,
    uploaded_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (mission_id, photo_type)
);

CREATE TABLE IF NOT EXISTS notifications (
    id         INTEGER PRIMARY KEY,
    mission_id INTEGER REFERENCES missions(id) ON DELETE CASCADE,
    type       TEXT NOT NULL,
    recipient  TEXT,
    payload    TEXT,
    sent_at    DATETIME,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
