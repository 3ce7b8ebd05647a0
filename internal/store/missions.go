package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/fleetassist/missions/internal/model"
)

// missionColumns is the canonical column list for scanMission.
const missionColumns = `id, mission_code, mission_type, status,
	vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, vehicle_vin, vehicle_mileage,
	fuel_level, interior_condition, exterior_condition,
	pickup_location, delivery_location, pickup_date, delivery_date, urgency,
	client_name, client_email, client_phone, provider_name, provider_email, provider_phone,
	observations, internal_notes, client_signature, signature_timestamp,
	started_at, completed_at, created_at, updated_at`

// createMissionAttempts bounds the code-conflict retry loop in
// CreateMission.
const createMissionAttempts = 3

type rowScanner interface {
	Scan(dest ...any) error
}

// scanMission scans one row selected with missionColumns.
func scanMission(row rowScanner) (*model.Mission, error) {
	m := &model.Mission{}
	var (
		year, mileage sql.NullInt64

		plate, vin, fuel, interior, exterior      sql.NullString
		pickupDate, deliveryDate, urgency         sql.NullString
		clientPhone, provName, provEmail, provTel sql.NullString
		observations, internalNotes, signature    sql.NullString
	)
	err := row.Scan(
		&m.ID, &m.MissionCode, &m.MissionType, &m.Status,
		&m.VehicleBrand, &m.VehicleModel, &year, &plate, &vin, &mileage,
		&fuel, &interior, &exterior,
		&m.PickupLocation, &m.DeliveryLocation, &pickupDate, &deliveryDate, &urgency,
		&m.ClientName, &m.ClientEmail, &clientPhone, &provName, &provEmail, &provTel,
		&observations, &internalNotes, &signature, &m.SignatureTimestamp,
		&m.StartedAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.VehicleYear = int(year.Int64)
	m.VehicleMileage = int(mileage.Int64)
	m.VehiclePlate = plate.String
	m.VehicleVIN = vin.String
	m.FuelLevel = fuel.String
	m.InteriorCondition = interior.String
	m.ExteriorCondition = exterior.String
	m.PickupDate = pickupDate.String
	m.DeliveryDate = deliveryDate.String
	m.Urgency = urgency.String
	m.ClientPhone = clientPhone.String
	m.ProviderName = provName.String
	m.ProviderEmail = provEmail.String
	m.ProviderPhone = provTel.String
	m.Observations = observations.String
	m.InternalNotes = internalNotes.String
	m.ClientSignature = signature.String
	return m, nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		serr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// CreateMission allocates a mission code and inserts a new mission with
// status "pending". A uniqueness conflict on the generated code is
// treated as retryable and triggers a fresh generation.
func CreateMission(ctx context.Context, db *sql.DB, m *model.Mission) (*model.Mission, error) {
	if m.MissionType == "" {
		m.MissionType = model.DefaultMissionType
	}

	var lastErr error
	for attempt := 0; attempt < createMissionAttempts; attempt++ {
		code := GenerateMissionCode(ctx, db, time.Now())
		result, err := db.ExecContext(ctx,
			`INSERT INTO missions (
				mission_code, mission_type,
				vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, vehicle_vin, vehicle_mileage,
				fuel_level, interior_condition, exterior_condition,
				pickup_location, delivery_location, pickup_date, delivery_date, urgency,
				client_name, client_email, client_phone, provider_name, provider_email, provider_phone,
				internal_notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			code, m.MissionType,
			m.VehicleBrand, m.VehicleModel, m.VehicleYear, m.VehiclePlate, m.VehicleVIN, m.VehicleMileage,
			m.FuelLevel, m.InteriorCondition, m.ExteriorCondition,
			m.PickupLocation, m.DeliveryLocation, m.PickupDate, m.DeliveryDate, m.Urgency,
			m.ClientName, m.ClientEmail, m.ClientPhone, m.ProviderName, m.ProviderEmail, m.ProviderPhone,
			m.InternalNotes,
		)
		if err != nil {
			if isUniqueViolation(err) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("creating mission: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("getting mission id: %w", err)
		}
		return GetMission(ctx, db, id)
	}
	return nil, fmt.Errorf("creating mission: mission code conflicts exhausted retries: %w", lastErr)
}

// GetMission returns a mission by ID, or (nil, nil) if none exists.
func GetMission(ctx context.Context, db *sql.DB, id int64) (*model.Mission, error) {
	m, err := scanMission(db.QueryRowContext(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting mission: %w", err)
	}
	return m, nil
}

// GetMissionByCodeOrID looks a mission up by exact mission code, or by
// numeric ID when the token parses as an integer. Returns (nil, nil)
// if no row matches.
func GetMissionByCodeOrID(ctx context.Context, db *sql.DB, token string) (*model.Mission, error) {
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		id = -1
	}

	m, err := scanMission(db.QueryRowContext(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE mission_code = ? OR id = ?`,
		token, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting mission by code or id: %w", err)
	}
	return m, nil
}

// ListMissions returns all missions, newest first. Unpaginated by
// design; acceptable at the scale this system targets.
func ListMissions(ctx context.Context, db *sql.DB) ([]model.Mission, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+missionColumns+` FROM missions ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing missions: %w", err)
	}
	defer rows.Close()

	var missions []model.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mission: %w", err)
		}
		missions = append(missions, *m)
	}
	return missions, rows.Err()
}

// SetStatus overwrites a mission's status. Any recognized status may
// follow any other; there is no adjacency check. Moving to in_progress
// stamps started_at, moving to completed stamps completed_at, and
// neither timestamp is ever cleared by a later transition. Returns
// (nil, nil) if the mission does not exist; the caller validates the
// status before calling.
func SetStatus(ctx context.Context, db *sql.DB, id int64, status string) (*model.Mission, error) {
	var query string
	switch status {
	case model.StatusInProgress:
		query = `UPDATE missions SET status = ?, started_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	case model.StatusCompleted:
		query = `UPDATE missions SET status = ?, completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	default:
		query = `UPDATE missions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	}

	result, err := db.ExecContext(ctx, query, status, id)
	if err != nil {
		return nil, fmt.Errorf("setting mission status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking status update: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return GetMission(ctx, db, id)
}

// UpdateObservations overwrites a mission's observations. Returns
// (nil, nil) if the mission does not exist.
func UpdateObservations(ctx context.Context, db *sql.DB, id int64, text string) (*model.Mission, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE missions SET observations = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		text, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating observations: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking observations update: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return GetMission(ctx, db, id)
}

// SetSignature stores the client signature and stamps
// signature_timestamp. Returns (nil, nil) if the mission does not
// exist.
func SetSignature(ctx context.Context, db *sql.DB, id int64, signature string) (*model.Mission, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE missions SET client_signature = ?, signature_timestamp = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		signature, id,
	)
	if err != nil {
		return nil, fmt.Errorf("setting signature: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking signature update: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return GetMission(ctx, db, id)
}

// MissionExists reports whether a mission with the given ID exists.
func MissionExists(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM missions WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking mission existence: %w", err)
	}
	return true, nil
}
