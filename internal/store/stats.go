package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fleetassist/missions/internal/model"
)

// searchLimit caps the number of rows any search can return.
const searchLimit = 100

// StatusCounts holds the number of missions per status.
type StatusCounts struct {
	Pending     int `json:"pending"`
	Assigned    int `json:"assigned"`
	InProgress  int `json:"in_progress"`
	PhotosTaken int `json:"photos_taken"`
	Completed   int `json:"completed"`
	Cancelled   int `json:"cancelled"`
	Total       int `json:"total"`
}

// MonthlyCount is the number of missions created in one calendar month.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// VehicleCount is the number of missions for one brand/model pair.
type VehicleCount struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Count int    `json:"count"`
}

// AdvancedStats is the composite reporting payload.
type AdvancedStats struct {
	Basic              StatusCounts   `json:"basic"`
	Monthly            []MonthlyCount `json:"monthly"`
	TopVehicles        []VehicleCount `json:"top_vehicles"`
	AvgProcessingHours float64        `json:"avg_processing_hours"`
}

// GetStatusCounts returns the mission count per status. Statuses with
// no missions report zero.
func GetStatusCounts(ctx context.Context, db *sql.DB) (StatusCounts, error) {
	var counts StatusCounts

	rows, err := db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM missions GROUP BY status`,
	)
	if err != nil {
		return counts, fmt.Errorf("counting missions by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return counts, fmt.Errorf("scanning status count: %w", err)
		}
		switch status {
		case model.StatusPending:
			counts.Pending = n
		case model.StatusAssigned:
			counts.Assigned = n
		case model.StatusInProgress:
			counts.InProgress = n
		case model.StatusPhotosTaken:
			counts.PhotosTaken = n
		case model.StatusCompleted:
			counts.Completed = n
		case model.StatusCancelled:
			counts.Cancelled = n
		}
		counts.Total += n
	}
	return counts, rows.Err()
}

// GetMonthlyCounts returns mission creation counts over a rolling
// twelve-month window including the current month. Months with no
// missions are omitted.
func GetMonthlyCounts(ctx context.Context, db *sql.DB) ([]MonthlyCount, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', created_at) AS month, COUNT(*)
		 FROM missions
		 WHERE created_at >= datetime('now', '-11 months', 'start of month')
		 GROUP BY month ORDER BY month`,
	)
	if err != nil {
		return nil, fmt.Errorf("counting missions by month: %w", err)
	}
	defer rows.Close()

	monthly := []MonthlyCount{}
	for rows.Next() {
		var mc MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("scanning monthly count: %w", err)
		}
		monthly = append(monthly, mc)
	}
	return monthly, rows.Err()
}

// GetTopVehicles returns the ten most frequent vehicle brand/model
// pairs, by mission count descending.
func GetTopVehicles(ctx context.Context, db *sql.DB) ([]VehicleCount, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT vehicle_brand, vehicle_model, COUNT(*) AS n
		 FROM missions
		 GROUP BY vehicle_brand, vehicle_model
		 ORDER BY n DESC, vehicle_brand, vehicle_model
		 LIMIT 10`,
	)
	if err != nil {
		return nil, fmt.Errorf("counting missions by vehicle: %w", err)
	}
	defer rows.Close()

	vehicles := []VehicleCount{}
	for rows.Next() {
		var vc VehicleCount
		if err := rows.Scan(&vc.Brand, &vc.Model, &vc.Count); err != nil {
			return nil, fmt.Errorf("scanning vehicle count: %w", err)
		}
		vehicles = append(vehicles, vc)
	}
	return vehicles, rows.Err()
}

// GetAvgProcessingHours returns the average hours between creation and
// completion over completed missions, or 0 when none are completed.
func GetAvgProcessingHours(ctx context.Context, db *sql.DB) (float64, error) {
	var hours float64
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG((julianday(completed_at) - julianday(created_at)) * 24), 0)
		 FROM missions WHERE completed_at IS NOT NULL`,
	).Scan(&hours)
	if err != nil {
		return 0, fmt.Errorf("averaging processing hours: %w", err)
	}
	return hours, nil
}

// GetAdvancedStats composes the four independent aggregate queries.
// The composite fails if any sub-query fails.
func GetAdvancedStats(ctx context.Context, db *sql.DB) (*AdvancedStats, error) {
	basic, err := GetStatusCounts(ctx, db)
	if err != nil {
		return nil, err
	}
	monthly, err := GetMonthlyCounts(ctx, db)
	if err != nil {
		return nil, err
	}
	vehicles, err := GetTopVehicles(ctx, db)
	if err != nil {
		return nil, err
	}
	hours, err := GetAvgProcessingHours(ctx, db)
	if err != nil {
		return nil, err
	}

	return &AdvancedStats{
		Basic:              basic,
		Monthly:            monthly,
		TopVehicles:        vehicles,
		AvgProcessingHours: hours,
	}, nil
}

// SearchFilters are the optional, conjunctive mission search filters.
// DateFrom/DateTo are inclusive YYYY-MM-DD bounds on the creation date.
type SearchFilters struct {
	Query    string
	Status   string
	Brand    string
	DateFrom string
	DateTo   string
}

// SearchMissions returns missions matching all supplied filters,
// newest first, capped at 100 rows. With no filters it returns the 100
// most recent missions. Text matches are case-insensitive substring
// matches.
func SearchMissions(ctx context.Context, db *sql.DB, f SearchFilters) ([]model.Mission, error) {
	var conds []string
	var args []any

	if f.Query != "" {
		like := "%" + f.Query + "%"
		conds = append(conds,
			`(mission_code LIKE ? OR client_name LIKE ? OR vehicle_brand LIKE ? OR vehicle_model LIKE ?)`)
		args = append(args, like, like, like, like)
	}
	if f.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, f.Status)
	}
	if f.Brand != "" {
		conds = append(conds, `vehicle_brand LIKE ?`)
		args = append(args, "%"+f.Brand+"%")
	}
	if f.DateFrom != "" {
		conds = append(conds, `date(created_at) >= date(?)`)
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		conds = append(conds, `date(created_at) <= date(?)`)
		args = append(args, f.DateTo)
	}

	query := `SELECT ` + missionColumns + ` FROM missions`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ` + fmt.Sprint(searchLimit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching missions: %w", err)
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
