package api

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/fleetassist/missions/internal/model"
	"github.com/fleetassist/missions/internal/store"
)

var exportHeaders = []string{
	"Mission Code", "Status", "Type", "Vehicle Brand", "Vehicle Model", "Plate",
	"Client Name", "Client Email", "Pickup", "Delivery", "Created", "Completed",
}

// exportRow flattens one mission into export columns.
func exportRow(m model.Mission) []string {
	completed := ""
	if m.CompletedAt != nil {
		completed = m.CompletedAt.Format("2006-01-02 15:04")
	}
	return []string{
		m.MissionCode, m.Status, m.MissionType, m.VehicleBrand, m.VehicleModel, m.VehiclePlate,
		m.ClientName, m.ClientEmail, m.PickupLocation, m.DeliveryLocation,
		m.CreatedAt.Format("2006-01-02 15:04"), completed,
	}
}

// Export handles GET /api/missions/export. It runs the same filters as
// the search endpoint and streams the result as CSV (default) or XLSX
// (format=excel).
func (h *StatsHandler) Export(w http.ResponseWriter, r *http.Request) {
	missions, err := store.SearchMissions(r.Context(), h.DB, searchFilters(r))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to export missions")
		return
	}

	data := make([][]string, 0, len(missions))
	for _, m := range missions {
		data = append(data, exportRow(m))
	}

	switch r.URL.Query().Get("format") {
	case "excel":
		exportExcel(w, "Missions", exportHeaders, data)
	case "", "csv":
		exportCSV(w, "missions.csv", exportHeaders, data)
	default:
		jsonError(w, http.StatusBadRequest, "unsupported export format")
	}
}

// exportCSV writes rows to CSV format.
func exportCSV(w http.ResponseWriter, filename string, headers []string, data [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return
	}
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			return
		}
	}
}

// exportExcel writes rows to a single-sheet XLSX file.
func exportExcel(w http.ResponseWriter, sheetName string, headers []string, data [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.DeleteSheet("Sheet1")

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=missions.xlsx")

	if err := f.Write(w); err != nil {
		return
	}
}
