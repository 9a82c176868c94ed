package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Resumo"
	maxSheetName  = 31
	allRecordsTag = "Todos os registros"
)

// MaintenanceWorkbook writes a summary sheet plus one sheet per vehicle
// with records. month is nil for the full history.
func MaintenanceWorkbook(w io.Writer, records []models.MaintenanceRecord, vehicles []models.Vehicle, month *models.YearMonth, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return err
	}

	period := allRecordsTag
	if month != nil {
		period = month.String()
	}
	summary := MaintenanceSummaryRows(report.MaintenanceSummary(records, vehicles), period, generatedAt)
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	byVehicle := make(map[string][]models.MaintenanceRecord)
	for _, r := range records {
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], r)
	}

	names := newSheetNames(summarySheet)
	for _, v := range vehicles {
		own := byVehicle[v.ID.Hex()]
		if len(own) == 0 {
			continue
		}
		sheet := names.next(v.Model)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		if err := writeRows(f, sheet, maintenanceDetailRows(v, own)); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// MaintenanceSummaryRows builds the "Resumo" sheet content.
func MaintenanceSummaryRows(totals report.MaintenanceTotals, period string, generatedAt time.Time) [][]interface{} {
	rows := [][]interface{}{
		{"Relatório de Manutenção - Resumo"},
		{"Período:", period},
		{"Gerado em:", generatedAt.Format("02/01/2006 15:04")},
		{},
		{"Veículo", "Placa", "Total Registros", "Total Gasto (R$)"},
	}
	for _, v := range totals.Vehicles {
		rows = append(rows, []interface{}{v.Model, v.LicensePlate, v.RecordCount, round2(v.TotalSpent)})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Total Geral", "", totals.RecordCount, round2(totals.TotalSpent)})
	return rows
}

func maintenanceDetailRows(v models.Vehicle, records []models.MaintenanceRecord) [][]interface{} {
	rows := [][]interface{}{
		{fmt.Sprintf("Manutenções - %s", v.Label())},
		{},
		{"Data", "Local", "Descrição", "KM", "Valor (R$)", "Observações"},
	}
	var total float64
	for _, r := range report.SortMaintenanceNewestFirst(records) {
		km := "-"
		if r.OdometerKm != nil {
			km = strconv.Itoa(*r.OdometerKm)
		}
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		rows = append(rows, []interface{}{FormatDate(r.Date), r.Location, r.IssueDescription, km, round2(r.Cost), notes})
		total += r.Cost
	}
	rows = append(rows, []interface{}{}, []interface{}{"Total", "", "", "", round2(total), ""})
	return rows
}

// FleetWorkbook writes the batch monthly fuel report, one row per vehicle.
func FleetWorkbook(w io.Writer, reports []report.VehicleFuelReport, month models.YearMonth) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Frota " + month.String()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Relatório Mensal de Combustível", month.String()},
		{},
		{"Veículo", "Placa", "Abastecimentos", "Distância (km)", "Litros", "Consumo (km/l)", "Custo Total (R$)", "Custo por km (R$)", "Preço Médio (R$/l)"},
	}
	var totalCost, totalLiters float64
	var totalDistance int
	for _, vr := range reports {
		r := vr.Report
		rows = append(rows, []interface{}{
			vr.Model, vr.LicensePlate, r.EntryCount, r.TotalDistanceKm, round2(r.TotalLiters),
			round2(r.AverageConsumption), round2(r.TotalCost), round2(r.CostPerKm), round2(r.AverageFuelPrice),
		})
		totalCost += r.TotalCost
		totalLiters += r.TotalLiters
		totalDistance += r.TotalDistanceKm
	}
	rows = append(rows, []interface{}{}, []interface{}{"Total", "", "", totalDistance, round2(totalLiters), "", round2(totalCost)})

	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// sheetNames hands out unique, Excel-safe sheet names.
type sheetNames struct {
	used map[string]bool
}

func newSheetNames(reserved ...string) *sheetNames {
	n := &sheetNames{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

func (n *sheetNames) next(base string) string {
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(base))
	if base == "" {
		base = "Veículo"
	}

	name := truncateRunes(base, maxSheetName)
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func round2(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return f
}

func sortedFuel(entries []models.FuelEntry) []models.FuelEntry {
	sorted := make([]models.FuelEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}
