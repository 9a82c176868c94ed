// Package export renders reports as CSV files and Excel workbooks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/report"
)

const displayDate = "02/01/2006"

// FormatDate renders a date as dd/mm/yyyy, or "-" when empty.
func FormatDate(d models.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Time().Format(displayDate)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FuelCSV writes the fuel history of a vehicle, oldest first.
func FuelCSV(w io.Writer, entries []models.FuelEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Data", "Quilometragem", "Litros", "Valor Total (R$)"}); err != nil {
		return err
	}
	for _, e := range sortedFuel(entries) {
		row := []string{
			FormatDate(e.Date),
			strconv.Itoa(e.OdometerKm),
			strconv.FormatFloat(e.Liters, 'f', 2, 64),
			money(e.TotalCost),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TechniciansCSV writes one row per field entry, grouped by city, followed by
// a totals row.
func TechniciansCSV(w io.Writer, reports []report.CityReport) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Cidade", "Técnico", "Data", "Alimentação", "Combustível", "Hospedagem",
		"Outros", "Total Despesas", "Ordens de Serviço", "Receita", "Lucro",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, city := range reports {
		for _, line := range city.Entries {
			row := []string{
				city.CityName,
				line.TechnicianName,
				FormatDate(line.Date),
				money(line.FoodExpense),
				money(line.FuelExpense),
				money(line.AccommodationExpense),
				money(line.OtherExpense),
				money(line.TotalExpense),
				strconv.Itoa(line.ServiceOrders),
				money(line.Revenue),
				money(line.Profit),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	totals := report.SummarizeCityReports(reports)
	footer := []string{
		"Total", "", "", "", "", "", "",
		money(totals.TotalExpense),
		strconv.Itoa(totals.TotalServiceOrders),
		money(totals.TotalRevenue),
		money(totals.TotalProfit),
	}
	if err := cw.Write(footer); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
