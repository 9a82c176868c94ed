package cli

import (
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ukydev/fleet-control/internal/report"
)

func newReportCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print fleet reports",
	}
	cmd.AddCommand(newMonthlyCmd(opts), newRankingCmd(opts))
	return cmd
}

func newMonthlyCmd(opts *globalOptions) *cobra.Command {
	var vehicleID, month string
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly fuel report of one vehicle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{"vehicle_id": {vehicleID}}
			if month != "" {
				q.Set("month", month)
			}
			var r report.FuelReport
			if err := opts.client().GetJSON(cmd.Context(), "/reports/fuel/monthly", q, &r); err != nil {
				return err
			}
			return printFuelReport(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "Vehicle ID")
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (defaults to the current month)")
	_ = cmd.MarkFlagRequired("vehicle")
	return cmd
}

func newRankingCmd(opts *globalOptions) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Fleet leaders of a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{}
			if month != "" {
				q.Set("month", month)
			}
			var r report.Ranking
			if err := opts.client().GetJSON(cmd.Context(), "/reports/ranking", q, &r); err != nil {
				return err
			}
			return printRanking(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (defaults to the current month)")
	return cmd
}

func printFuelReport(out io.Writer, r report.FuelReport) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Month\t%s\n", r.Month)
	fmt.Fprintf(tw, "Refuelings\t%d\n", r.EntryCount)
	fmt.Fprintf(tw, "Total cost (R$)\t%.2f\n", r.TotalCost)
	fmt.Fprintf(tw, "Liters\t%.2f\n", r.TotalLiters)
	fmt.Fprintf(tw, "Distance (km)\t%d\n", r.TotalDistanceKm)
	fmt.Fprintf(tw, "Consumption (km/l)\t%.2f\n", r.AverageConsumption)
	fmt.Fprintf(tw, "Cost per km (R$)\t%.2f\n", r.CostPerKm)
	fmt.Fprintf(tw, "Price per liter (R$)\t%.2f\n", r.AverageFuelPrice)
	if r.SkippedPairs > 0 {
		fmt.Fprintf(tw, "Skipped pairs\t%d\n", r.SkippedPairs)
	}
	if r.InsufficientData {
		fmt.Fprintln(tw, "Note\tinsufficient data for consumption")
	}
	return tw.Flush()
}

func printRanking(out io.Writer, r report.Ranking) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tVEHICLE\tPLATE\tVALUE")
	row := func(label string, v *report.VehicleRank, value func(*report.VehicleRank) string) {
		if v == nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\n", label)
			return
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", label, v.Model, v.LicensePlate, value(v))
	}
	row("Most efficient", r.MostEfficient, func(v *report.VehicleRank) string { return fmt.Sprintf("%.2f km/l", v.Efficiency) })
	row("Most expensive", r.MostExpensive, func(v *report.VehicleRank) string { return fmt.Sprintf("R$ %.2f", v.TotalSpent) })
	row("Most driven", r.MostDriven, func(v *report.VehicleRank) string { return fmt.Sprintf("%d km", v.DistanceKm) })
	return tw.Flush()
}
