package cli

import (
	"fmt"
	"net/url"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type exportKind struct {
	name        string
	path        string
	needVehicle bool
	defaultName func(vehicle, month string) string
}

var exportKinds = []exportKind{
	{name: "fuel", path: "/exports/fuel.csv", needVehicle: true, defaultName: func(v, _ string) string {
		return "abastecimentos_" + v + ".csv"
	}},
	{name: "technicians", path: "/exports/technicians.csv", defaultName: func(_, m string) string {
		return "tecnicos_" + orDefault(m, "atual") + ".csv"
	}},
	{name: "maintenance", path: "/exports/maintenance.xlsx", defaultName: func(_, m string) string {
		return "manutencao_veiculos_" + orDefault(m, "completo") + ".xlsx"
	}},
	{name: "fleet", path: "/exports/fleet.xlsx", defaultName: func(_, m string) string {
		return "relatorio_frota_" + orDefault(m, "atual") + ".xlsx"
	}},
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download CSV and spreadsheet exports",
	}
	for _, k := range exportKinds {
		cmd.AddCommand(newExportKindCmd(opts, k))
	}
	return cmd
}

func newExportKindCmd(opts *globalOptions, kind exportKind) *cobra.Command {
	var vehicleID, month, outPath string
	cmd := &cobra.Command{
		Use:   kind.name,
		Short: fmt.Sprintf("Download the %s export", kind.name),
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{}
			if vehicleID != "" {
				q.Set("vehicle_id", vehicleID)
			}
			if month != "" {
				q.Set("month", month)
			}
			if outPath == "" {
				outPath = kind.defaultName(vehicleID, month)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			n, err := opts.client().Download(cmd.Context(), kind.path, q, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(outPath)
				return err
			}
			log.WithFields(log.Fields{"file": outPath, "bytes": n}).Info("Export saved")
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file")
	if kind.needVehicle {
		cmd.Flags().StringVar(&vehicleID, "vehicle", "", "Vehicle ID")
		_ = cmd.MarkFlagRequired("vehicle")
	}
	return cmd
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
