package cli

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type seedCmd struct {
	opts     *globalOptions
	vehicles int
	months   int
	seed     int64
}

func newSeedCmd(opts *globalOptions) *cobra.Command {
	sc := &seedCmd{opts: opts}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the API with demo vehicles, refuelings and field entries",
		RunE:  sc.run,
	}
	cmd.Flags().IntVar(&sc.vehicles, "vehicles", 5, "Number of vehicles to create")
	cmd.Flags().IntVar(&sc.months, "months", 3, "Months of history to generate")
	cmd.Flags().Int64Var(&sc.seed, "seed", time.Now().UnixNano(), "Random seed")
	return cmd
}

func (sc *seedCmd) run(cmd *cobra.Command, _ []string) error {
	if sc.vehicles < 1 || sc.months < 1 {
		return fmt.Errorf("--vehicles and --months must be at least 1")
	}
	log.WithFields(log.Fields{
		"api":      sc.opts.apiURL,
		"vehicles": sc.vehicles,
		"months":   sc.months,
		"seed":     sc.seed,
	}).Info("Seeding fleet data")

	res, err := NewSeeder(sc.opts.client(), sc.seed, time.Now()).Run(cmd.Context(), sc.vehicles, sc.months)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %d vehicles, %d fuel entries, %d cities, %d technician entries\n",
		res.Vehicles, res.FuelEntries, res.Cities, res.TechnicianEntries)
	return nil
}
