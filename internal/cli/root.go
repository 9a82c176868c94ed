// Package cli implements fleetctl, the command-line client of the fleet API.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080/api"

type globalOptions struct {
	apiURL string
	token  string
}

func (o *globalOptions) client() *Client {
	return NewClient(o.apiURL, o.token)
}

// NewRootCmd builds the fleetctl command tree. Command output goes to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Command-line client for the fleet control API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", apiURL, "Base URL of the API (env API_BASE_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("FLEET_TOKEN"), "Bearer token (env FLEET_TOKEN)")

	root.AddCommand(
		newSeedCmd(opts),
		newReportCmd(opts),
		newExportCmd(opts),
		newTokenCmd(),
	)
	return root
}
