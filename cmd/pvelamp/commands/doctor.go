package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/pvelamp/cmd/pvelamp/handlers"
)

// Doctor returns the command for diagnosing host readiness.
//
// This command runs the provisioning pre-flight checks without creating
// anything: bridge presence, storage capacity, and template availability.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect pvelamp.yaml)
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check whether the host can provision the configured container",
		Long: `Doctor runs the provisioning pre-flight checks without creating anything:

  - Network bridge exists on the host
  - Storage pool is active and has enough free space
  - OS template is present or downloadable

Examples:
  # Check host readiness
  pvelamp doctor

  # Get results in JSON format
  pvelamp doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: pvelamp.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
