package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/pvelamp/cmd/pvelamp/handlers"
)

// Provision returns the provision command.
//
// The provision command creates the LXC container and installs the full
// application stack inside it. Without a configuration file, an
// interactive wizard collects the parameters first.
//
// Flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect pvelamp.yaml)
//	--yes, -y: Skip the confirmation prompt
//	--no-tui: Plain log output even on a terminal
func Provision() *cobra.Command {
	var (
		configPath string
		yes        bool
		noTUI      bool
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the container and install the application stack",
		Long: `Provision creates a Debian LXC container on the Proxmox VE host and
installs the complete application stack inside it.

The run proceeds in four phases:
  1. Validation  - bridge, storage space, and OS template checks
  2. Container   - VMID allocation and pct create
  3. Readiness   - container start and network address discovery
  4. App stack   - system upgrade, Apache/MariaDB/PHP, application release

If any phase fails after the container was created, the container is
destroyed so no half-provisioned guest is left on the host.

Without --config, pvelamp.yaml in the working directory is used when
present; otherwise the interactive wizard collects the parameters.

Example:
  pvelamp provision -c pvelamp.yaml --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath, yes, noTUI)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: pvelamp.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Disable the terminal UI and print plain logs")

	return cmd
}
