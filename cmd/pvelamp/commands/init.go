package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/pvelamp/cmd/pvelamp/handlers"
)

// Init returns the command for interactively creating a configuration.
//
// This command guides users through creating a configuration YAML file
// using an interactive wizard. Storage pools and bridges are read from
// the host so the selects offer real choices.
//
// Flags:
//
//	--output, -o: Path to output file (default "pvelamp.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create a pvelamp configuration file.

This command guides you through configuring the container step by step.
It will ask about:

  - Container identity (hostname)
  - Resources (storage pool, disk, cores, memory)
  - Networking (bridge, DHCP or static address)
  - Database (schema and user names)

Storage pools and bridges are queried from the Proxmox VE host so the
selections reflect what is actually available.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "pvelamp.yaml", "Output file path")

	return cmd
}
