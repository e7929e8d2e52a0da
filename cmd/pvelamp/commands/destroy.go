package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/imamik/pvelamp/cmd/pvelamp/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command stops and removes a container by VMID, including
// its root filesystem volume.
func Destroy() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "destroy <vmid>",
		Short: "Stop and remove a provisioned container",
		Long: `Destroy stops the container and removes it together with its root
filesystem volume. A VMID that no longer exists is treated as already
destroyed.

Example:
  pvelamp destroy 108 --yes

WARNING: This operation is irreversible. All container data will be lost.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vmid, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return handlers.Destroy(cmd.Context(), configPath, vmid, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: pvelamp.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
