package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/pvelamp/internal/config"
	"github.com/imamik/pvelamp/internal/config/wizard"
	"github.com/imamik/pvelamp/internal/pve"
)

// Factory function variables for init - can be replaced in tests.
var (
	// runInitWizard runs the configuration wizard.
	runInitWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	// Selects offer the local host's inventory; errors degrade to free
	// text inputs rather than blocking the wizard.
	client := pve.NewCLIClient(pve.NewLocalRunner())
	inv := wizard.Inventory{}
	if storages, err := client.ListStorage(ctx); err == nil {
		inv.Storages = storages
	}
	if bridges, err := client.ListBridges(ctx); err == nil {
		inv.Bridges = bridges
	}

	result, err := runInitWizard(ctx, inv)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("pvelamp - LAMP containers on Proxmox VE")
	fmt.Println("=======================================")
	fmt.Println()
	fmt.Println("This wizard creates a container configuration with sensible defaults.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Container Summary")
	fmt.Println("-----------------")
	fmt.Printf("  Hostname: %s\n", cfg.Hostname)
	fmt.Printf("  Storage:  %s (%dG)\n", cfg.Storage, cfg.DiskGB)
	fmt.Printf("  Compute:  %d cores, %dMB RAM\n", cfg.Cores, cfg.MemoryMB)
	if cfg.Network.Mode == "static" {
		fmt.Printf("  Network:  %s on %s via %s\n", cfg.Network.Address, cfg.Network.Bridge, cfg.Network.Gateway)
	} else {
		fmt.Printf("  Network:  DHCP on %s\n", cfg.Network.Bridge)
	}
	fmt.Printf("  Database: %s (user %s)\n", cfg.Database.Name, cfg.Database.User)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println("  2. Check host readiness:")
	fmt.Println("     pvelamp doctor")
	fmt.Println("  3. Create the container:")
	fmt.Println("     pvelamp provision")
	fmt.Println()
}
