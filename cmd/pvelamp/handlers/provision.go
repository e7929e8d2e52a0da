package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/pvelamp/internal/config"
	"github.com/imamik/pvelamp/internal/config/wizard"
	"github.com/imamik/pvelamp/internal/provisioning"
	"github.com/imamik/pvelamp/internal/provisioning/destroy"
	"github.com/imamik/pvelamp/internal/pve"
	"github.com/imamik/pvelamp/internal/ui/tui"
)

// Factory function variables for provision - can be replaced in tests.
var (
	// provisionPhases returns the phase sequence to run.
	provisionPhases = provisioning.DefaultPhases

	// newDestroyProvisioner creates the teardown provisioner.
	newDestroyProvisioner = destroy.NewProvisioner

	// runWizardFn runs the interactive configuration wizard.
	runWizardFn = wizard.RunWizard

	// runProvisionTUI wraps the pipeline run with the terminal UI.
	runProvisionTUI = tui.RunProvisionTUI
)

// Provision handles the provision command.
//
// It resolves the configuration (file or wizard), confirms the plan,
// runs the four provisioning phases, and prints the access summary.
// If any phase fails after a VMID was claimed, the container is
// destroyed before the error is returned.
func Provision(ctx context.Context, configPath string, yes, noTUI bool) error {
	cfg, err := resolveProvisionConfig(ctx, configPath)
	if err != nil {
		return err
	}

	client, err := newPVEClient(cfg)
	if err != nil {
		return err
	}

	if err := confirm(provisionPlan(cfg), yes); err != nil {
		return err
	}

	state, err := runPipeline(ctx, cfg, client, noTUI)
	if err != nil {
		cleanupFailedRun(ctx, client, state)
		return err
	}

	printAccessSummary(cfg, state)
	return nil
}

// resolveProvisionConfig loads the config file when one is available and
// falls back to the interactive wizard otherwise.
func resolveProvisionConfig(ctx context.Context, configPath string) (*config.Config, error) {
	if configPath != "" || fileExists(config.DefaultConfigFile) {
		return loadConfig(configPath)
	}

	if !isInteractiveTTY() {
		return nil, fmt.Errorf("%s not found and no terminal for the wizard; provide --config", config.DefaultConfigFile)
	}

	// The wizard offers host inventory in its selects. Inventory comes
	// from the local host since no config names a remote one yet.
	client := pve.NewCLIClient(pve.NewLocalRunner())
	inv := wizard.Inventory{}
	if storages, err := client.ListStorage(ctx); err == nil {
		inv.Storages = storages
	}
	if bridges, err := client.ListBridges(ctx); err == nil {
		inv.Bridges = bridges
	}

	result, err := runWizardFn(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runPipeline executes the provisioning phases, with or without the
// terminal UI, and returns the (possibly partial) run state.
func runPipeline(ctx context.Context, cfg *config.Config, client pve.Client, noTUI bool) (*provisioning.State, error) {
	if noTUI || !isInteractiveTTY() {
		pCtx := provisioning.NewContext(ctx, cfg, client, nil)
		err := provisioning.RunPhases(pCtx, provisionPhases())
		return pCtx.State, err
	}

	var state *provisioning.State
	err := runProvisionTUI(ctx, cfg.Hostname, func(runCtx context.Context, observer provisioning.Observer) error {
		pCtx := provisioning.NewContext(runCtx, cfg, client, observer)
		state = pCtx.State
		return provisioning.RunPhases(pCtx, provisionPhases())
	})
	return state, err
}

// cleanupFailedRun destroys the container a failed run left behind. A
// run that failed before claiming a VMID created nothing on the host.
func cleanupFailedRun(ctx context.Context, client pve.Client, state *provisioning.State) {
	if state == nil || state.VMID == 0 {
		return
	}

	log.Printf("Provisioning failed, destroying container %d...", state.VMID)
	destroyer := newDestroyProvisioner(client, nil)
	if err := destroyer.Destroy(ctx, state.VMID); err != nil {
		log.Printf("Warning: cleanup failed, container %d may need manual removal: %v", state.VMID, err)
	}
}

// provisionPlan renders the confirmation text shown before anything is
// created.
func provisionPlan(cfg *config.Config) string {
	network := "DHCP"
	if cfg.Network.Mode == "static" {
		network = cfg.Network.Address
	}
	return fmt.Sprintf("Create container %q (%d cores, %dMB RAM, %dG on %s, net %s)?",
		cfg.Hostname, cfg.Cores, cfg.MemoryMB, cfg.DiskGB, cfg.Storage, network)
}

// printAccessSummary prints the endpoint and credentials of the finished
// container. The password exists nowhere else.
func printAccessSummary(cfg *config.Config, state *provisioning.State) {
	fmt.Println()
	fmt.Println(styled(headingStyle, "Container provisioned!"))
	fmt.Println()
	fmt.Printf("  VMID:     %d\n", state.VMID)
	fmt.Printf("  Address:  %s\n", styled(valueStyle, fmt.Sprintf("http://%s/", state.Address)))
	fmt.Println()
	fmt.Println("Database Access")
	fmt.Println("---------------")
	fmt.Printf("  Database: %s\n", cfg.Database.Name)
	fmt.Printf("  User:     %s\n", cfg.Database.User)
	fmt.Printf("  Password: %s\n", styled(valueStyle, state.DBPassword))
	fmt.Println()
	fmt.Println(styled(mutedStyle, "The password is not stored anywhere; save it now."))
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Open http://%s/ and finish the web installer\n", state.Address)
	fmt.Printf("  2. To remove the container later: pvelamp destroy %d\n", state.VMID)
	fmt.Println()
}
