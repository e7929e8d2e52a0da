package wizard

import (
	"context"
	"fmt"

	"github.com/imamik/pvelamp/internal/pve"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Container identity
	Hostname     string
	Architecture string

	// Resources
	Storage  string
	DiskGB   int
	Cores    int
	MemoryMB int

	// Network
	Bridge      string
	NetworkMode string // "dhcp" or "static"
	Address     string // static only, CIDR notation
	Gateway     string // static only

	// Database
	DatabaseName string
	DatabaseUser string
}

// Inventory carries host resources discovered before the wizard runs, so
// that storage and bridge questions can offer real choices. Empty slices
// fall back to free-text defaults.
type Inventory struct {
	Storages []pve.StorageStatus
	Bridges  []string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, inv Inventory) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("container identity: %w", err)
	}

	if err := runResourcesGroup(ctx, result, inv.Storages); err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}

	if err := runNetworkGroup(ctx, result, inv.Bridges); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	if err := runDatabaseGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	return result, nil
}
