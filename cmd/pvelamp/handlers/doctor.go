package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/imamik/pvelamp/internal/provisioning"
)

// DoctorStatus represents the host diagnostic result.
type DoctorStatus struct {
	Hostname string        `json:"hostname"`
	Storage  string        `json:"storage"`
	Bridge   string        `json:"bridge"`
	Ready    bool          `json:"ready"`
	Checks   []DoctorCheck `json:"checks"`
}

// DoctorCheck represents one pre-flight check result.
type DoctorCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason"`
}

// Doctor handles the doctor command.
//
// It runs the provisioning pre-flight checks read-only and reports the
// results. All checks run even when an earlier one fails.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newPVEClient(cfg)
	if err != nil {
		return err
	}

	pCtx := provisioning.NewContext(ctx, cfg, client, silentObserver{})
	results := provisioning.Preflight(pCtx)

	status := &DoctorStatus{
		Hostname: cfg.Hostname,
		Storage:  cfg.Storage,
		Bridge:   cfg.Network.Bridge,
		Ready:    true,
	}
	for _, r := range results {
		status.Checks = append(status.Checks, DoctorCheck{Name: r.Name, Passed: r.Passed, Reason: r.Reason})
		if !r.Passed {
			status.Ready = false
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			return err
		}
	} else {
		printDoctorStatus(status)
	}

	if !status.Ready {
		return fmt.Errorf("host is not ready to provision %q", cfg.Hostname)
	}
	return nil
}

func printDoctorStatus(status *DoctorStatus) {
	fmt.Printf("%s\n\n", styled(headingStyle, fmt.Sprintf("pvelamp doctor: %s", status.Hostname)))
	for _, check := range status.Checks {
		mark := styled(okStyle, "[OK]")
		if !check.Passed {
			mark = styled(failStyle, "[!!]")
		}
		fmt.Printf("  %s %-10s %s\n", mark, check.Name, styled(mutedStyle, check.Reason))
	}
	fmt.Println()
	if status.Ready {
		fmt.Println(styled(okStyle, "Host is ready."))
	} else {
		fmt.Println(styled(failStyle, "Host is not ready; fix the failed checks above."))
	}
}

// silentObserver drops provisioning output; doctor renders the results
// itself.
type silentObserver struct{}

func (silentObserver) Printf(string, ...interface{}) {}

func (silentObserver) Event(provisioning.Event) {}
