// Package handlers implements the command execution logic for the
// pvelamp CLI. Commands in the commands package parse flags and delegate
// here.
package handlers

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/imamik/pvelamp/internal/config"
	"github.com/imamik/pvelamp/internal/pve"
)

// ErrAborted is returned when the user declines a confirmation prompt.
// Nothing was changed on the host; main exits 0 for it.
var ErrAborted = errors.New("aborted")

// Factory function variables - can be replaced in tests.
var (
	// newPVEClient builds the hypervisor client for the configured host.
	newPVEClient = buildPVEClient

	// confirmPrompt asks the user for confirmation.
	confirmPrompt = runConfirmPrompt

	// interactiveTTY reports whether prompts can be answered.
	interactiveTTY = isInteractiveTTY

	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
)

// loadConfig loads the configuration from an explicit path or the
// default file in the working directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			return nil, err
		}
		configPath = found
	}
	return config.LoadFile(configPath)
}

// buildPVEClient builds the hypervisor client for the configured host:
// local shell-outs by default, SSH when a remote host is set.
func buildPVEClient(cfg *config.Config) (pve.Client, error) {
	runner, err := buildRunner(cfg.Host)
	if err != nil {
		return nil, err
	}
	return pve.NewCLIClient(runner), nil
}

func buildRunner(host config.HostConfig) (pve.Runner, error) {
	if !host.Remote() {
		return pve.NewLocalRunner(), nil
	}

	key, err := os.ReadFile(host.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key %s: %w", host.KeyFile, err)
	}
	user := host.User
	if user == "" {
		user = "root"
	}
	return pve.NewSSHRunner(host.Address, user, key), nil
}

// confirm asks for confirmation unless --yes was given. On a
// non-interactive stdin the prompt cannot be answered, so --yes is
// required there.
func confirm(message string, yes bool) error {
	if yes {
		return nil
	}
	if !interactiveTTY() {
		return errors.New("refusing to proceed without confirmation; re-run with --yes")
	}

	ok, err := confirmPrompt(message)
	if err != nil {
		return fmt.Errorf("confirmation prompt failed: %w", err)
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

func runConfirmPrompt(message string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
