package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/pvelamp/internal/config"
)

// Destroy handles the destroy command.
//
// It stops and removes the container identified by vmid. The
// configuration file is only consulted for the host connection; a
// missing file means the local host.
func Destroy(ctx context.Context, configPath string, vmid int, yes bool) error {
	cfg, err := destroyConfig(configPath)
	if err != nil {
		return err
	}

	client, err := newPVEClient(cfg)
	if err != nil {
		return err
	}

	if err := confirm(fmt.Sprintf("Destroy container %d and its data?", vmid), yes); err != nil {
		return err
	}

	destroyer := newDestroyProvisioner(client, nil)
	if err := destroyer.Destroy(ctx, vmid); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	log.Printf("Container %d destroyed", vmid)
	return nil
}

// destroyConfig loads the configuration when one is present; destroy
// works without a file since it only needs the host connection.
func destroyConfig(configPath string) (*config.Config, error) {
	if configPath == "" && !fileExists(config.DefaultConfigFile) {
		return config.Default(), nil
	}
	return loadConfig(configPath)
}
