// Package destroy tears down provisioned containers. It is the single
// owner of container removal: both the destroy command and the failure
// cleanup after an aborted provisioning run go through Destroy.
package destroy

import (
	"context"
	"fmt"

	"github.com/imamik/pvelamp/internal/provisioning"
	"github.com/imamik/pvelamp/internal/pve"
)

// Provisioner removes a container from the hypervisor.
type Provisioner struct {
	client   pve.ContainerManager
	observer provisioning.Observer
}

// NewProvisioner creates a destroy provisioner. A nil observer falls
// back to console output.
func NewProvisioner(client pve.ContainerManager, observer provisioning.Observer) *Provisioner {
	if observer == nil {
		observer = provisioning.NewConsoleObserver()
	}
	return &Provisioner{client: client, observer: observer}
}

// Destroy stops and removes the container identified by vmid. It is
// idempotent: a VMID that no longer exists is treated as already
// destroyed. A container that is not running is destroyed without a
// stop.
func (p *Provisioner) Destroy(ctx context.Context, vmid int) error {
	exists, err := p.client.ContainerExists(ctx, vmid)
	if err != nil {
		return fmt.Errorf("failed to check container %d: %w", vmid, err)
	}
	if !exists {
		p.observer.Printf("Container %d does not exist, nothing to destroy", vmid)
		return nil
	}

	if err := p.client.StopContainer(ctx, vmid); err != nil && !pve.IsNotRunning(err) {
		return fmt.Errorf("failed to stop container %d: %w", vmid, err)
	}

	if err := p.client.DestroyContainer(ctx, vmid); err != nil {
		return fmt.Errorf("failed to destroy container %d: %w", vmid, err)
	}

	p.observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceDeleted,
		Message:  "container destroyed",
		Resource: fmt.Sprintf("container/%d", vmid),
	})
	return nil
}
