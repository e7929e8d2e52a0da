package provisioning

import (
	"fmt"
	"strconv"

	"github.com/imamik/pvelamp/internal/config"
	"github.com/imamik/pvelamp/internal/pve"
)

// ContainerPhase allocates a VMID and issues the single container
// creation call.
type ContainerPhase struct{}

// NewContainerPhase creates a new container phase.
func NewContainerPhase() *ContainerPhase {
	return &ContainerPhase{}
}

// Name implements the Phase interface.
func (cp *ContainerPhase) Name() string {
	return "container"
}

// Provision implements the Phase interface.
func (cp *ContainerPhase) Provision(ctx *Context) error {
	vmid, err := ctx.PVE.NextID(ctx)
	if err != nil {
		return fmt.Errorf("failed to allocate VMID: %w", err)
	}

	// Recording the VMID arms teardown: from here on a failed run must
	// destroy the container.
	ctx.State.VMID = vmid
	ctx.Observer.Printf("[container] allocated VMID %d", vmid)

	req := buildCreateRequest(ctx.Config, ctx.State)
	if err := ctx.PVE.CreateContainer(ctx, vmid, req); err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	ctx.Observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    cp.Name(),
		Resource: strconv.Itoa(vmid),
		Message:  fmt.Sprintf("container %d created from %s", vmid, ctx.State.TemplateVolID),
	})
	return nil
}

// buildCreateRequest assembles the pct create parameter set from the
// validated configuration and the resolved template.
func buildCreateRequest(cfg *config.Config, state *State) pve.CreateRequest {
	req := pve.CreateRequest{
		Template:     state.TemplateVolID,
		Hostname:     cfg.Hostname,
		Architecture: cfg.Architecture,
		Cores:        cfg.Cores,
		MemoryMB:     cfg.MemoryMB,
		SwapMB:       cfg.SwapMB,
		Storage:      cfg.Storage,
		DiskGB:       cfg.DiskGB,
		OSType:       config.OSType,
		Unprivileged: cfg.Unprivileged == nil || *cfg.Unprivileged,
		Bridge:       cfg.Network.Bridge,
	}

	if cfg.Network.Mode == "static" {
		req.Mode = pve.NetworkStatic
		req.AddressCIDR = cfg.Network.Address
		req.Gateway = cfg.Network.Gateway
	} else {
		req.Mode = pve.NetworkDHCP
	}

	return req
}
