package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/pvelamp/internal/util/retry"
)

// Readiness polling defaults: after the settle delay, the address is
// polled up to MaxAttempts times with a fixed interval between attempts.
const (
	DefaultSettleDelay  = 5 * time.Second
	DefaultPollAttempts = 10
	DefaultPollInterval = 2 * time.Second
)

// ReadinessPhase starts the container and waits until it has a usable
// network address. Exhausting the attempt budget is fatal for the run;
// no higher-level retry wraps this phase.
type ReadinessPhase struct {
	SettleDelay  time.Duration
	MaxAttempts  int
	PollInterval time.Duration
}

// NewReadinessPhase creates a readiness phase with default timing.
func NewReadinessPhase() *ReadinessPhase {
	return &ReadinessPhase{
		SettleDelay:  DefaultSettleDelay,
		MaxAttempts:  DefaultPollAttempts,
		PollInterval: DefaultPollInterval,
	}
}

// Name implements the Phase interface.
func (rp *ReadinessPhase) Name() string {
	return "readiness"
}

// Provision implements the Phase interface.
func (rp *ReadinessPhase) Provision(ctx *Context) error {
	vmid := ctx.State.VMID

	if err := ctx.PVE.StartContainer(ctx, vmid); err != nil {
		return fmt.Errorf("failed to start container %d: %w", vmid, err)
	}

	ctx.Observer.Printf("[readiness] container %d started, settling for %v", vmid, rp.SettleDelay)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(rp.SettleDelay):
	}

	// Static mode needs no discovery: the address is the configured CIDR
	// stripped of its prefix length.
	if ctx.Config.Network.Mode == "static" {
		ctx.State.Address = ctx.Config.Network.StaticAddress()
		ctx.Observer.Printf("[readiness] using static address %s", ctx.State.Address)
		return nil
	}

	attempt := 0
	err := retry.Poll(ctx, rp.MaxAttempts, rp.PollInterval, func() (bool, error) {
		attempt++
		addr, err := ctx.PVE.ContainerIP(ctx, vmid)
		if err != nil {
			// The guest agent side may not be up yet; keep polling.
			ctx.Observer.Printf("[readiness] attempt %d/%d: %v", attempt, rp.MaxAttempts, err)
			return false, nil
		}
		if addr == "" {
			ctx.Observer.Printf("[readiness] attempt %d/%d: no address yet", attempt, rp.MaxAttempts)
			return false, nil
		}
		ctx.State.Address = addr
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("container %d did not obtain an address: %w", vmid, err)
	}

	ctx.Observer.Printf("[readiness] container %d reachable at %s", vmid, ctx.State.Address)
	return nil
}
