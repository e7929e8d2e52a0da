package provisioning

import (
	"fmt"
	"time"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// DefaultPhases returns the standard provisioning sequence:
// validation, container creation, readiness, application stack.
func DefaultPhases() []Phase {
	return []Phase{
		NewValidationPhase(),
		NewContainerPhase(),
		NewReadinessPhase(),
		NewAppStackPhase(),
	}
}

// RunPhases executes all provisioning phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Event(Event{Type: EventPhaseStarted, Phase: phase.Name(), Message: fmt.Sprintf("starting %s", name)})

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Event(Event{Type: EventPhaseFailed, Phase: phase.Name(), Message: err.Error()})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		elapsed := time.Since(phaseStart).Round(time.Millisecond)
		ctx.Observer.Event(Event{Type: EventPhaseCompleted, Phase: phase.Name(), Message: fmt.Sprintf("completed in %v", elapsed)})
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
