package provisioning

import (
	"context"

	"github.com/imamik/pvelamp/internal/config"
	"github.com/imamik/pvelamp/internal/pve"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// VMID is the allocated container identifier. Zero until the container
	// phase claims one; from that moment the run owns the container and
	// teardown is armed.
	VMID int

	// TemplateVolID is the resolved template volume
	// (populated by the validation phase).
	TemplateVolID string

	// TemplateStorage is the pool holding the template.
	TemplateStorage string

	// Address is the container's IPv4 address
	// (populated by the readiness phase).
	Address string

	// DBPassword is the generated database password
	// (populated by the app stack phase).
	DBPassword string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	PVE      pve.Client
	Observer Observer
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, client pve.Client, observer Observer) *Context {
	if observer == nil {
		observer = NewConsoleObserver()
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		PVE:      client,
		Observer: observer,
	}
}
