package provisioning

import (
	"fmt"

	"github.com/imamik/pvelamp/internal/util/keygen"
)

// AppStackPhase runs the fixed, ordered remote configuration sequence
// inside the provisioned container: system upgrade, package install,
// database bootstrap, application unpack, virtual host switch-over, and
// interpreter tuning.
//
// There is no transactional grouping: a failure partway through leaves
// the earlier steps' effects in place inside the container, which the
// run-level teardown then destroys.
type AppStackPhase struct{}

// NewAppStackPhase creates a new application stack phase.
func NewAppStackPhase() *AppStackPhase {
	return &AppStackPhase{}
}

// Name implements the Phase interface.
func (ap *AppStackPhase) Name() string {
	return "appstack"
}

// step pairs a label with the remote invocations it issues.
type step struct {
	label    string
	commands []string
}

// Provision implements the Phase interface.
func (ap *AppStackPhase) Provision(ctx *Context) error {
	password, err := keygen.Password(ctx.Config.Database.PasswordLength)
	if err != nil {
		return fmt.Errorf("failed to generate database password: %w", err)
	}
	ctx.State.DBPassword = password

	vhost := VirtualHost{
		Hostname: ctx.Config.Hostname,
		WebRoot:  ctx.Config.App.WebRoot,
	}
	vhostContent, err := vhost.Render()
	if err != nil {
		return err
	}

	db := DatabaseBootstrap{
		Name:      ctx.Config.Database.Name,
		User:      ctx.Config.Database.User,
		Password:  password,
		Charset:   ctx.Config.Database.Charset,
		Collation: ctx.Config.Database.Collation,
	}

	steps := []step{
		{"system upgrade", SystemUpgrade{}.Commands()},
		{"package install", PackageInstall{Packages: DefaultPackages}.Commands()},
		{"database bootstrap", db.Commands()},
		{"application install", AppInstall{
			ReleaseURL: ctx.Config.App.ReleaseURL,
			WebRoot:    ctx.Config.App.WebRoot,
		}.Commands()},
	}

	for _, s := range steps {
		if err := ap.runStep(ctx, s); err != nil {
			return err
		}
	}

	// The virtual host file is pushed, not rendered via shell text.
	ctx.Observer.Event(Event{Type: EventStepStarted, Phase: ap.Name(), Message: "virtual host"})
	if err := ctx.PVE.WriteFile(ctx, ctx.State.VMID, vhost.Path(), vhostContent); err != nil {
		return fmt.Errorf("virtual host step failed: %w", err)
	}
	ctx.Observer.Event(Event{Type: EventStepCompleted, Phase: ap.Name(), Message: "virtual host"})

	tail := []step{
		{"site enable", SiteEnable{Hostname: ctx.Config.Hostname}.Commands()},
		{"php tuning", PHPTuning{Limits: ctx.Config.PHP}.Commands()},
	}
	for _, s := range tail {
		if err := ap.runStep(ctx, s); err != nil {
			return err
		}
	}

	return nil
}

// runStep executes one configuration step's remote invocations in order.
func (ap *AppStackPhase) runStep(ctx *Context, s step) error {
	ctx.Observer.Event(Event{Type: EventStepStarted, Phase: ap.Name(), Message: s.label})

	for _, command := range s.commands {
		if _, err := ctx.PVE.Exec(ctx, ctx.State.VMID, command); err != nil {
			return fmt.Errorf("%s step failed: %w", s.label, err)
		}
	}

	ctx.Observer.Event(Event{Type: EventStepCompleted, Phase: ap.Name(), Message: s.label})
	return nil
}
