package provisioning

import (
	"fmt"
	"strings"
	"time"

	"github.com/imamik/pvelamp/internal/config"
)

// CheckResult contains the outcome of a single prerequisite check.
type CheckResult struct {
	Name   string
	Passed bool
	Reason string
}

// ValidationPhase implements the Phase interface for pre-flight validation.
// All checks are read-only except template resolution, which may download
// the pinned template when it is not yet present.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface. Checks run in order and the
// phase aborts on the first failure.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	checks := []func(*Context) CheckResult{
		checkBridge,
		checkStorage,
		vp.resolveTemplate,
	}

	for _, check := range checks {
		result := check(ctx)
		vp.report(ctx, result)
		if !result.Passed {
			return fmt.Errorf("%s check failed: %s", result.Name, result.Reason)
		}
	}

	return nil
}

func (vp *ValidationPhase) report(ctx *Context, result CheckResult) {
	eventType := EventCheckPassed
	if !result.Passed {
		eventType = EventCheckFailed
	}
	ctx.Observer.Event(Event{
		Type:      eventType,
		Phase:     vp.Name(),
		Message:   fmt.Sprintf("%s: %s", result.Name, result.Reason),
		Timestamp: time.Now(),
	})
}

// Preflight runs the host checks read-only: unlike the validation
// phase, a missing template is reported instead of downloaded.
func Preflight(ctx *Context) []CheckResult {
	return []CheckResult{
		checkTools(ctx),
		checkBridge(ctx),
		checkStorage(ctx),
		checkTemplatePresence(ctx),
	}
}

// checkTools confirms the Proxmox management binaries are on the host PATH.
func checkTools(ctx *Context) CheckResult {
	result := CheckResult{Name: "tools"}

	missing, err := ctx.PVE.MissingTools(ctx)
	if err != nil {
		result.Reason = fmt.Sprintf("failed to check host tools: %v", err)
		return result
	}
	if len(missing) > 0 {
		result.Reason = fmt.Sprintf("missing host tools: %s", strings.Join(missing, ", "))
		return result
	}

	result.Passed = true
	result.Reason = "all management tools are on PATH"
	return result
}

// checkTemplatePresence reports whether the pinned template is already
// on the host or at least offered by the repository.
func checkTemplatePresence(ctx *Context) CheckResult {
	result := CheckResult{Name: "template"}

	storage, err := templateStorage(ctx)
	if err != nil {
		result.Reason = err.Error()
		return result
	}

	volids, err := ctx.PVE.ListTemplates(ctx, storage)
	if err != nil {
		result.Reason = fmt.Sprintf("failed to list templates on %s: %v", storage, err)
		return result
	}
	if volid := matchTemplate(volids); volid != "" {
		result.Passed = true
		result.Reason = fmt.Sprintf("template %s present on %s", volid, storage)
		return result
	}

	available, err := ctx.PVE.AvailableTemplates(ctx)
	if err != nil {
		result.Reason = fmt.Sprintf("failed to query available templates: %v", err)
		return result
	}
	if name := matchTemplate(available); name != "" {
		result.Passed = true
		result.Reason = fmt.Sprintf("template %s downloadable to %s", name, storage)
		return result
	}

	result.Reason = fmt.Sprintf("no %s template present or offered", config.TemplatePattern)
	return result
}

// checkBridge confirms the configured bridge is declared on the host.
func checkBridge(ctx *Context) CheckResult {
	result := CheckResult{Name: "bridge"}

	bridges, err := ctx.PVE.ListBridges(ctx)
	if err != nil {
		result.Reason = fmt.Sprintf("failed to list bridges: %v", err)
		return result
	}

	for _, b := range bridges {
		if b == ctx.Config.Network.Bridge {
			result.Passed = true
			result.Reason = fmt.Sprintf("bridge %s is configured on the host", b)
			return result
		}
	}

	result.Reason = fmt.Sprintf("bridge %s not found on the host (available: %s)",
		ctx.Config.Network.Bridge, strings.Join(bridges, ", "))
	return result
}

// checkStorage confirms the configured pool exists, is active, and has at
// least the requested disk size free. The boundary is inclusive: a pool
// with exactly the requested space passes.
func checkStorage(ctx *Context) CheckResult {
	result := CheckResult{Name: "storage"}

	storages, err := ctx.PVE.ListStorage(ctx)
	if err != nil {
		result.Reason = fmt.Sprintf("failed to query storage: %v", err)
		return result
	}

	for _, s := range storages {
		if s.Name != ctx.Config.Storage {
			continue
		}
		if !s.Active {
			result.Reason = fmt.Sprintf("storage pool %s is not active", s.Name)
			return result
		}
		required := int64(ctx.Config.DiskGB) << 30
		if s.AvailBytes < required {
			result.Reason = fmt.Sprintf("storage pool %s has %dG free, %dG required",
				s.Name, s.AvailGB(), ctx.Config.DiskGB)
			return result
		}
		result.Passed = true
		result.Reason = fmt.Sprintf("storage pool %s has %dG free", s.Name, s.AvailGB())
		return result
	}

	result.Reason = fmt.Sprintf("storage pool %s is not known to the hypervisor", ctx.Config.Storage)
	return result
}

// resolveTemplate locates the pinned OS template, downloading it when it
// is not yet present. The resolved volume ID lands in State.
func (vp *ValidationPhase) resolveTemplate(ctx *Context) CheckResult {
	result := CheckResult{Name: "template"}

	storage, err := templateStorage(ctx)
	if err != nil {
		result.Reason = err.Error()
		return result
	}
	ctx.State.TemplateStorage = storage

	// Already downloaded?
	volids, err := ctx.PVE.ListTemplates(ctx, storage)
	if err != nil {
		result.Reason = fmt.Sprintf("failed to list templates on %s: %v", storage, err)
		return result
	}
	if volid := matchTemplate(volids); volid != "" {
		ctx.State.TemplateVolID = volid
		result.Passed = true
		result.Reason = fmt.Sprintf("template %s already present", volid)
		return result
	}

	// Not present; refresh the index and download.
	if err := ctx.PVE.UpdateTemplateIndex(ctx); err != nil {
		result.Reason = fmt.Sprintf("failed to update template index: %v", err)
		return result
	}

	available, err := ctx.PVE.AvailableTemplates(ctx)
	if err != nil {
		result.Reason = fmt.Sprintf("failed to query available templates: %v", err)
		return result
	}
	name := matchTemplate(available)
	if name == "" {
		result.Reason = fmt.Sprintf("no %s template offered by the repository", config.TemplatePattern)
		return result
	}

	ctx.Observer.Printf("[validation] downloading template %s to %s...", name, storage)
	if err := ctx.PVE.DownloadTemplate(ctx, storage, name); err != nil {
		result.Reason = fmt.Sprintf("failed to download template: %v", err)
		return result
	}

	ctx.State.TemplateVolID = storage + ":vztmpl/" + name
	result.Passed = true
	result.Reason = fmt.Sprintf("template %s downloaded to %s", name, storage)
	return result
}

// templateStorage returns the pool that will hold the template: the
// configured pool when it supports template content, otherwise local.
func templateStorage(ctx *Context) (string, error) {
	storages, err := ctx.PVE.TemplateStorages(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to query template storages: %w", err)
	}
	for _, s := range storages {
		if s == ctx.Config.Storage {
			return s, nil
		}
	}
	// The rootfs pool cannot hold templates (e.g. lvmthin); fall back to
	// the default local directory storage.
	for _, s := range storages {
		if s == "local" {
			return s, nil
		}
	}
	if len(storages) > 0 {
		return storages[0], nil
	}
	return "", fmt.Errorf("no storage pool on the host accepts container templates")
}

// matchTemplate returns the first candidate matching the pinned template
// family, skipping the excluded appliance variant.
func matchTemplate(candidates []string) string {
	for _, c := range candidates {
		if strings.Contains(c, config.TemplatePattern) && !strings.Contains(c, config.TemplateExclude) {
			return c
		}
	}
	return ""
}
