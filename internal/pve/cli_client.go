package pve

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// CLIClient implements Client by shelling out to the Proxmox VE management
// commands through a Runner.
type CLIClient struct {
	runner Runner
}

// NewCLIClient creates a new CLIClient on top of the given runner.
func NewCLIClient(runner Runner) *CLIClient {
	return &CLIClient{runner: runner}
}

// --- ContainerManager ---

func (c *CLIClient) NextID(ctx context.Context) (int, error) {
	out, err := c.runner.Run(ctx, "pvesh", "get", "/cluster/nextid")
	if err != nil {
		return 0, fmt.Errorf("failed to query next free VMID: %w", err)
	}
	id, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected nextid output %q: %w", strings.TrimSpace(out), err)
	}
	return id, nil
}

func (c *CLIClient) CreateContainer(ctx context.Context, vmid int, req CreateRequest) error {
	args := []string{
		"create", strconv.Itoa(vmid), req.Template,
		"--arch", req.Architecture,
		"--cores", strconv.Itoa(req.Cores),
		"--hostname", req.Hostname,
		"--memory", strconv.Itoa(req.MemoryMB),
		"--swap", strconv.Itoa(req.SwapMB),
		"--rootfs", req.RootFS(),
		"--ostype", req.OSType,
		"--net0", req.Net0(),
	}
	if req.Unprivileged {
		args = append(args, "--unprivileged", "1")
	}

	if _, err := c.runner.Run(ctx, "pct", args...); err != nil {
		return fmt.Errorf("failed to create container %d: %w", vmid, err)
	}
	return nil
}

func (c *CLIClient) StartContainer(ctx context.Context, vmid int) error {
	if _, err := c.runner.Run(ctx, "pct", "start", strconv.Itoa(vmid)); err != nil {
		return fmt.Errorf("failed to start container %d: %w", vmid, err)
	}
	return nil
}

func (c *CLIClient) StopContainer(ctx context.Context, vmid int) error {
	if _, err := c.runner.Run(ctx, "pct", "stop", strconv.Itoa(vmid)); err != nil {
		return fmt.Errorf("failed to stop container %d: %w", vmid, err)
	}
	return nil
}

func (c *CLIClient) DestroyContainer(ctx context.Context, vmid int) error {
	if _, err := c.runner.Run(ctx, "pct", "destroy", strconv.Itoa(vmid), "--force"); err != nil {
		return fmt.Errorf("failed to destroy container %d: %w", vmid, err)
	}
	return nil
}

func (c *CLIClient) ContainerExists(ctx context.Context, vmid int) (bool, error) {
	_, err := c.ContainerStatus(ctx, vmid)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	}
	return false, err
}

func (c *CLIClient) ContainerStatus(ctx context.Context, vmid int) (string, error) {
	out, err := c.runner.Run(ctx, "pct", "status", strconv.Itoa(vmid))
	if err != nil {
		// pct status exits non-zero with a "does not exist" message for
		// unknown VMIDs; anything else is a real failure.
		var ee *ExitError
		if asExitError(err, &ee) && isMissingGuest(ee.Output) {
			return "", fmt.Errorf("container %d: %w", vmid, ErrNotFound)
		}
		return "", err
	}
	return parseStatus(out), nil
}

func (c *CLIClient) Exec(ctx context.Context, vmid int, command string) (string, error) {
	return c.runner.Run(ctx, "pct", "exec", strconv.Itoa(vmid), "--", "sh", "-c", command)
}

func (c *CLIClient) WriteFile(ctx context.Context, vmid int, dest string, content []byte) error {
	// The content travels base64-encoded so that arbitrary configuration
	// text survives the layers of shell quoting between here and the
	// container.
	encoded := base64.StdEncoding.EncodeToString(content)
	cmd := fmt.Sprintf("mkdir -p '%s' && echo '%s' | base64 -d > '%s'",
		path.Dir(dest), encoded, dest)
	if _, err := c.Exec(ctx, vmid, cmd); err != nil {
		return fmt.Errorf("failed to write %s in container %d: %w", dest, vmid, err)
	}
	return nil
}

func (c *CLIClient) ContainerIP(ctx context.Context, vmid int) (string, error) {
	out, err := c.Exec(ctx, vmid, "ip -4 -o addr show dev eth0 scope global")
	if err != nil {
		return "", fmt.Errorf("failed to query address of container %d: %w", vmid, err)
	}
	return parseInterfaceAddr(out), nil
}

// --- StorageInventory ---

func (c *CLIClient) ListStorage(ctx context.Context) ([]StorageStatus, error) {
	out, err := c.runner.Run(ctx, "pvesm", "status")
	if err != nil {
		return nil, fmt.Errorf("failed to query storage status: %w", err)
	}
	return parseStorageStatus(out), nil
}

func (c *CLIClient) TemplateStorages(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, "pvesm", "status", "--content", "vztmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to query template storages: %w", err)
	}
	statuses := parseStorageStatus(out)
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.Name)
	}
	return names, nil
}

// --- TemplateRepository ---

func (c *CLIClient) ListTemplates(ctx context.Context, storage string) ([]string, error) {
	out, err := c.runner.Run(ctx, "pveam", "list", storage)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates on %s: %w", storage, err)
	}
	return parseTemplateList(out), nil
}

func (c *CLIClient) AvailableTemplates(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, "pveam", "available", "--section", "system")
	if err != nil {
		return nil, fmt.Errorf("failed to list available templates: %w", err)
	}
	return parseAvailableTemplates(out), nil
}

func (c *CLIClient) UpdateTemplateIndex(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "pveam", "update"); err != nil {
		return fmt.Errorf("failed to update template index: %w", err)
	}
	return nil
}

func (c *CLIClient) DownloadTemplate(ctx context.Context, storage, template string) error {
	if _, err := c.runner.Run(ctx, "pveam", "download", storage, template); err != nil {
		return fmt.Errorf("failed to download template %s: %w", template, err)
	}
	return nil
}

// --- HostInventory ---

func (c *CLIClient) ListBridges(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, "ip", "-o", "link", "show", "type", "bridge")
	if err != nil {
		return nil, fmt.Errorf("failed to list bridges: %w", err)
	}
	return parseBridges(out), nil
}

// requiredTools are the management binaries every operation shells out to.
var requiredTools = []string{"pct", "pvesm", "pveam", "pvesh"}

func (c *CLIClient) MissingTools(ctx context.Context) ([]string, error) {
	var script strings.Builder
	for _, tool := range requiredTools {
		fmt.Fprintf(&script, "command -v %s >/dev/null 2>&1 || echo %s; ", tool, tool)
	}
	out, err := c.runner.Run(ctx, "sh", "-c", script.String())
	if err != nil {
		return nil, fmt.Errorf("failed to check host tools: %w", err)
	}
	return strings.Fields(out), nil
}
