// Package pve wraps the Proxmox VE management CLIs (pct, pvesm, pveam, pvesh).
package pve

import (
	"context"
)

// ContainerManager defines the interface for the LXC container lifecycle.
// It abstracts the pct command surface.
type ContainerManager interface {
	// NextID returns the next free VMID from the cluster allocator.
	// The ID is unique among existing guests at call time; there is no
	// locking against a concurrent run claiming the same ID.
	NextID(ctx context.Context) (int, error)

	// CreateContainer issues a single pct create call with the fully
	// assembled parameter set.
	CreateContainer(ctx context.Context, vmid int, req CreateRequest) error

	// StartContainer starts the container.
	StartContainer(ctx context.Context, vmid int) error

	// StopContainer stops the container. Stopping a container that is not
	// running returns an error; callers that do not care should use
	// IsNotRunning to filter it.
	StopContainer(ctx context.Context, vmid int) error

	// DestroyContainer force-destroys the container and its rootfs.
	DestroyContainer(ctx context.Context, vmid int) error

	// ContainerExists reports whether the VMID is present in the registry.
	ContainerExists(ctx context.Context, vmid int) (bool, error)

	// ContainerStatus returns the container status string (e.g. "running").
	ContainerStatus(ctx context.Context, vmid int) (string, error)

	// Exec runs a shell command inside the container and returns its
	// combined output. A non-zero exit status surfaces as *ExitError.
	Exec(ctx context.Context, vmid int, command string) (string, error)

	// WriteFile writes content to a path inside the container.
	WriteFile(ctx context.Context, vmid int, path string, content []byte) error

	// ContainerIP returns the first global IPv4 address on the container's
	// primary interface, or "" if none is assigned yet.
	ContainerIP(ctx context.Context, vmid int) (string, error)
}

// StorageInventory defines the interface for querying host storage pools.
// It abstracts the pvesm command surface.
type StorageInventory interface {
	// ListStorage returns the status of all active storage pools.
	ListStorage(ctx context.Context) ([]StorageStatus, error)

	// TemplateStorages returns the names of pools that can hold container
	// templates (vztmpl content).
	TemplateStorages(ctx context.Context) ([]string, error)
}

// TemplateRepository defines the interface for the OS template inventory.
// It abstracts the pveam command surface.
type TemplateRepository interface {
	// ListTemplates returns the template volumes already downloaded to the
	// given storage.
	ListTemplates(ctx context.Context, storage string) ([]string, error)

	// AvailableTemplates returns the template names offered by the
	// repository index.
	AvailableTemplates(ctx context.Context) ([]string, error)

	// UpdateTemplateIndex refreshes the repository index.
	UpdateTemplateIndex(ctx context.Context) error

	// DownloadTemplate downloads a template into the given storage.
	DownloadTemplate(ctx context.Context, storage, template string) error
}

// HostInventory defines the interface for querying host network resources.
type HostInventory interface {
	// ListBridges returns the names of the bridges declared on the host.
	ListBridges(ctx context.Context) ([]string, error)

	// MissingTools returns the names of required management binaries that
	// are not on the host's PATH.
	MissingTools(ctx context.Context) ([]string, error)
}

// Client is the full Proxmox VE management surface consumed by provisioning.
type Client interface {
	ContainerManager
	StorageInventory
	TemplateRepository
	HostInventory
}
