package wizard

import (
	"context"
	"regexp"

	"github.com/charmbracelet/huh"

	"github.com/imamik/pvelamp/internal/pve"
	"github.com/imamik/pvelamp/internal/util/netutil"
)

// hostnameRegex validates hostname format: 1-32 lowercase alphanumeric with hyphens.
var hostnameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// identifierRegex validates database names and user names.
var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,31}$`)

// runIdentityGroup prompts for hostname and architecture.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.Architecture = "amd64" // default

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hostname").
				Description("1-32 lowercase alphanumeric characters or hyphens; also used for the Apache virtual host").
				Placeholder("my-blog").
				Value(&result.Hostname).
				Validate(validateHostname),
			huh.NewSelect[string]().
				Title("Architecture").
				Description("CPU architecture of the container").
				Options(ArchitectureOptions...).
				Value(&result.Architecture),
		).Title("Container Identity"),
	).RunWithContext(ctx)
}

// runResourcesGroup prompts for storage pool, disk, cores, and memory.
func runResourcesGroup(ctx context.Context, result *WizardResult, storages []pve.StorageStatus) error {
	result.DiskGB = 16
	result.Cores = 2
	result.MemoryMB = 2048

	storageField := storageQuestion(result, storages)

	return huh.NewForm(
		huh.NewGroup(
			storageField,
			huh.NewSelect[int]().
				Title("Disk Size").
				Description("Rootfs size; the storage pool must have at least this much free").
				Options(DiskSizeOptions...).
				Value(&result.DiskGB),
			huh.NewSelect[int]().
				Title("Cores").
				Options(CoreOptions...).
				Value(&result.Cores),
			huh.NewSelect[int]().
				Title("Memory").
				Options(MemoryOptions...).
				Value(&result.MemoryMB),
		).Title("Resources"),
	).RunWithContext(ctx)
}

// storageQuestion offers discovered pools as a select, or a free-text
// input when the inventory is empty.
func storageQuestion(result *WizardResult, storages []pve.StorageStatus) huh.Field {
	if len(storages) > 0 {
		result.Storage = storages[0].Name
		return huh.NewSelect[string]().
			Title("Storage Pool").
			Description("Pool that receives the container rootfs").
			Options(StoragesToOptions(storages)...).
			Value(&result.Storage)
	}

	return huh.NewInput().
		Title("Storage Pool").
		Description("Pool that receives the container rootfs").
		Placeholder("local-lvm").
		Value(&result.Storage).
		Validate(validateStorage)
}

// runNetworkGroup prompts for bridge, network mode, and static addressing.
func runNetworkGroup(ctx context.Context, result *WizardResult, bridges []string) error {
	result.Bridge = "vmbr0"
	result.NetworkMode = "dhcp"

	var bridgeField huh.Field
	if len(bridges) > 0 {
		result.Bridge = bridges[0]
		bridgeField = huh.NewSelect[string]().
			Title("Bridge").
			Description("Host bridge for the container's network interface").
			Options(BridgesToOptions(bridges)...).
			Value(&result.Bridge)
	} else {
		bridgeField = huh.NewInput().
			Title("Bridge").
			Description("Host bridge for the container's network interface").
			Placeholder("vmbr0").
			Value(&result.Bridge)
	}

	err := huh.NewForm(
		huh.NewGroup(
			bridgeField,
			huh.NewSelect[string]().
				Title("Network Mode").
				Options(NetworkModeOptions...).
				Value(&result.NetworkMode),
		).Title("Network"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if result.NetworkMode != "static" {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Static Address").
				Description("IPv4 address in CIDR notation").
				Placeholder("192.168.1.50/24").
				Value(&result.Address).
				Validate(validateCIDR),
			huh.NewInput().
				Title("Gateway").
				Placeholder("192.168.1.1").
				Value(&result.Gateway).
				Validate(validateGateway),
		).Title("Static Addressing"),
	).RunWithContext(ctx)
}

// runDatabaseGroup prompts for the application database identity. The
// password is generated at provisioning time, never asked for.
func runDatabaseGroup(ctx context.Context, result *WizardResult) error {
	result.DatabaseName = "wordpress"
	result.DatabaseUser = "wp_user"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Database Name").
				Value(&result.DatabaseName).
				Validate(validateIdentifier),
			huh.NewInput().
				Title("Database User").
				Description("The user's password is generated fresh at provisioning time").
				Value(&result.DatabaseUser).
				Validate(validateIdentifier),
		).Title("Database"),
	).RunWithContext(ctx)
}

func validateHostname(s string) error {
	if s == "" {
		return errHostnameRequired
	}
	if !hostnameRegex.MatchString(s) {
		return errHostnameInvalid
	}
	return nil
}

func validateStorage(s string) error {
	if s == "" {
		return errStorageRequired
	}
	return nil
}

func validateCIDR(s string) error {
	if s == "" {
		return errCIDRRequired
	}
	if err := netutil.ValidateCIDR(s); err != nil {
		return errCIDRInvalid
	}
	return nil
}

func validateGateway(s string) error {
	if err := netutil.ValidateIPv4(s); err != nil {
		return errGatewayInvalid
	}
	return nil
}

func validateIdentifier(s string) error {
	if !identifierRegex.MatchString(s) {
		return errDBNameInvalid
	}
	return nil
}
