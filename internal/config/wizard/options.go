package wizard

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/imamik/pvelamp/internal/pve"
)

// NetworkModeOptions contains the supported container network modes.
var NetworkModeOptions = []huh.Option[string]{
	huh.NewOption("DHCP (Recommended)", "dhcp"),
	huh.NewOption("Static address", "static"),
}

// ArchitectureOptions contains the supported container architectures.
var ArchitectureOptions = []huh.Option[string]{
	huh.NewOption("amd64 (x86-64)", "amd64"),
	huh.NewOption("arm64", "arm64"),
}

// DiskSizeOptions contains common rootfs sizes in gibibytes.
var DiskSizeOptions = []huh.Option[int]{
	huh.NewOption("8G (Minimal)", 8),
	huh.NewOption("16G (Recommended)", 16),
	huh.NewOption("32G", 32),
	huh.NewOption("64G", 64),
}

// CoreOptions contains common core counts.
var CoreOptions = []huh.Option[int]{
	huh.NewOption("1", 1),
	huh.NewOption("2 (Recommended)", 2),
	huh.NewOption("4", 4),
	huh.NewOption("8", 8),
}

// MemoryOptions contains common memory sizes in megabytes.
var MemoryOptions = []huh.Option[int]{
	huh.NewOption("1024 MB", 1024),
	huh.NewOption("2048 MB (Recommended)", 2048),
	huh.NewOption("4096 MB", 4096),
	huh.NewOption("8192 MB", 8192),
}

// StoragesToOptions converts discovered storage pools to huh options,
// annotated with their free space.
func StoragesToOptions(storages []pve.StorageStatus) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(storages))
	for _, s := range storages {
		label := fmt.Sprintf("%s - %s, %dG free", s.Name, s.Type, s.AvailGB())
		opts = append(opts, huh.NewOption(label, s.Name))
	}
	return opts
}

// BridgesToOptions converts discovered bridge names to huh options.
func BridgesToOptions(bridges []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(bridges))
	for _, b := range bridges {
		opts = append(opts, huh.NewOption(b, b))
	}
	return opts
}
