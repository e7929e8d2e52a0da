package pve

import (
	"fmt"
	"strings"
)

// NetworkMode selects how the container obtains its address.
type NetworkMode string

const (
	// NetworkDHCP requests an address from the bridge's DHCP server.
	NetworkDHCP NetworkMode = "dhcp"
	// NetworkStatic assigns a fixed address and gateway.
	NetworkStatic NetworkMode = "static"
)

// CreateRequest holds the parameters for a single container creation call.
type CreateRequest struct {
	// Template is the template volume ID, e.g.
	// "local:vztmpl/debian-12-standard_12.7-1_amd64.tar.zst".
	Template string

	Hostname     string
	Architecture string
	Cores        int
	MemoryMB     int
	SwapMB       int

	// Storage and DiskGB describe the rootfs ("storage:sizeG").
	Storage string
	DiskGB  int

	OSType       string
	Unprivileged bool

	// Network descriptor for net0.
	Bridge      string
	Mode        NetworkMode
	AddressCIDR string // static only, e.g. "192.168.1.50/24"
	Gateway     string // static only
}

// RootFS renders the rootfs volume descriptor for pct create.
func (r CreateRequest) RootFS() string {
	return fmt.Sprintf("%s:%d", r.Storage, r.DiskGB)
}

// Net0 renders the net0 descriptor for pct create.
func (r CreateRequest) Net0() string {
	parts := []string{"name=eth0", "bridge=" + r.Bridge}
	if r.Mode == NetworkStatic {
		parts = append(parts, "ip="+r.AddressCIDR, "gw="+r.Gateway)
	} else {
		parts = append(parts, "ip=dhcp")
	}
	return strings.Join(parts, ",")
}

// StorageStatus describes one storage pool as reported by pvesm status.
type StorageStatus struct {
	Name       string
	Type       string
	Active     bool
	TotalBytes int64
	AvailBytes int64
}

// AvailGB returns the available space in whole gibibytes, rounded down.
func (s StorageStatus) AvailGB() int64 {
	return s.AvailBytes / (1 << 30)
}
