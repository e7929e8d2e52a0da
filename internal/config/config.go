// Package config defines the provisioning request and its validation.
//
// A Config is assembled once per run, either from the interactive wizard or
// from a YAML file, validated, and then threaded unchanged through every
// provisioning stage.
package config

import (
	"github.com/imamik/pvelamp/internal/util/netutil"
	"github.com/imamik/pvelamp/internal/util/ptr"
)

// Default resource sizing. These mirror what a small WordPress site needs;
// everything can be overridden in the config file or wizard.
const (
	DefaultArchitecture = "amd64"
	DefaultBridge       = "vmbr0"
	DefaultDiskGB       = 16
	DefaultCores        = 2
	DefaultMemoryMB     = 2048
	DefaultSwapMB       = 512

	DefaultCharset   = "utf8mb4"
	DefaultCollation = "utf8mb4_general_ci"

	// DefaultPasswordLength is the length of generated database passwords.
	DefaultPasswordLength = 20

	// DefaultReleaseURL always points at the latest WordPress release.
	DefaultReleaseURL = "https://wordpress.org/latest.tar.gz"
	DefaultWebRoot    = "/var/www/html"

	// TemplatePattern pins the OS template family and version.
	// TemplateExclude names the prebuilt appliance variant that must not be
	// picked up by the pattern match.
	TemplatePattern = "debian-12-standard"
	TemplateExclude = "turnkey"

	// OSType is the pct ostype for the pinned template family.
	OSType = "debian"
)

// Config is the resolved provisioning request for one run.
type Config struct {
	// Hostname names both the container and the Apache virtual host.
	Hostname string `yaml:"hostname"`

	// Architecture of the container (amd64 or arm64).
	Architecture string `yaml:"architecture,omitempty"`

	// Storage is the pool that receives the container rootfs.
	Storage string `yaml:"storage"`

	DiskGB   int `yaml:"disk_gb,omitempty"`
	Cores    int `yaml:"cores,omitempty"`
	MemoryMB int `yaml:"memory_mb,omitempty"`
	SwapMB   int `yaml:"swap_mb,omitempty"`

	// Unprivileged maps to the pct unprivileged flag. Defaults to true.
	Unprivileged *bool `yaml:"unprivileged,omitempty"`

	Network  NetworkConfig  `yaml:"network"`
	Database DatabaseConfig `yaml:"database"`
	App      AppConfig      `yaml:"app,omitempty"`
	PHP      PHPConfig      `yaml:"php,omitempty"`

	// Host selects the Proxmox VE host to drive. Empty means the local
	// machine is the PVE node.
	Host HostConfig `yaml:"host,omitempty"`
}

// NetworkConfig describes the container's net0 interface.
type NetworkConfig struct {
	Bridge string `yaml:"bridge,omitempty"`

	// Mode is "dhcp" or "static".
	Mode string `yaml:"mode"`

	// Address is the static IPv4 address in CIDR notation.
	Address string `yaml:"address,omitempty"`
	Gateway string `yaml:"gateway,omitempty"`
}

// StaticAddress returns the configured static address without its prefix
// length. Meaningful only in static mode.
func (n NetworkConfig) StaticAddress() string {
	return netutil.StripPrefix(n.Address)
}

// DatabaseConfig describes the application database to bootstrap. The
// user's password is generated fresh every run and is never configured.
type DatabaseConfig struct {
	Name           string `yaml:"name"`
	User           string `yaml:"user"`
	Charset        string `yaml:"charset,omitempty"`
	Collation      string `yaml:"collation,omitempty"`
	PasswordLength int    `yaml:"password_length,omitempty"`
}

// AppConfig describes the application release to install.
type AppConfig struct {
	// ReleaseURL is the tar.gz archive to unpack into the web root.
	ReleaseURL string `yaml:"release_url,omitempty"`
	WebRoot    string `yaml:"web_root,omitempty"`
}

// PHPConfig holds the interpreter limits rewritten across all discovered
// php.ini files.
type PHPConfig struct {
	MemoryLimit       string `yaml:"memory_limit,omitempty"`
	UploadMaxFilesize string `yaml:"upload_max_filesize,omitempty"`
	PostMaxSize       string `yaml:"post_max_size,omitempty"`
	MaxExecutionTime  int    `yaml:"max_execution_time,omitempty"`
	MaxInputTime      int    `yaml:"max_input_time,omitempty"`
}

// HostConfig selects a remote Proxmox VE host driven over SSH.
type HostConfig struct {
	Address string `yaml:"address,omitempty"`
	User    string `yaml:"user,omitempty"`
	KeyFile string `yaml:"key_file,omitempty"`
}

// Remote reports whether a remote PVE host is configured.
func (h HostConfig) Remote() bool {
	return h.Address != ""
}

// Default returns a Config populated with defaults for everything that has
// one. Hostname, storage, and database identity remain to be filled in.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Architecture == "" {
		c.Architecture = DefaultArchitecture
	}
	if c.DiskGB == 0 {
		c.DiskGB = DefaultDiskGB
	}
	if c.Cores == 0 {
		c.Cores = DefaultCores
	}
	if c.MemoryMB == 0 {
		c.MemoryMB = DefaultMemoryMB
	}
	if c.SwapMB == 0 {
		c.SwapMB = DefaultSwapMB
	}
	if c.Unprivileged == nil {
		c.Unprivileged = ptr.Bool(true)
	}
	if c.Network.Bridge == "" {
		c.Network.Bridge = DefaultBridge
	}
	if c.Network.Mode == "" {
		c.Network.Mode = "dhcp"
	}
	if c.Database.Charset == "" {
		c.Database.Charset = DefaultCharset
	}
	if c.Database.Collation == "" {
		c.Database.Collation = DefaultCollation
	}
	if c.Database.PasswordLength == 0 {
		c.Database.PasswordLength = DefaultPasswordLength
	}
	if c.App.ReleaseURL == "" {
		c.App.ReleaseURL = DefaultReleaseURL
	}
	if c.App.WebRoot == "" {
		c.App.WebRoot = DefaultWebRoot
	}
	if c.PHP.MemoryLimit == "" {
		c.PHP.MemoryLimit = "256M"
	}
	if c.PHP.UploadMaxFilesize == "" {
		c.PHP.UploadMaxFilesize = "64M"
	}
	if c.PHP.PostMaxSize == "" {
		c.PHP.PostMaxSize = "64M"
	}
	if c.PHP.MaxExecutionTime == 0 {
		c.PHP.MaxExecutionTime = 300
	}
	if c.PHP.MaxInputTime == 0 {
		c.PHP.MaxInputTime = 300
	}
	if c.Host.User == "" && c.Host.Address != "" {
		c.Host.User = "root"
	}
}
