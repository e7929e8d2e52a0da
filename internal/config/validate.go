package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/imamik/pvelamp/internal/util/netutil"
)

var (
	// hostnameRegex validates hostname format: 1-32 lowercase alphanumeric
	// with hyphens, starting and ending alphanumeric.
	hostnameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

	// identifierRegex validates database names and user names. The strict
	// character set keeps generated SQL free of quoting concerns.
	identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,31}$`)

	// charsetRegex validates MySQL charset and collation names.
	charsetRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Validate checks the configuration and returns all problems found,
// aggregated into a single error.
func (c *Config) Validate() error {
	var problems []string

	if c.Hostname == "" {
		problems = append(problems, "hostname is required")
	} else if !hostnameRegex.MatchString(c.Hostname) {
		problems = append(problems, fmt.Sprintf("hostname %q must be 1-32 lowercase alphanumeric characters or hyphens", c.Hostname))
	}

	if c.Architecture != "amd64" && c.Architecture != "arm64" {
		problems = append(problems, fmt.Sprintf("architecture %q must be amd64 or arm64", c.Architecture))
	}

	if c.Storage == "" {
		problems = append(problems, "storage pool is required")
	}
	if c.DiskGB < 8 {
		problems = append(problems, fmt.Sprintf("disk size %dG is below the 8G minimum", c.DiskGB))
	}
	if c.Cores < 1 {
		problems = append(problems, "at least one core is required")
	}
	if c.MemoryMB < 512 {
		problems = append(problems, fmt.Sprintf("memory %dMB is below the 512MB minimum", c.MemoryMB))
	}

	problems = append(problems, c.Network.validate()...)
	problems = append(problems, c.Database.validate()...)

	if !strings.HasPrefix(c.App.ReleaseURL, "http://") && !strings.HasPrefix(c.App.ReleaseURL, "https://") {
		problems = append(problems, fmt.Sprintf("release URL %q must be http(s)", c.App.ReleaseURL))
	}

	if c.Host.Remote() && c.Host.KeyFile == "" {
		problems = append(problems, "host.key_file is required when a remote host address is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func (n NetworkConfig) validate() []string {
	var problems []string

	if n.Bridge == "" {
		problems = append(problems, "network bridge is required")
	}

	switch n.Mode {
	case "dhcp":
		// Nothing further to check.
	case "static":
		if err := netutil.ValidateCIDR(n.Address); err != nil {
			problems = append(problems, fmt.Sprintf("static address: %v", err))
		}
		if err := netutil.ValidateIPv4(n.Gateway); err != nil {
			problems = append(problems, fmt.Sprintf("gateway: %v", err))
		}
		if len(problems) == 0 {
			inside, err := netutil.GatewayInSubnet(n.Address, n.Gateway)
			if err == nil && !inside {
				problems = append(problems, fmt.Sprintf("gateway %s is outside the subnet of %s", n.Gateway, n.Address))
			}
		}
	default:
		problems = append(problems, fmt.Sprintf("network mode %q must be dhcp or static", n.Mode))
	}

	return problems
}

func (d DatabaseConfig) validate() []string {
	var problems []string

	if d.Name == "" {
		problems = append(problems, "database name is required")
	} else if !identifierRegex.MatchString(d.Name) {
		problems = append(problems, fmt.Sprintf("database name %q must be 1-32 alphanumeric or underscore characters starting with a letter", d.Name))
	}

	if d.User == "" {
		problems = append(problems, "database user is required")
	} else if !identifierRegex.MatchString(d.User) {
		problems = append(problems, fmt.Sprintf("database user %q must be 1-32 alphanumeric or underscore characters starting with a letter", d.User))
	}

	if !charsetRegex.MatchString(d.Charset) {
		problems = append(problems, fmt.Sprintf("charset %q is not a valid charset name", d.Charset))
	}
	if !charsetRegex.MatchString(d.Collation) {
		problems = append(problems, fmt.Sprintf("collation %q is not a valid collation name", d.Collation))
	}

	if d.PasswordLength < 12 {
		problems = append(problems, fmt.Sprintf("password length %d is below the 12 character minimum", d.PasswordLength))
	}

	return problems
}
