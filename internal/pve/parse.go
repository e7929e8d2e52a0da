package pve

import (
	"strconv"
	"strings"
)

// parseStatus extracts the status value from pct status output
// ("status: running" -> "running").
func parseStatus(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "status:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return strings.TrimSpace(out)
}

// parseStorageStatus parses pvesm status output. Columns:
//
//	Name Type Status Total Used Available %
//
// Sizes are reported in KiB.
func parseStorageStatus(out string) []StorageStatus {
	var statuses []StorageStatus
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 6 || fields[0] == "Name" {
			continue
		}

		total, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			continue
		}
		avail, err := strconv.ParseInt(fields[5], 10, 64)
		if err != nil {
			continue
		}

		statuses = append(statuses, StorageStatus{
			Name:       fields[0],
			Type:       fields[1],
			Active:     fields[2] == "active",
			TotalBytes: total * 1024,
			AvailBytes: avail * 1024,
		})
	}
	return statuses
}

// parseTemplateList parses pveam list output into volume IDs, skipping the
// NAME/SIZE header.
func parseTemplateList(out string) []string {
	var volids []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "NAME" {
			continue
		}
		if strings.Contains(fields[0], ":vztmpl/") {
			volids = append(volids, fields[0])
		}
	}
	return volids
}

// parseAvailableTemplates parses pveam available output. Each line carries
// a section name followed by the template name.
func parseAvailableTemplates(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		names = append(names, fields[1])
	}
	return names
}

// parseBridges extracts interface names from ip -o link output
// ("3: vmbr0: <BROADCAST,...> ..." -> "vmbr0").
func parseBridges(out string) []string {
	var bridges []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimSuffix(fields[1], ":")
		// Strip any VLAN/parent suffix like "vmbr0@eno1".
		if i := strings.IndexByte(name, '@'); i >= 0 {
			name = name[:i]
		}
		if name != "" {
			bridges = append(bridges, name)
		}
	}
	return bridges
}

// parseInterfaceAddr extracts the first IPv4 address from ip -4 -o addr
// output, without the prefix length. Returns "" when no address is
// assigned yet.
func parseInterfaceAddr(out string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		for i, f := range fields {
			if f == "inet" && i+1 < len(fields) {
				addr := fields[i+1]
				if j := strings.IndexByte(addr, '/'); j >= 0 {
					addr = addr[:j]
				}
				return addr
			}
		}
	}
	return ""
}
