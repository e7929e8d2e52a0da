// Package netutil provides small helpers for validating and manipulating
// network addresses used in container provisioning.
package netutil

import (
	"fmt"
	"net"
	"strings"
)

// ValidateCIDR checks that s is an IPv4 address in CIDR notation
// (e.g. "192.168.1.50/24").
func ValidateCIDR(s string) error {
	ip, _, err := net.ParseCIDR(s)
	if err != nil {
		return fmt.Errorf("invalid CIDR %q: %w", s, err)
	}
	if ip.To4() == nil {
		return fmt.Errorf("invalid CIDR %q: not an IPv4 address", s)
	}
	return nil
}

// ValidateIPv4 checks that s is a plain IPv4 address.
func ValidateIPv4(s string) error {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("invalid IPv4 address %q", s)
	}
	return nil
}

// StripPrefix returns the address part of an IPv4 CIDR, without the prefix
// length. A bare address is returned unchanged.
func StripPrefix(cidr string) string {
	if i := strings.IndexByte(cidr, '/'); i >= 0 {
		return cidr[:i]
	}
	return cidr
}

// GatewayInSubnet reports whether gateway lies inside the subnet described
// by cidr. Both must be IPv4.
func GatewayInSubnet(cidr, gateway string) (bool, error) {
	_, subnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return false, fmt.Errorf("invalid CIDR %q: %w", cidr, err)
	}
	gw := net.ParseIP(gateway)
	if gw == nil || gw.To4() == nil {
		return false, fmt.Errorf("invalid gateway %q", gateway)
	}
	return subnet.Contains(gw), nil
}
