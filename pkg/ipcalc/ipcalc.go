// Package ipcalc provides the IPv4 arithmetic used when deriving fusion
// router addressing from border node /30 handoff links.
package ipcalc

import (
	"fmt"
	"net"
)

// PeerOf returns the other usable host of the /30 subnet containing addr.
// The /30 is inferred from the address itself. A /30 has exactly two usable
// hosts; if addr is the network or broadcast address, or is not a valid IPv4
// address, PeerOf reports ok=false. It never returns an error.
func PeerOf(addr string) (peer string, ok bool) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return "", false
	}
	v4 := ip.To4()
	if v4 == nil {
		return "", false
	}

	// Network address of the enclosing /30, then its two usable hosts.
	network := make(net.IP, 4)
	copy(network, v4)
	network[3] &= 0xfc

	first := make(net.IP, 4)
	copy(first, network)
	first[3] |= 0x01

	second := make(net.IP, 4)
	copy(second, network)
	second[3] |= 0x02

	switch {
	case v4.Equal(first):
		return second.String(), true
	case v4.Equal(second):
		return first.String(), true
	default:
		return "", false
	}
}

// ValidNetmask reports whether mask is a syntactically valid dotted-decimal
// IPv4 netmask (contiguous ones followed by contiguous zeros).
func ValidNetmask(mask string) bool {
	v4 := parseV4(mask)
	if v4 == nil {
		return false
	}
	m := net.IPv4Mask(v4[0], v4[1], v4[2], v4[3])
	_, bits := m.Size() // Size reports (0, 0) for non-contiguous masks
	return bits == 32
}

// WildcardMask returns the dotted-decimal bitwise complement of mask
// (255 minus each octet), as used in Cisco OSPF network statements.
func WildcardMask(mask string) (string, error) {
	v4 := parseV4(mask)
	if v4 == nil {
		return "", fmt.Errorf("invalid netmask: %s", mask)
	}
	return fmt.Sprintf("%d.%d.%d.%d", 255-v4[0], 255-v4[1], 255-v4[2], 255-v4[3]), nil
}

// NetworkAddress returns the network address of ip under mask, in
// dotted-decimal form.
func NetworkAddress(ip, mask string) (string, error) {
	addr := parseV4(ip)
	if addr == nil {
		return "", fmt.Errorf("invalid IPv4 address: %s", ip)
	}
	m := parseV4(mask)
	if m == nil {
		return "", fmt.Errorf("invalid netmask: %s", mask)
	}
	network := addr.Mask(net.IPv4Mask(m[0], m[1], m[2], m[3]))
	return network.String(), nil
}

// parseV4 parses s as an IPv4 address and returns its 4-byte form, or nil.
func parseV4(s string) net.IP {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}
	return ip.To4()
}
