package fusion

import (
	"fmt"
	"net"
	"regexp"
	"strconv"

	"github.com/fabricware/fusiongen/pkg/errors"
)

var (
	// vrfNamePattern restricts VRF names to the characters IOS accepts
	vrfNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// rdPattern matches both accepted Route Distinguisher forms; the left
	// side is disambiguated as ASN vs IPv4 after the match
	rdASNPattern = regexp.MustCompile(`^(\d+):(\d+)$`)
	rdIPPattern  = regexp.MustCompile(`^([\d.]+):(\d+)$`)

	// ospfInterfacePattern matches Cisco interface names, full or
	// abbreviated, followed by a numeric/slash/dot identifier
	ospfInterfacePattern = regexp.MustCompile(
		`^(GigabitEthernet|TenGigabitEthernet|TwentyFiveGigE|FortyGigE|HundredGigE|FastEthernet|Ethernet|Port-channel|Loopback|Gi|Te|Twe|Fo|Hu|Fa|Eth|Po|Lo)[\d/.]+$`)
)

// ValidateVRFName checks a VRF name: required, at most 32 characters,
// letters/digits/underscores/hyphens only.
func ValidateVRFName(name string) error {
	if name == "" {
		return errors.ValidationError("VRF name", "VRF name is required")
	}
	if len(name) > 32 {
		return errors.ValidationError("VRF name", "VRF name must be 32 characters or less")
	}
	if !vrfNamePattern.MatchString(name) {
		return errors.ValidationError("VRF name",
			"VRF name must contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidateRouteDistinguisher checks a Route Distinguisher. Accepted forms are
// ASN:NN (ASN up to 4294967295, NN up to 65535) and IPv4:NN (NN up to 65535).
func ValidateRouteDistinguisher(rd string) error {
	if rd == "" {
		return errors.ValidationError("Route Distinguisher", "Route Distinguisher is required")
	}

	if m := rdASNPattern.FindStringSubmatch(rd); m != nil {
		asn, asnErr := strconv.ParseUint(m[1], 10, 64)
		nn, nnErr := strconv.ParseUint(m[2], 10, 64)
		if asnErr == nil && nnErr == nil && asn <= 4294967295 && nn <= 65535 {
			return nil
		}
	}

	if m := rdIPPattern.FindStringSubmatch(rd); m != nil {
		ip := net.ParseIP(m[1])
		nn, nnErr := strconv.ParseUint(m[2], 10, 64)
		if ip != nil && ip.To4() != nil && nnErr == nil && nn <= 65535 {
			return nil
		}
	}

	return errors.ValidationError("Route Distinguisher",
		"must be in format 'ASN:NN' (e.g., 65000:100) or 'IP:NN' (e.g., 10.0.0.1:100)")
}

// ValidateIPAddress checks that s is a syntactically valid IPv4 or IPv6
// address literal.
func ValidateIPAddress(s string) error {
	if net.ParseIP(s) == nil {
		return errors.ValidationError("IP address", fmt.Sprintf("invalid IP address: %s", s))
	}
	return nil
}

// ValidateInterfaceName checks that name is a recognized Cisco interface
// name, full or abbreviated, with a numeric/slash/dot identifier.
func ValidateInterfaceName(name string) error {
	if !ospfInterfacePattern.MatchString(name) {
		return errors.ValidationError("interface name",
			fmt.Sprintf("unrecognized interface name: %s", name))
	}
	return nil
}
