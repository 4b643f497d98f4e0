// Package ioscfg renders fusion router synthesis models into literal Cisco
// IOS configuration text.
package ioscfg

import (
	"fmt"
	"strings"
	"time"

	"github.com/fabricware/fusiongen/pkg/fusion"
)

// Generate renders the complete configuration for one fusion router model.
// It returns the configuration as a string and any error encountered.
func Generate(m *fusion.Model) (string, error) {
	return GenerateAt(m, time.Now())
}

// GenerateAt is Generate with an explicit timestamp for the header comment,
// so output is reproducible in tests.
func GenerateAt(m *fusion.Model, now time.Time) (string, error) {
	if m == nil {
		return "", nil
	}

	if m.NoHandoffs {
		return fmt.Sprintf("! No handoffs configured for %s\n", m.Hostname), nil
	}

	if m.Hostname == "" {
		return "", NewInvalidModelError("fusion router hostname is required")
	}
	if m.ASNumber == "" {
		return "", NewInvalidModelError("fusion router AS number is required")
	}

	var b strings.Builder

	b.WriteString("!\n")
	b.WriteString(fmt.Sprintf("! Fusion router configuration: %s\n", m.Hostname))
	b.WriteString(fmt.Sprintf("! Generated: %s\n", now.Format("2006-01-02 15:04:05")))
	b.WriteString("!\n")
	b.WriteString(fmt.Sprintf("hostname %s\n", m.Hostname))
	b.WriteString("!\n")

	writeVRFDefinitions(&b, m.VRFs)
	writeVLANs(&b, m.VLANs)
	writeTrunkPorts(&b, m.TrunkPorts)

	if err := writeInterfaces(&b, m.Interfaces); err != nil {
		return "", err
	}

	if m.OSPF != nil {
		writeOSPF(&b, m)
	}

	if err := writeBGP(&b, m); err != nil {
		return "", err
	}

	b.WriteString("end\n")

	return b.String(), nil
}

// writeVRFDefinitions renders 'vrf definition' blocks with route targets.
func writeVRFDefinitions(b *strings.Builder, vrfs []*fusion.VRFConfig) {
	for _, vrf := range vrfs {
		b.WriteString(fmt.Sprintf("vrf definition %s\n", vrf.Name))
		b.WriteString(fmt.Sprintf(" rd %s\n", vrf.RD))
		b.WriteString(" !\n")
		b.WriteString(" address-family ipv4\n")
		if vrf.RTExportEnabled {
			b.WriteString(fmt.Sprintf("  route-target export %s\n", vrf.RTExportValue))
		}
		if vrf.RTImportEnabled {
			b.WriteString(fmt.Sprintf("  route-target import %s\n", vrf.RTImportValue))
		}
		b.WriteString(" exit-address-family\n")
		b.WriteString("!\n")
	}
}

// writeVLANs renders the L2 VLAN definitions needed in SVI mode.
func writeVLANs(b *strings.Builder, vlans []fusion.VLANDefinition) {
	for _, v := range vlans {
		b.WriteString(fmt.Sprintf("vlan %s\n", v.ID))
		b.WriteString(fmt.Sprintf(" name %s\n", v.Name))
		b.WriteString("!\n")
	}
}

// writeTrunkPorts renders the physical trunk ports carrying handoff VLANs.
func writeTrunkPorts(b *strings.Builder, ports []fusion.TrunkPort) {
	for _, p := range ports {
		b.WriteString(fmt.Sprintf("interface %s\n", p.Name))
		if p.Description != "" {
			b.WriteString(fmt.Sprintf(" description %s\n", p.Description))
		}
		b.WriteString(" switchport mode trunk\n")
		b.WriteString(fmt.Sprintf(" switchport trunk allowed vlan %s\n", p.AllowedVLANs))
		b.WriteString(" no shutdown\n")
		b.WriteString("!\n")
	}
}

// writeInterfaces renders the fusion-side handoff interfaces, one block per
// synthesized interface variant.
func writeInterfaces(b *strings.Builder, interfaces []fusion.Interface) error {
	for _, iface := range interfaces {
		switch v := iface.(type) {
		case fusion.RoutedInterface:
			b.WriteString(fmt.Sprintf("interface %s\n", v.Name))
			writeL3Body(b, v.Description, v.VRF, v.IPAddress, v.SubnetMask, v.BFD)

		case fusion.SVIInterface:
			b.WriteString(fmt.Sprintf("interface Vlan%s\n", v.VLANID))
			writeL3Body(b, v.Description, v.VRF, v.IPAddress, v.SubnetMask, v.BFD)

		case fusion.Subinterface:
			b.WriteString(fmt.Sprintf("interface %s.%s\n", v.Parent, v.SubifID))
			if v.Description != "" {
				b.WriteString(fmt.Sprintf(" description %s\n", v.Description))
			}
			b.WriteString(fmt.Sprintf(" encapsulation %s\n", v.Encapsulation))
			writeL3Address(b, v.VRF, v.IPAddress, v.SubnetMask, v.BFD)

		default:
			return NewInvalidModelError(fmt.Sprintf("unknown interface kind %T", iface))
		}
		b.WriteString("!\n")
	}
	return nil
}

// writeL3Body renders description plus the L3 address body.
func writeL3Body(b *strings.Builder, description, vrf, ip, mask string, bfd fusion.BFDParams) {
	if description != "" {
		b.WriteString(fmt.Sprintf(" description %s\n", description))
	}
	writeL3Address(b, vrf, ip, mask, bfd)
}

// writeL3Address renders vrf forwarding, ip address, and BFD lines. The vrf
// statement must precede the address: IOS clears interface addresses when the
// VRF membership changes.
func writeL3Address(b *strings.Builder, vrf, ip, mask string, bfd fusion.BFDParams) {
	if vrf != "" {
		b.WriteString(fmt.Sprintf(" vrf forwarding %s\n", vrf))
	}
	b.WriteString(fmt.Sprintf(" ip address %s %s\n", ip, mask))
	if bfd.Enabled && bfd.Interval != "" {
		b.WriteString(fmt.Sprintf(" bfd interval %s min_rx %s multiplier %s\n",
			bfd.Interval, bfd.MinRx, bfd.Multiplier))
	}
	b.WriteString(" no shutdown\n")
}
