package ioscfg

import (
	"fmt"
	"strings"

	"github.com/fabricware/fusiongen/pkg/fusion"
)

// writeBGP renders the 'router bgp' block: router-id, the iBGP session
// towards the other fusion router, the default-VRF eBGP neighbors, and one
// ipv4 address-family per handoff VRF. Neighbor order follows the model,
// which preserves handoff input order.
func writeBGP(b *strings.Builder, m *fusion.Model) error {
	b.WriteString(fmt.Sprintf("router bgp %s\n", m.ASNumber))
	if m.BGPRouterID != "" {
		b.WriteString(fmt.Sprintf(" bgp router-id %s\n", m.BGPRouterID))
	}
	b.WriteString(" bgp log-neighbor-changes\n")

	ibgp := m.IBGP
	if ibgp != nil && ibgp.Enabled {
		b.WriteString(fmt.Sprintf(" neighbor %s remote-as %s\n", ibgp.PeerIP, ibgp.LocalAS))
		if ibgp.PeerHostname != "" {
			b.WriteString(fmt.Sprintf(" neighbor %s description iBGP to %s\n", ibgp.PeerIP, ibgp.PeerHostname))
		}
		b.WriteString(fmt.Sprintf(" neighbor %s update-source %s\n", ibgp.PeerIP, ibgp.UpdateSource))
	}

	for _, n := range m.DefaultNeighbors {
		if err := validateNeighbor(n); err != nil {
			return err
		}
		b.WriteString(fmt.Sprintf(" neighbor %s remote-as %s\n", n.IP, n.RemoteAS))
		b.WriteString(fmt.Sprintf(" neighbor %s update-source %s\n", n.IP, n.SourceInterface))
		b.WriteString(fmt.Sprintf(" neighbor %s fall-over bfd\n", n.IP))
	}

	b.WriteString(" !\n")
	b.WriteString(" address-family ipv4\n")
	if ibgp != nil && ibgp.Enabled {
		b.WriteString(fmt.Sprintf("  neighbor %s activate\n", ibgp.PeerIP))
		b.WriteString(fmt.Sprintf("  neighbor %s next-hop-self\n", ibgp.PeerIP))
	}
	for _, n := range m.DefaultNeighbors {
		b.WriteString(fmt.Sprintf("  neighbor %s activate\n", n.IP))
		if n.NextHopSelf {
			b.WriteString(fmt.Sprintf("  neighbor %s next-hop-self\n", n.IP))
		}
	}
	b.WriteString(" exit-address-family\n")

	for _, vrfName := range m.VRFOrder {
		neighbors := m.VRFNeighbors[vrfName]
		b.WriteString(" !\n")
		b.WriteString(fmt.Sprintf(" address-family ipv4 vrf %s\n", vrfName))
		for _, n := range neighbors {
			if err := validateNeighbor(n); err != nil {
				return err
			}
			b.WriteString(fmt.Sprintf("  neighbor %s remote-as %s\n", n.IP, n.RemoteAS))
			b.WriteString(fmt.Sprintf("  neighbor %s update-source %s\n", n.IP, n.SourceInterface))
			b.WriteString(fmt.Sprintf("  neighbor %s fall-over bfd\n", n.IP))
			b.WriteString(fmt.Sprintf("  neighbor %s activate\n", n.IP))
			if n.NextHopSelf {
				b.WriteString(fmt.Sprintf("  neighbor %s next-hop-self\n", n.IP))
			}
		}
		b.WriteString(" exit-address-family\n")
	}

	b.WriteString("!\n")
	return nil
}

// validateNeighbor checks the fields every rendered neighbor line needs.
func validateNeighbor(n fusion.BGPNeighbor) error {
	if n.IP == "" {
		return NewInvalidModelError("BGP neighbor IP is required")
	}
	if n.RemoteAS == "" {
		return NewInvalidModelError(fmt.Sprintf("BGP neighbor %s: remote-as is required", n.IP))
	}
	if n.SourceInterface == "" {
		return NewInvalidModelError(fmt.Sprintf("BGP neighbor %s: update-source interface is required", n.IP))
	}
	return nil
}
