package ioscfg

import (
	"fmt"
	"strings"

	"github.com/fabricware/fusiongen/pkg/fusion"
)

// writeOSPF renders the underlay link between the two fusion routers: the
// interface carrying this router's endpoint and the 'router ospf' process
// with the shared network statement.
func writeOSPF(b *strings.Builder, m *fusion.Model) {
	ospf := m.OSPF

	b.WriteString(fmt.Sprintf("interface %s\n", underlayInterfaceName(ospf)))
	b.WriteString(" description OSPF underlay to peer fusion router\n")
	if ospf.InterfaceMode == fusion.ModeSubinterface {
		b.WriteString(fmt.Sprintf(" encapsulation dot1Q %d\n", ospf.VLANID))
	}
	b.WriteString(fmt.Sprintf(" ip address %s %s\n", ospf.IPAddress, ospf.SubnetMask))
	if ospf.Authentication == "md5" {
		b.WriteString(" ip ospf authentication message-digest\n")
		b.WriteString(fmt.Sprintf(" ip ospf message-digest-key %d md5 %s\n", ospf.AuthKeyID, ospf.AuthKey))
	}
	b.WriteString(fmt.Sprintf(" bfd interval %d min_rx %d multiplier %d\n",
		ospf.BFDInterval, ospf.BFDMinRx, ospf.BFDMultiplier))
	b.WriteString(" no shutdown\n")
	b.WriteString("!\n")

	b.WriteString(fmt.Sprintf("router ospf %d\n", ospf.ProcessID))
	if m.BGPRouterID != "" {
		b.WriteString(fmt.Sprintf(" router-id %s\n", m.BGPRouterID))
	}
	b.WriteString(" bfd all-interfaces\n")
	b.WriteString(fmt.Sprintf(" network %s %s area %d\n",
		ospf.NetworkAddress, ospf.WildcardMask, ospf.Area))
	b.WriteString("!\n")
}

// underlayInterfaceName returns the interface header for the OSPF endpoint:
// the VLAN interface in svi mode, a dot1Q sub-interface in subinterface mode,
// the port itself otherwise.
func underlayInterfaceName(ospf *fusion.OSPFConfig) string {
	switch ospf.InterfaceMode {
	case fusion.ModeSVI:
		return fmt.Sprintf("Vlan%d", ospf.VLANID)
	case fusion.ModeSubinterface:
		return fmt.Sprintf("%s.%d", ospf.InterfaceName, ospf.VLANID)
	default:
		return ospf.InterfaceName
	}
}
