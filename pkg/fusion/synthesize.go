package fusion

import (
	"fmt"

	"github.com/fabricware/fusiongen/pkg/bordernode"
	"github.com/fabricware/fusiongen/pkg/ipcalc"
)

// Synthesize assembles the configuration model for one fusion router from
// parsed border node facts and user topology intent.
//
// Handoffs whose border node, VLAN interface, or /30 peer address cannot be
// resolved are skipped silently: partial topology data must not block
// generation for the handoffs that are resolvable. Validation failures in the
// VRF specs abort synthesis for this router. Output ordering follows the
// input handoff order; VRF neighbor buckets keep first-seen name order.
func Synthesize(
	params RouterParams,
	borderNodes []*bordernode.Model,
	handoffs []Handoff,
	vrfSpecs []VRFSpec,
	ibgp *IBGPConfig,
	ospf *OSPFConfig,
) (*Model, error) {
	selected := make([]Handoff, 0, len(handoffs))
	for _, h := range handoffs {
		if h.FusionRouterID == params.RouterID {
			selected = append(selected, h)
		}
	}

	// A router with no SDA-side links is valid; it yields a marker model,
	// not an error.
	if len(selected) == 0 {
		return &Model{
			Hostname:    params.Hostname,
			BGPRouterID: params.BGPRouterID,
			ASNumber:    params.ASNumber,
			NoHandoffs:  true,
		}, nil
	}

	// Mode is uniform per router; the first selected handoff decides.
	mode := selected[0].InterfaceMode

	vrfs := make([]*VRFConfig, 0, len(vrfSpecs))
	for _, spec := range vrfSpecs {
		cfg, err := BuildVRFConfig(spec)
		if err != nil {
			return nil, err
		}
		vrfs = append(vrfs, cfg)
	}

	m := &Model{
		Hostname:      params.Hostname,
		BGPRouterID:   params.BGPRouterID,
		ASNumber:      params.ASNumber,
		InterfaceMode: mode,
		VRFNeighbors:  map[string][]BGPNeighbor{},
		VRFs:          vrfs,
		IBGP:          ibgp,
		OSPF:          ospf,
	}

	nextHopSelf := ibgp != nil && ibgp.Enabled

	for _, h := range selected {
		node := findBorderNode(borderNodes, h.BorderHostname)
		if node == nil {
			continue
		}
		vlan := findVLANInterface(node, h.BorderVLANID)
		if vlan == nil {
			continue
		}
		fusionIP, ok := ipcalc.PeerOf(vlan.IPAddress)
		if !ok {
			continue
		}

		bfd := BFDParams{
			Enabled:    vlan.BFDEnabled,
			Interval:   vlan.BFDInterval,
			MinRx:      vlan.BFDMinRx,
			Multiplier: vlan.BFDMultiplier,
		}

		var iface Interface
		switch mode {
		case ModeRouted:
			iface = RoutedInterface{
				Name:        h.InterfaceName,
				IPAddress:   fusionIP,
				SubnetMask:  vlan.SubnetMask,
				Description: fmt.Sprintf("Handoff to %s VLAN%s", h.BorderHostname, h.BorderVLANID),
				VRF:         h.VRFName,
				BFD:         bfd,
			}

		case ModeSVI:
			m.VLANs = append(m.VLANs, VLANDefinition{
				ID:   h.VLANID,
				Name: fmt.Sprintf("HANDOFF_%s", h.BorderVLANID),
			})

			allowed := h.AllowedVLANs
			if allowed == "" {
				allowed = h.VLANID
			}
			addTrunkPort(m, TrunkPort{
				Name:         h.PhysicalInterface,
				Description:  fmt.Sprintf("Physical link to %s", h.BorderHostname),
				AllowedVLANs: allowed,
			})

			iface = SVIInterface{
				VLANID:      h.VLANID,
				IPAddress:   fusionIP,
				SubnetMask:  vlan.SubnetMask,
				Description: fmt.Sprintf("L3 Handoff to %s VLAN%s", h.BorderHostname, h.BorderVLANID),
				VRF:         h.VRFName,
				BFD:         bfd,
			}

		case ModeSubinterface:
			iface = Subinterface{
				Parent:        h.InterfaceName,
				SubifID:       h.SubifID,
				Encapsulation: fmt.Sprintf("dot1Q %s", h.SubifID),
				IPAddress:     fusionIP,
				SubnetMask:    vlan.SubnetMask,
				Description:   fmt.Sprintf("Subif to %s VLAN%s", h.BorderHostname, h.BorderVLANID),
				VRF:           h.VRFName,
				BFD:           bfd,
			}

		default:
			continue
		}

		m.Interfaces = append(m.Interfaces, iface)

		neighbor := BGPNeighbor{
			IP:              vlan.IPAddress,
			RemoteAS:        node.BGP.ASNumber,
			SourceInterface: iface.SourceInterface(),
			VRF:             h.VRFName,
			NextHopSelf:     nextHopSelf,
		}
		if h.VRFName != "" {
			if _, ok := m.VRFNeighbors[h.VRFName]; !ok {
				m.VRFOrder = append(m.VRFOrder, h.VRFName)
			}
			m.VRFNeighbors[h.VRFName] = append(m.VRFNeighbors[h.VRFName], neighbor)
		} else {
			m.DefaultNeighbors = append(m.DefaultNeighbors, neighbor)
		}
	}

	return m, nil
}

// findBorderNode resolves a border node by exact hostname match.
func findBorderNode(nodes []*bordernode.Model, hostname string) *bordernode.Model {
	for _, n := range nodes {
		if n.Hostname == hostname {
			return n
		}
	}
	return nil
}

// findVLANInterface resolves a VLAN interface by string-compared VLAN id.
func findVLANInterface(node *bordernode.Model, vlanID string) *bordernode.VLANInterface {
	for i := range node.VLANInterfaces {
		if node.VLANInterfaces[i].VLAN == vlanID {
			return &node.VLANInterfaces[i]
		}
	}
	return nil
}

// addTrunkPort appends a trunk record unless one with the same name exists;
// the first occurrence's description and allowed-VLAN list win.
func addTrunkPort(m *Model, port TrunkPort) {
	for _, p := range m.TrunkPorts {
		if p.Name == port.Name {
			return
		}
	}
	m.TrunkPorts = append(m.TrunkPorts, port)
}
