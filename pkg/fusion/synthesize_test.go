package fusion

import (
	"testing"

	"github.com/fabricware/fusiongen/pkg/bordernode"
)

func testBorderNodes() []*bordernode.Model {
	return []*bordernode.Model{
		{
			Hostname:    "bn-01",
			Loopback0IP: "10.255.0.11",
			BGP:         bordernode.BGPFacts{ASNumber: "65001"},
			VLANInterfaces: []bordernode.VLANInterface{
				{
					VLAN: "3704", IPAddress: "10.1.1.1", SubnetMask: "255.255.255.252",
					VRF: "CAMPUS", BFDEnabled: true,
					BFDInterval: "250", BFDMinRx: "250", BFDMultiplier: "3",
				},
				{
					VLAN: "3705", IPAddress: "10.1.1.5", SubnetMask: "255.255.255.252",
					VRF: "GUEST",
				},
			},
		},
		{
			Hostname:    "bn-02",
			Loopback0IP: "10.255.0.12",
			BGP:         bordernode.BGPFacts{ASNumber: "65002"},
			VLANInterfaces: []bordernode.VLANInterface{
				{VLAN: "3708", IPAddress: "10.1.2.1", SubnetMask: "255.255.255.252", VRF: "CAMPUS"},
			},
		},
	}
}

func routerOne() RouterParams {
	return RouterParams{RouterID: 1, Hostname: "fusion-01", BGPRouterID: "10.255.1.1", ASNumber: "65100"}
}

func TestSynthesizeRoutedMode(t *testing.T) {
	handoffs := []Handoff{
		{
			BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "TenGigabitEthernet1/0/1",
			VRFName: "CAMPUS",
		},
		{
			BorderHostname: "bn-01", BorderVLANID: "3705", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "TenGigabitEthernet1/0/2",
		},
	}

	m, err := Synthesize(routerOne(), testBorderNodes(), handoffs, nil, nil, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if m.NoHandoffs {
		t.Fatal("NoHandoffs set with handoffs present")
	}
	if m.InterfaceMode != ModeRouted {
		t.Errorf("InterfaceMode = %s", m.InterfaceMode)
	}
	if len(m.Interfaces) != 2 {
		t.Fatalf("interfaces = %d, want 2", len(m.Interfaces))
	}

	// The fusion side gets the /30 complement of the border address.
	ri, ok := m.Interfaces[0].(RoutedInterface)
	if !ok {
		t.Fatalf("interface 0 kind = %T", m.Interfaces[0])
	}
	if ri.IPAddress != "10.1.1.2" {
		t.Errorf("fusion address = %s, want 10.1.1.2", ri.IPAddress)
	}
	if ri.VRF != "CAMPUS" {
		t.Errorf("VRF = %s", ri.VRF)
	}
	if !ri.BFD.Enabled || ri.BFD.Interval != "250" {
		t.Errorf("BFD not mirrored: %+v", ri.BFD)
	}

	// First handoff has a VRF, second lands in the default table.
	if len(m.VRFOrder) != 1 || m.VRFOrder[0] != "CAMPUS" {
		t.Errorf("VRFOrder = %v", m.VRFOrder)
	}
	campus := m.VRFNeighbors["CAMPUS"]
	if len(campus) != 1 || campus[0].IP != "10.1.1.1" || campus[0].RemoteAS != "65001" {
		t.Errorf("CAMPUS neighbors = %+v", campus)
	}
	if campus[0].SourceInterface != "TenGigabitEthernet1/0/1" {
		t.Errorf("SourceInterface = %s", campus[0].SourceInterface)
	}
	if len(m.DefaultNeighbors) != 1 || m.DefaultNeighbors[0].IP != "10.1.1.5" {
		t.Errorf("DefaultNeighbors = %+v", m.DefaultNeighbors)
	}
	if m.DefaultNeighbors[0].NextHopSelf {
		t.Error("next-hop-self set without iBGP")
	}
}

func TestSynthesizeSVIMode(t *testing.T) {
	handoffs := []Handoff{
		{
			BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeSVI, VLANID: "704",
			PhysicalInterface: "GigabitEthernet1/0/1", VRFName: "CAMPUS",
		},
		{
			BorderHostname: "bn-01", BorderVLANID: "3705", FusionRouterID: 1,
			InterfaceMode: ModeSVI, VLANID: "705",
			PhysicalInterface: "GigabitEthernet1/0/1", VRFName: "GUEST",
			AllowedVLANs: "704,705",
		},
	}

	m, err := Synthesize(routerOne(), testBorderNodes(), handoffs, nil, nil, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if len(m.VLANs) != 2 {
		t.Fatalf("VLANs = %+v", m.VLANs)
	}
	if m.VLANs[0].ID != "704" || m.VLANs[0].Name != "HANDOFF_3704" {
		t.Errorf("VLANs[0] = %+v", m.VLANs[0])
	}

	// Both handoffs share the physical port; the first one wins the trunk
	// definition and its allowed-VLAN list.
	if len(m.TrunkPorts) != 1 {
		t.Fatalf("TrunkPorts = %+v", m.TrunkPorts)
	}
	if m.TrunkPorts[0].AllowedVLANs != "704" {
		t.Errorf("AllowedVLANs = %s, want 704", m.TrunkPorts[0].AllowedVLANs)
	}

	svi, ok := m.Interfaces[0].(SVIInterface)
	if !ok {
		t.Fatalf("interface 0 kind = %T", m.Interfaces[0])
	}
	if svi.SourceInterface() != "Vlan704" {
		t.Errorf("SourceInterface = %s", svi.SourceInterface())
	}
	if m.VRFNeighbors["CAMPUS"][0].SourceInterface != "Vlan704" {
		t.Errorf("neighbor SourceInterface = %s", m.VRFNeighbors["CAMPUS"][0].SourceInterface)
	}
}

func TestSynthesizeSubinterfaceMode(t *testing.T) {
	handoffs := []Handoff{
		{
			BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeSubinterface,
			InterfaceName: "TenGigabitEthernet1/0/1", SubifID: "3704",
			VRFName: "CAMPUS",
		},
	}

	m, err := Synthesize(routerOne(), testBorderNodes(), handoffs, nil, nil, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	sub, ok := m.Interfaces[0].(Subinterface)
	if !ok {
		t.Fatalf("interface 0 kind = %T", m.Interfaces[0])
	}
	if sub.SourceInterface() != "TenGigabitEthernet1/0/1.3704" {
		t.Errorf("SourceInterface = %s", sub.SourceInterface())
	}
	if sub.Encapsulation != "dot1Q 3704" {
		t.Errorf("Encapsulation = %s", sub.Encapsulation)
	}
}

func TestSynthesizeNoHandoffsMarker(t *testing.T) {
	handoffs := []Handoff{
		{BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 2, InterfaceMode: ModeRouted},
	}

	m, err := Synthesize(routerOne(), testBorderNodes(), handoffs, nil, nil, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !m.NoHandoffs {
		t.Error("NoHandoffs not set for a router with no assigned handoffs")
	}
	if m.Hostname != "fusion-01" {
		t.Errorf("Hostname = %s", m.Hostname)
	}
}

func TestSynthesizeSkipsUnresolvable(t *testing.T) {
	handoffs := []Handoff{
		// Unknown border node.
		{BorderHostname: "bn-99", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/1"},
		// Known border node, unknown VLAN.
		{BorderHostname: "bn-01", BorderVLANID: "9999", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/2"},
		// Resolvable.
		{BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/3", VRFName: "CAMPUS"},
	}

	m, err := Synthesize(routerOne(), testBorderNodes(), handoffs, nil, nil, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if len(m.Interfaces) != 1 {
		t.Errorf("interfaces = %d, want only the resolvable handoff", len(m.Interfaces))
	}
	if m.NoHandoffs {
		t.Error("NoHandoffs must not be set when any handoff was selected")
	}
}

func TestSynthesizeNextHopSelfWithIBGP(t *testing.T) {
	handoffs := []Handoff{
		{BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/1", VRFName: "CAMPUS"},
	}
	ibgp := &IBGPConfig{Enabled: true, LocalAS: "65100", PeerIP: "10.255.1.2", UpdateSource: "Loopback0"}

	m, err := Synthesize(routerOne(), testBorderNodes(), handoffs, nil, ibgp, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !m.VRFNeighbors["CAMPUS"][0].NextHopSelf {
		t.Error("next-hop-self not set with iBGP enabled")
	}
	if m.IBGP != ibgp {
		t.Error("iBGP config not carried on the model")
	}
}

func TestSynthesizeInvalidVRFSpecFails(t *testing.T) {
	handoffs := []Handoff{
		{BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/1"},
	}
	vrfs := []VRFSpec{{Name: "bad/name", RD: "65000:100"}}

	if _, err := Synthesize(routerOne(), testBorderNodes(), handoffs, vrfs, nil, nil); err == nil {
		t.Fatal("invalid VRF spec should abort synthesis")
	}
}

func TestSynthesizePreservesHandoffOrder(t *testing.T) {
	handoffs := []Handoff{
		{BorderHostname: "bn-01", BorderVLANID: "3705", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/1"},
		{BorderHostname: "bn-02", BorderVLANID: "3708", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/2"},
		{BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/3"},
	}

	m, err := Synthesize(routerOne(), testBorderNodes(), handoffs, nil, nil, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	wantNames := []string{"Te1/0/1", "Te1/0/2", "Te1/0/3"}
	if len(m.Interfaces) != len(wantNames) {
		t.Fatalf("interfaces = %d, want %d", len(m.Interfaces), len(wantNames))
	}
	for i, want := range wantNames {
		if got := m.Interfaces[i].SourceInterface(); got != want {
			t.Errorf("interface %d = %s, want %s", i, got, want)
		}
	}
	wantIPs := []string{"10.1.1.5", "10.1.2.1", "10.1.1.1"}
	if len(m.DefaultNeighbors) != len(wantIPs) {
		t.Fatalf("neighbors = %d, want %d", len(m.DefaultNeighbors), len(wantIPs))
	}
	for i, want := range wantIPs {
		if m.DefaultNeighbors[i].IP != want {
			t.Errorf("neighbor %d = %s, want %s", i, m.DefaultNeighbors[i].IP, want)
		}
	}
}

func TestParseAndSynthesizeEndToEnd(t *testing.T) {
	borderText := `hostname bn-01
!
interface Vlan3704
 ip address 10.1.1.1 255.255.255.252
 bfd interval 250 min_rx 250 multiplier 3
!
router bgp 65001
 !
 address-family ipv4
  neighbor 10.1.1.2 remote-as 65001
 exit-address-family
!
`
	node, err := bordernode.Parse(borderText)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(node.VLANInterfaces) != 1 {
		t.Fatalf("VLANInterfaces = %+v", node.VLANInterfaces)
	}
	v := node.VLANInterfaces[0]
	if v.VLAN != "3704" || v.IPAddress != "10.1.1.1" || !v.BFDEnabled {
		t.Fatalf("VLAN interface = %+v", v)
	}
	if len(node.BGP.DefaultVRFNeighbors) != 1 ||
		node.BGP.DefaultVRFNeighbors[0].IP != "10.1.1.2" ||
		node.BGP.DefaultVRFNeighbors[0].RemoteAS != "65001" {
		t.Fatalf("default neighbors = %+v", node.BGP.DefaultVRFNeighbors)
	}

	handoffs := []Handoff{
		{
			BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "GigabitEthernet0/0/1",
		},
	}
	m, err := Synthesize(routerOne(), []*bordernode.Model{node}, handoffs, nil, nil, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	ri, ok := m.Interfaces[0].(RoutedInterface)
	if !ok {
		t.Fatalf("interface kind = %T", m.Interfaces[0])
	}
	if ri.Name != "GigabitEthernet0/0/1" || ri.IPAddress != "10.1.1.2" {
		t.Errorf("routed interface = %+v", ri)
	}
	n := m.DefaultNeighbors[0]
	if n.IP != "10.1.1.1" || n.RemoteAS != "65001" || n.SourceInterface != "GigabitEthernet0/0/1" {
		t.Errorf("neighbor = %+v", n)
	}
}

func TestSynthesizeVRFOrderFirstSeen(t *testing.T) {
	handoffs := []Handoff{
		{BorderHostname: "bn-01", BorderVLANID: "3705", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/1", VRFName: "GUEST"},
		{BorderHostname: "bn-01", BorderVLANID: "3704", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/2", VRFName: "CAMPUS"},
		{BorderHostname: "bn-02", BorderVLANID: "3708", FusionRouterID: 1,
			InterfaceMode: ModeRouted, InterfaceName: "Te1/0/3", VRFName: "GUEST"},
	}

	m, err := Synthesize(routerOne(), testBorderNodes(), handoffs, nil, nil, nil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if len(m.VRFOrder) != 2 || m.VRFOrder[0] != "GUEST" || m.VRFOrder[1] != "CAMPUS" {
		t.Errorf("VRFOrder = %v, want [GUEST CAMPUS]", m.VRFOrder)
	}
	if len(m.VRFNeighbors["GUEST"]) != 2 {
		t.Errorf("GUEST neighbors = %+v", m.VRFNeighbors["GUEST"])
	}
	// bn-02's AS differs from bn-01's; each neighbor carries its own.
	if m.VRFNeighbors["GUEST"][1].RemoteAS != "65002" {
		t.Errorf("second GUEST neighbor RemoteAS = %s", m.VRFNeighbors["GUEST"][1].RemoteAS)
	}
}
