// Package fusion derives fusion router configuration models from parsed
// border node facts and user-supplied topology intent.
package fusion

// InterfaceMode selects how the fusion router terminates its handoff links.
// All handoffs assigned to one router must share the same mode.
type InterfaceMode string

const (
	// ModeRouted uses a dedicated L3 physical interface per handoff.
	ModeRouted InterfaceMode = "routed"
	// ModeSVI uses a VLAN interface behind a trunk port per handoff.
	ModeSVI InterfaceMode = "svi"
	// ModeSubinterface uses a dot1Q sub-interface off a parent port.
	ModeSubinterface InterfaceMode = "subinterface"
)

// RouterParams identifies one fusion router to generate configuration for.
type RouterParams struct {
	// RouterID is 1 or 2.
	RouterID int `json:"router_id" yaml:"router_id"`

	Hostname string `json:"hostname" yaml:"hostname"`

	// BGPRouterID is the address used as BGP router-id, conventionally the
	// router's Loopback0 address.
	BGPRouterID string `json:"bgp_router_id" yaml:"bgp_router_id"`

	ASNumber string `json:"as_number" yaml:"as_number"`
}

// Handoff links one border node /30 VLAN interface to one fusion router.
// Which fields are required depends on InterfaceMode: routed needs
// InterfaceName; svi needs VLANID and PhysicalInterface; subinterface needs
// InterfaceName (the parent) and SubifID.
type Handoff struct {
	BorderHostname string `json:"border_hostname" yaml:"border_hostname"`
	BorderVLANID   string `json:"border_vlan_id" yaml:"border_vlan_id"`
	FusionRouterID int    `json:"fusion_router_id" yaml:"fusion_router_id"`

	InterfaceMode InterfaceMode `json:"interface_mode" yaml:"interface_mode"`

	InterfaceName     string `json:"interface_name,omitempty" yaml:"interface_name"`
	VLANID            string `json:"vlan_id,omitempty" yaml:"vlan_id"`
	SubifID           string `json:"subif_id,omitempty" yaml:"subif_id"`
	PhysicalInterface string `json:"physical_interface,omitempty" yaml:"physical_interface"`
	AllowedVLANs      string `json:"allowed_vlans,omitempty" yaml:"allowed_vlans"`

	// VRFName is the VRF the handoff lands in on the fusion router.
	// Empty means the default (global) routing table.
	VRFName string `json:"vrf_name,omitempty" yaml:"vrf_name"`
}

// BFDParams carries the BFD timers mirrored from the border node side.
type BFDParams struct {
	Enabled    bool
	Interval   string
	MinRx      string
	Multiplier string
}

// Interface is the closed set of fusion-side interface definitions the
// synthesizer can emit. Each mode produces exactly one concrete kind.
type Interface interface {
	// SourceInterface is the identity used as the BGP neighbor
	// update-source and as the interface header in rendered output.
	SourceInterface() string

	fusionInterface()
}

// RoutedInterface is a dedicated L3 physical interface (routed mode).
type RoutedInterface struct {
	Name        string
	IPAddress   string
	SubnetMask  string
	Description string
	VRF         string
	BFD         BFDParams
}

func (i RoutedInterface) SourceInterface() string { return i.Name }
func (RoutedInterface) fusionInterface()          {}

// SVIInterface is a VLAN interface behind a trunk (svi mode).
type SVIInterface struct {
	VLANID      string
	IPAddress   string
	SubnetMask  string
	Description string
	VRF         string
	BFD         BFDParams
}

func (i SVIInterface) SourceInterface() string { return "Vlan" + i.VLANID }
func (SVIInterface) fusionInterface()          {}

// Subinterface is a dot1Q sub-interface off a parent port (subinterface mode).
type Subinterface struct {
	Parent        string
	SubifID       string
	Encapsulation string
	IPAddress     string
	SubnetMask    string
	Description   string
	VRF           string
	BFD           BFDParams
}

func (i Subinterface) SourceInterface() string { return i.Parent + "." + i.SubifID }
func (Subinterface) fusionInterface()          {}

// VLANDefinition is an L2 VLAN the fusion router must define (svi mode).
type VLANDefinition struct {
	ID   string
	Name string
}

// TrunkPort is a physical interface carrying handoff VLANs (svi mode).
type TrunkPort struct {
	Name         string
	Description  string
	AllowedVLANs string
}

// BGPNeighbor is one eBGP session towards a border node.
type BGPNeighbor struct {
	// IP is the border node's VLAN interface address.
	IP string
	// RemoteAS is the border node's discovered AS number.
	RemoteAS string
	// SourceInterface is the fusion-side interface the session is bound to.
	SourceInterface string
	// VRF is the enclosing VRF, or empty for the default table.
	VRF string
	// NextHopSelf is set when an iBGP session between the fusion routers is
	// enabled, so eBGP-learned routes stay reachable across it.
	NextHopSelf bool
}

// Model is the synthesis output for one fusion router. It is assembled once
// by Synthesize and consumed read-only by the renderer.
type Model struct {
	Hostname    string
	BGPRouterID string
	ASNumber    string

	InterfaceMode InterfaceMode

	// NoHandoffs marks a router with no SDA-side links. A marker model has
	// no other content; rendering it produces a single comment line.
	NoHandoffs bool

	Interfaces []Interface
	VLANs      []VLANDefinition
	TrunkPorts []TrunkPort

	DefaultNeighbors []BGPNeighbor
	// VRFNeighbors buckets neighbors by VRF name; VRFOrder records the
	// first-seen order of those names for deterministic rendering.
	VRFNeighbors map[string][]BGPNeighbor
	VRFOrder     []string

	VRFs []*VRFConfig
	IBGP *IBGPConfig
	OSPF *OSPFConfig
}
