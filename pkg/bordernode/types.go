// Package bordernode parses Cisco IOS running configurations taken from SDA
// fabric border nodes into a structured topology model.
package bordernode

// Model holds everything the generator needs to know about one border node.
// A Model is built once by Parse and never mutated afterwards.
type Model struct {
	// Hostname is the device hostname. Always non-empty for a parsed model.
	Hostname string `json:"hostname"`

	// Loopback0IP is the Loopback0 address, or empty if none was found.
	Loopback0IP string `json:"loopback0_ip,omitempty"`

	// BGP holds the BGP facts discovered in the configuration.
	BGP BGPFacts `json:"bgp"`

	// VLANInterfaces holds the /30 point-to-point SVIs, in configuration order.
	// Interfaces with any other mask are dropped during parsing.
	VLANInterfaces []VLANInterface `json:"vlan_interfaces"`

	// PhysicalInterfaces holds the physical and port-channel interfaces,
	// in configuration order.
	PhysicalInterfaces []PhysicalInterface `json:"physical_interfaces"`
}

// BGPFacts holds the BGP stanza facts of a border node.
type BGPFacts struct {
	// ASNumber is the local AS number as written in the configuration,
	// or empty if no 'router bgp' stanza was found.
	ASNumber string `json:"as_number,omitempty"`

	// DefaultVRFNeighbors are the neighbors of the default (global) VRF.
	DefaultVRFNeighbors []Neighbor `json:"default_vrf_neighbors"`

	// VRFNeighbors maps VRF name to that VRF's neighbors.
	VRFNeighbors map[string][]Neighbor `json:"vrf_neighbors"`
}

// Neighbor is one 'neighbor <ip> remote-as <asn>' statement.
type Neighbor struct {
	IP       string `json:"ip"`
	RemoteAS string `json:"remote_as"`
}

// VLANInterface is one 'interface Vlan<id>' stanza with a /30 address.
type VLANInterface struct {
	VLAN        string `json:"vlan"`
	IPAddress   string `json:"ip_address"`
	SubnetMask  string `json:"subnet_mask"`
	VRF         string `json:"vrf,omitempty"`
	Description string `json:"description,omitempty"`

	// BFD parameters are kept verbatim so they can be mirrored onto the
	// fusion router side of the link.
	BFDEnabled    bool   `json:"bfd_enabled"`
	BFDInterval   string `json:"bfd_interval,omitempty"`
	BFDMinRx      string `json:"bfd_min_rx,omitempty"`
	BFDMultiplier string `json:"bfd_multiplier,omitempty"`
}

// InterfaceMode classifies how a physical interface is configured.
type InterfaceMode string

const (
	ModeUnset  InterfaceMode = ""
	ModeAccess InterfaceMode = "access"
	ModeTrunk  InterfaceMode = "trunk"
	ModeRouted InterfaceMode = "routed"
)

// PhysicalInterface is one physical or port-channel interface stanza.
type PhysicalInterface struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Mode        InterfaceMode `json:"mode,omitempty"`

	// AllowedVLANs is the trunk allowed-vlan range list, verbatim.
	AllowedVLANs string `json:"allowed_vlans,omitempty"`
	AccessVLAN   string `json:"access_vlan,omitempty"`
	Shutdown     bool   `json:"shutdown"`

	// IPAddress and SubnetMask are set for routed (L3) interfaces.
	IPAddress  string `json:"ip_address,omitempty"`
	SubnetMask string `json:"subnet_mask,omitempty"`
}
