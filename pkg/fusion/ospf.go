package fusion

import (
	"fmt"

	"github.com/fabricware/fusiongen/pkg/errors"
	"github.com/fabricware/fusiongen/pkg/ipcalc"
)

// OSPFParams is the user intent for the OSPF underlay link between the two
// fusion routers.
type OSPFParams struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	ProcessID int   `json:"process_id" yaml:"process_id"`
	Area      int64 `json:"area" yaml:"area"`

	Router1IP  string `json:"router1_ip" yaml:"router1_ip"`
	Router2IP  string `json:"router2_ip" yaml:"router2_ip"`
	SubnetMask string `json:"subnet_mask" yaml:"subnet_mask"`

	Router1Interface string `json:"router1_interface" yaml:"router1_interface"`
	Router2Interface string `json:"router2_interface" yaml:"router2_interface"`

	// InterfaceMode describes how the underlay link is terminated; svi and
	// subinterface modes additionally need a VLAN id.
	InterfaceMode InterfaceMode `json:"interface_mode" yaml:"interface_mode"`
	VLANID        int           `json:"vlan_id,omitempty" yaml:"vlan_id"`

	BFDInterval   int `json:"bfd_interval,omitempty" yaml:"bfd_interval"`
	BFDMinRx      int `json:"bfd_min_rx,omitempty" yaml:"bfd_min_rx"`
	BFDMultiplier int `json:"bfd_multiplier,omitempty" yaml:"bfd_multiplier"`

	// Authentication is empty or "md5"; md5 requires a key and key id.
	Authentication string `json:"authentication,omitempty" yaml:"authentication"`
	AuthKey        string `json:"auth_key,omitempty" yaml:"auth_key"`
	AuthKeyID      int    `json:"auth_key_id,omitempty" yaml:"auth_key_id"`
}

// OSPFConfig is the per-router projection of the underlay: each router gets
// its own interface name and address, and the shared process, area, network
// statement, BFD timers, and authentication.
type OSPFConfig struct {
	ProcessID int
	Area      int64

	NetworkAddress string
	WildcardMask   string

	InterfaceName string
	IPAddress     string
	SubnetMask    string

	InterfaceMode InterfaceMode
	VLANID        int

	BFDInterval   int
	BFDMinRx      int
	BFDMultiplier int

	Authentication string
	AuthKey        string
	AuthKeyID      int
}

// BuildOSPFConfigs validates the OSPF underlay parameters and derives one
// projection per fusion router. All checks run before any config is derived;
// a violation aborts the whole derivation. Returns nil when the underlay is
// disabled or fewer than two routers are requested.
func BuildOSPFConfigs(routers []RouterParams, params *OSPFParams) (map[int]*OSPFConfig, error) {
	if params == nil || !params.Enabled || len(routers) < 2 {
		return nil, nil
	}

	if err := validateOSPFParams(params); err != nil {
		return nil, err
	}

	network, err := ipcalc.NetworkAddress(params.Router1IP, params.SubnetMask)
	if err != nil {
		return nil, errors.ValidationError("OSPF parameters", err.Error())
	}
	wildcard, err := ipcalc.WildcardMask(params.SubnetMask)
	if err != nil {
		return nil, errors.ValidationError("OSPF parameters", err.Error())
	}

	interval, minRx, multiplier := params.BFDInterval, params.BFDMinRx, params.BFDMultiplier
	if interval == 0 {
		interval = defaultBFDInterval
	}
	if minRx == 0 {
		minRx = defaultBFDMinRx
	}
	if multiplier == 0 {
		multiplier = defaultBFDMultiplier
	}

	shared := OSPFConfig{
		ProcessID:      params.ProcessID,
		Area:           params.Area,
		NetworkAddress: network,
		WildcardMask:   wildcard,
		SubnetMask:     params.SubnetMask,
		InterfaceMode:  params.InterfaceMode,
		VLANID:         params.VLANID,
		BFDInterval:    interval,
		BFDMinRx:       minRx,
		BFDMultiplier:  multiplier,
		Authentication: params.Authentication,
		AuthKey:        params.AuthKey,
		AuthKeyID:      params.AuthKeyID,
	}

	cfg1 := shared
	cfg1.InterfaceName = params.Router1Interface
	cfg1.IPAddress = params.Router1IP

	cfg2 := shared
	cfg2.InterfaceName = params.Router2Interface
	cfg2.IPAddress = params.Router2IP

	return map[int]*OSPFConfig{1: &cfg1, 2: &cfg2}, nil
}

// validateOSPFParams checks every user-supplied OSPF field.
func validateOSPFParams(p *OSPFParams) error {
	if p.ProcessID < 1 || p.ProcessID > 65535 {
		return errors.ValidationError("OSPF process id",
			fmt.Sprintf("process id %d out of range (1-65535)", p.ProcessID))
	}
	if p.Area < 0 || p.Area > 4294967295 {
		return errors.ValidationError("OSPF area",
			fmt.Sprintf("area %d out of range (0-4294967295)", p.Area))
	}
	if err := ValidateIPAddress(p.Router1IP); err != nil {
		return err
	}
	if err := ValidateIPAddress(p.Router2IP); err != nil {
		return err
	}
	if !ipcalc.ValidNetmask(p.SubnetMask) {
		return errors.ValidationError("OSPF subnet mask",
			fmt.Sprintf("invalid dotted-decimal netmask: %s", p.SubnetMask))
	}
	if err := ValidateInterfaceName(p.Router1Interface); err != nil {
		return err
	}
	if err := ValidateInterfaceName(p.Router2Interface); err != nil {
		return err
	}
	if p.InterfaceMode == ModeSVI || p.InterfaceMode == ModeSubinterface {
		if p.VLANID < 1 || p.VLANID > 4094 {
			return errors.ValidationError("OSPF VLAN id",
				fmt.Sprintf("VLAN id %d out of range (1-4094) for %s mode", p.VLANID, p.InterfaceMode))
		}
	}
	if p.Authentication == "md5" {
		if p.AuthKey == "" {
			return errors.ValidationError("OSPF authentication",
				"md5 authentication requires a non-empty key")
		}
		if p.AuthKeyID < 1 || p.AuthKeyID > 255 {
			return errors.ValidationError("OSPF authentication",
				fmt.Sprintf("md5 key id %d out of range (1-255)", p.AuthKeyID))
		}
	}
	return nil
}
