package bordernode

import (
	"regexp"
	"strings"

	"github.com/fabricware/fusiongen/pkg/errors"
)

var (
	// neighborPattern matches 'neighbor <ipv4> remote-as <asn>' lines
	neighborPattern = regexp.MustCompile(`^\s*neighbor\s+([\d.]+)\s+remote-as\s+(\d+)`)

	// bfdPattern matches 'bfd interval <n> min_rx <n> multiplier <n>' lines
	bfdPattern = regexp.MustCompile(`^bfd interval (\d+) min_rx (\d+) multiplier (\d+)`)

	// physicalInterfacePattern matches physical and port-channel interface
	// headers (not VLANs, not Loopbacks)
	physicalInterfacePattern = regexp.MustCompile(
		`^interface (GigabitEthernet|TenGigabitEthernet|FortyGigE|HundredGigE|TwentyFiveGigE|Port-channel)[\d/.]+`)
)

// Parse extracts a border node model from Cisco IOS running-configuration
// text. Every field except the hostname is optional; Parse fails only when no
// hostname line is present.
//
// Each extraction is an independent single pass over the cleaned lines, so
// parsing is stateless and safe to run concurrently for different inputs.
func Parse(text string) (*Model, error) {
	lines := cleanLines(text)

	hostname := scanHostname(lines)
	if hostname == "" {
		return nil, errors.New(
			errors.ErrCodeParse,
			"No hostname found in configuration",
			"The configuration text does not contain a 'hostname' line",
			"Provide a complete Cisco IOS running configuration including the hostname stanza",
		)
	}

	return &Model{
		Hostname:           hostname,
		Loopback0IP:        scanLoopback0(lines),
		BGP:                scanBGP(lines),
		VLANInterfaces:     scanVLANInterfaces(lines),
		PhysicalInterfaces: scanPhysicalInterfaces(lines),
	}, nil
}

// cleanLines splits the input into lines and strips line-number gutters of the
// form '<n> |<content>' that show up in pasted config dumps. The first '|' in
// a line splits it and only the part after the '|' is kept.
func cleanLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if idx := strings.Index(line, "|"); idx >= 0 {
			line = line[idx+1:]
		}
		lines = append(lines, line)
	}
	return lines
}

// scanHostname returns the value of the first 'hostname ' line, or "".
func scanHostname(lines []string) string {
	for _, line := range lines {
		if strings.HasPrefix(line, "hostname ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "hostname "))
		}
	}
	return ""
}

// scanLoopback0 returns the Loopback0 address, or "".
func scanLoopback0(lines []string) string {
	inLoopback0 := false
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "interface Loopback0"):
			inLoopback0 = true
		case inLoopback0 && strings.HasPrefix(line, " ip address "):
			fields := strings.Fields(line)
			if len(fields) >= 3 {
				return fields[2]
			}
		case inLoopback0 && strings.HasPrefix(line, "interface "):
			return ""
		}
	}
	return ""
}

// scanBGP extracts the 'router bgp' stanza facts. Neighbors inside an
// 'address-family ipv4 vrf <name>' context are attributed to that VRF; a
// neighbor in the default context is recorded only if a default (non-VRF)
// 'address-family ipv4' line appeared earlier in the file.
func scanBGP(lines []string) BGPFacts {
	facts := BGPFacts{
		DefaultVRFNeighbors: []Neighbor{},
		VRFNeighbors:        map[string][]Neighbor{},
	}

	inBGP := false
	currentVRF := ""
	seenDefaultAF := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "router bgp "):
			facts.ASNumber = strings.TrimSpace(strings.TrimPrefix(line, "router bgp "))
			inBGP = true
		case inBGP && strings.HasPrefix(line, "!"):
			inBGP = false
			currentVRF = ""
		case inBGP && strings.HasPrefix(trimmed, "address-family ipv4 vrf "):
			vrfName := strings.TrimSpace(strings.TrimPrefix(trimmed, "address-family ipv4 vrf "))
			currentVRF = vrfName
			if _, ok := facts.VRFNeighbors[vrfName]; !ok {
				facts.VRFNeighbors[vrfName] = []Neighbor{}
			}
		case inBGP && strings.HasPrefix(trimmed, "exit-address-family"):
			currentVRF = ""
		case inBGP && strings.HasPrefix(trimmed, "neighbor "):
			m := neighborPattern.FindStringSubmatch(line)
			if m == nil {
				break
			}
			n := Neighbor{IP: m[1], RemoteAS: m[2]}
			if currentVRF != "" {
				facts.VRFNeighbors[currentVRF] = append(facts.VRFNeighbors[currentVRF], n)
			} else if seenDefaultAF {
				facts.DefaultVRFNeighbors = append(facts.DefaultVRFNeighbors, n)
			}
		}

		// Track default address-family declarations anywhere in the file for
		// the default-VRF gating rule above.
		if strings.Contains(line, "address-family ipv4") && !strings.Contains(line, "vrf") {
			seenDefaultAF = true
		}
	}

	return facts
}

// scanVLANInterfaces extracts 'interface Vlan<id>' stanzas. Only interfaces
// addressed with a /30 mask (255.255.255.252) are returned, in configuration
// order, since only those can be fusion router handoff links.
func scanVLANInterfaces(lines []string) []VLANInterface {
	var all []VLANInterface
	var current *VLANInterface

	flush := func() {
		if current != nil {
			all = append(all, *current)
			current = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "interface Vlan") {
			flush()
			current = &VLANInterface{
				VLAN: strings.TrimSpace(strings.TrimPrefix(line, "interface Vlan")),
			}
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "interface ") {
			flush()
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "ip address "):
			fields := strings.Fields(trimmed)
			if len(fields) >= 4 {
				current.IPAddress = fields[2]
				current.SubnetMask = fields[3]
			}
		case strings.HasPrefix(trimmed, "vrf forwarding "):
			current.VRF = strings.TrimPrefix(trimmed, "vrf forwarding ")
		case strings.HasPrefix(trimmed, "description "):
			current.Description = strings.TrimPrefix(trimmed, "description ")
		case strings.HasPrefix(trimmed, "bfd interval "):
			current.BFDEnabled = true
			if m := bfdPattern.FindStringSubmatch(trimmed); m != nil {
				current.BFDInterval = m[1]
				current.BFDMinRx = m[2]
				current.BFDMultiplier = m[3]
			}
		}
	}
	flush()

	filtered := make([]VLANInterface, 0, len(all))
	for _, v := range all {
		if v.IPAddress != "" && v.SubnetMask == "255.255.255.252" {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// scanPhysicalInterfaces extracts physical and port-channel interface stanzas
// in configuration order. A stanza ends at the next interface header or at a
// '!' block boundary.
func scanPhysicalInterfaces(lines []string) []PhysicalInterface {
	var all []PhysicalInterface
	var current *PhysicalInterface

	flush := func() {
		if current != nil {
			all = append(all, *current)
			current = nil
		}
	}

	for _, line := range lines {
		if physicalInterfacePattern.MatchString(line) {
			flush()
			current = &PhysicalInterface{
				Name: strings.TrimSpace(strings.TrimPrefix(line, "interface ")),
			}
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "interface ") || strings.HasPrefix(line, "!") {
			flush()
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "description "):
			current.Description = strings.TrimPrefix(trimmed, "description ")
		case trimmed == "switchport mode trunk":
			current.Mode = ModeTrunk
		case trimmed == "switchport mode access":
			current.Mode = ModeAccess
		case strings.HasPrefix(trimmed, "switchport trunk allowed vlan "):
			current.AllowedVLANs = strings.TrimPrefix(trimmed, "switchport trunk allowed vlan ")
		case strings.HasPrefix(trimmed, "switchport access vlan "):
			current.AccessVLAN = strings.TrimPrefix(trimmed, "switchport access vlan ")
		case trimmed == "shutdown":
			current.Shutdown = true
		case strings.HasPrefix(trimmed, "ip address "):
			// An address on a physical interface makes it a routed (L3) port.
			current.Mode = ModeRouted
			fields := strings.Fields(trimmed)
			if len(fields) >= 4 {
				current.IPAddress = fields[2]
				current.SubnetMask = fields[3]
			}
		}
	}
	flush()

	return all
}
