package fusion

import (
	"fmt"
	"strings"

	"github.com/fabricware/fusiongen/pkg/errors"
)

// Default BFD timers applied to the inter-fusion-router links when the user
// leaves them unset.
const (
	defaultBFDInterval   = 250
	defaultBFDMinRx      = 250
	defaultBFDMultiplier = 3
)

// IBGPParams is the user intent for the iBGP mesh between the fusion routers.
type IBGPParams struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	BFDInterval   int `json:"bfd_interval,omitempty" yaml:"bfd_interval"`
	BFDMinRx      int `json:"bfd_min_rx,omitempty" yaml:"bfd_min_rx"`
	BFDMultiplier int `json:"bfd_multiplier,omitempty" yaml:"bfd_multiplier"`
}

// IBGPConfig is the per-router projection of the iBGP session: each router
// peers with the other one over loopback addresses.
type IBGPConfig struct {
	Enabled bool

	LocalAS      string
	PeerHostname string
	// PeerIP is the other router's BGP router-id (its Loopback0 address).
	PeerIP string
	// UpdateSource is the interface the session is sourced from.
	UpdateSource string

	BFDInterval   int
	BFDMinRx      int
	BFDMultiplier int
}

// BuildIBGPConfigs derives one iBGP projection per fusion router. It requires
// at least two routers sharing one AS number: the eBGP handoffs may span
// multiple ASes, but the iBGP mesh between the fusion routers may not.
// Returns nil when params is nil or disabled.
func BuildIBGPConfigs(routers []RouterParams, params *IBGPParams) (map[int]*IBGPConfig, error) {
	if params == nil || !params.Enabled {
		return nil, nil
	}

	if len(routers) < 2 {
		return nil, errors.ValidationError("iBGP parameters",
			"iBGP peering requires two fusion routers")
	}

	asNumbers := make([]string, 0, len(routers))
	for _, r := range routers {
		asNumbers = append(asNumbers, r.ASNumber)
	}
	for _, as := range asNumbers[1:] {
		if as != asNumbers[0] {
			return nil, errors.New(
				errors.ErrCodeConsistency,
				fmt.Sprintf("Fusion routers must share one AS number for iBGP peering, got: %s",
					strings.Join(asNumbers, ", ")),
				"iBGP sessions can only be formed within a single autonomous system",
				"Assign the same AS number to both fusion routers or disable iBGP",
			)
		}
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

	configs := make(map[int]*IBGPConfig, 2)
	pair := [2]RouterParams{routers[0], routers[1]}
	for i, r := range pair {
		peer := pair[1-i]
		configs[r.RouterID] = &IBGPConfig{
			Enabled:       true,
			LocalAS:       r.ASNumber,
			PeerHostname:  peer.Hostname,
			PeerIP:        peer.BGPRouterID,
			UpdateSource:  "Loopback0",
			BFDInterval:   interval,
			BFDMinRx:      minRx,
			BFDMultiplier: multiplier,
		}
	}
	return configs, nil
}
