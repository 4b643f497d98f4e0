package server

import (
	"github.com/fabricware/fusiongen/pkg/bordernode"
	"github.com/fabricware/fusiongen/pkg/fusion"
)

// UploadResponse carries the facts parsed out of each uploaded border node
// configuration, keyed in upload order.
type UploadResponse struct {
	BorderNodes []*bordernode.Model `json:"border_nodes"`
}

// GenerateRequest is the full generation intent: which routers to generate,
// the parsed border node facts, and the topology parameters.
type GenerateRequest struct {
	FusionRouters []fusion.RouterParams `json:"fusion_routers"`
	BorderNodes   []*bordernode.Model   `json:"border_nodes"`
	Handoffs      []fusion.Handoff      `json:"handoffs"`
	VRFConfigs    []fusion.VRFSpec      `json:"vrf_configs,omitempty"`

	IBGP *fusion.IBGPParams `json:"ibgp,omitempty"`
	OSPF *fusion.OSPFParams `json:"ospf,omitempty"`
}

// GenerateResponse returns the rendered configuration per router hostname and
// the history id shared by all configs of this request.
type GenerateResponse struct {
	GenerationID string            `json:"generation_id"`
	Configs      map[string]string `json:"configs"`
}

// DownloadRequest asks for one configuration as a file attachment.
type DownloadRequest struct {
	Config   string `json:"config"`
	Filename string `json:"filename,omitempty"`
}

// GenerationListResponse wraps the history listing.
type GenerationListResponse struct {
	Generations []*GenerationSummary `json:"generations"`
}

// GenerationSummary is a history entry without the config body.
type GenerationSummary struct {
	ID             string `json:"id"`
	RequestID      string `json:"request_id"`
	RouterHostname string `json:"router_hostname"`
	InterfaceMode  string `json:"interface_mode"`
	CreatedAt      string `json:"created_at"`
}
