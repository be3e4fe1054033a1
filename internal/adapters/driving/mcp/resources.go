package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for insight resources.
const uriScheme = "insight://"

// platformInfo describes one platform for the platforms resource.
type platformInfo struct {
	Name    string `json:"name"`
	Targets string `json:"targets"`
	Items   string `json:"items"`
}

var platformHelp = map[string]platformInfo{
	"instagram": {Targets: "profile names", Items: "post comments"},
	"playstore": {Targets: "app ids", Items: "reviews"},
	"reddit":    {Targets: "subreddits", Items: "post comments"},
	"twitter":   {Targets: "search queries", Items: "tweets"},
	"youtube":   {Targets: "search queries", Items: "video comments"},
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "platforms",
		Name:        "platforms",
		Description: "Platforms the ingest tool accepts and what their targets mean",
		MIMEType:    "application/json",
	}, s.handlePlatformsResource)
}

// handlePlatformsResource lists the supported platforms.
func (s *Server) handlePlatformsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	platforms := s.ports.platforms()
	infos := make([]platformInfo, len(platforms))
	for i, p := range platforms {
		info := platformHelp[string(p)]
		info.Name = string(p)
		infos[i] = info
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling platforms: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
