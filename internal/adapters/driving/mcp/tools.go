package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driving"
)

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Platform    string   `json:"platform" jsonschema:"one of instagram, playstore, reddit, twitter, youtube"`
	Targets     []string `json:"targets" jsonschema:"profiles, app ids, subreddits or search queries depending on the platform"`
	MaxItems    int      `json:"max_items,omitempty" jsonschema:"maximum posts, videos, apps or tweets per target (platform default when 0)"`
	MaxChildren int      `json:"max_children,omitempty" jsonschema:"maximum comments or reviews per item (platform default when 0)"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	RunID        string `json:"run_id"`
	Count        int    `json:"count"`
	SnapshotPath string `json:"snapshot_path"`

	// SinkError is set when the snapshot was written but the datastore
	// insert failed.
	SinkError string `json:"sink_error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Fetch public content from a platform, normalise it and persist it as a snapshot and in the datastore",
	}, s.handleIngest)
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	platform, err := domain.ParsePlatform(strings.ToLower(strings.TrimSpace(input.Platform)))
	if err != nil {
		return nil, IngestOutput{}, fmt.Errorf("%w: %q", err, input.Platform)
	}

	criteria := domain.ParseCriteria(strings.Join(input.Targets, ","))
	if criteria.IsEmpty() {
		return nil, IngestOutput{}, fmt.Errorf("%w: targets are required", domain.ErrInvalidInput)
	}

	result, err := s.ports.Ingestor.Ingest(ctx, driving.IngestRequest{
		Platform: platform,
		Criteria: criteria,
		Bounds:   domain.Bounds{MaxItems: input.MaxItems, MaxChildren: input.MaxChildren},
	})
	if result == nil {
		return nil, IngestOutput{}, err
	}

	output := IngestOutput{
		RunID:        result.RunID,
		Count:        result.Count(),
		SnapshotPath: result.SnapshotPath,
	}
	if err != nil {
		if !errors.Is(err, domain.ErrSinkWrite) {
			return nil, IngestOutput{}, err
		}
		output.SinkError = err.Error()
	}

	return nil, output, nil
}
