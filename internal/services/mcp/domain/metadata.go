package domain

import (
	"context"

	"github.com/louisbranch/dicebag/internal/platform/id"
	grpcmeta "github.com/louisbranch/dicebag/internal/services/dice/api/grpc/metadata"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc/metadata"
)

// ToolCallMetadata carries the correlation identifier of one tool call.
type ToolCallMetadata struct {
	RequestID string
}

// NewOutgoingContext attaches a fresh request ID to ctx. The dice service
// reuses it instead of generating its own, so MCP and server logs line up.
func NewOutgoingContext(ctx context.Context) (context.Context, ToolCallMetadata, error) {
	requestID, err := id.NewID()
	if err != nil {
		return nil, ToolCallMetadata{}, err
	}
	callCtx := metadata.AppendToOutgoingContext(ctx, grpcmeta.RequestIDHeader, requestID)
	return callCtx, ToolCallMetadata{RequestID: requestID}, nil
}

// CallToolResultWithMetadata builds a tool result carrying the request ID.
// Content is left empty so the SDK fills it from the structured output.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Meta: map[string]any{
			grpcmeta.RequestIDHeader: meta.RequestID,
		},
	}
}
