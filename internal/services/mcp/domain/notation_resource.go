package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/dicebag/internal/core/notation"
	"github.com/louisbranch/dicebag/internal/platform/errors/i18n"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NotationResourceURI addresses the notation reference resource.
const NotationResourceURI = "dicebag://notation"

// NotationPayload documents the accepted notation for MCP clients.
type NotationPayload struct {
	Grammar  string            `json:"grammar"`
	Examples map[string]string `json:"examples"`
	Locales  []string          `json:"locales"`
}

// NotationResource defines the notation reference resource.
func NotationResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "notation",
		Title:       "Dice notation",
		Description: "Grammar and examples for roll_dice notation",
		MIMEType:    "application/json",
		URI:         NotationResourceURI,
	}
}

// NotationResourceHandler serves the notation reference.
func NotationResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := NotationResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != NotationResourceURI {
			return nil, fmt.Errorf("unknown resource %q", uri)
		}

		payload := NotationPayload{
			Grammar: notation.Grammar,
			Examples: map[string]string{
				"1d6":     "one six-sided die",
				"3d6+1":   "three d6, plus one",
				"6d6^3":   "six d6, keep the three highest",
				"4d8v2-2": "four d8, keep the two lowest, minus two",
			},
			Locales: i18n.Locales(),
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal notation payload: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
