package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/dicebag/internal/core/roller"
	"github.com/louisbranch/dicebag/internal/platform/branding"
	"github.com/louisbranch/dicebag/internal/services/dice/client"
	"github.com/louisbranch/dicebag/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	// DiceAddr is the dice service address. Empty rolls in-process.
	DiceAddr  string
	Transport TransportKind
	HTTPAddr  string // defaults to localhost:8081 for HTTP transport
	Locale    string
	// Limits caps in-process rolls. Remote rolls use the service limits.
	Limits roller.Limits
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	dice      client.Dice
}

// New creates an MCP server backed by dice. A nil dice rolls in-process with
// the default roller.
func New(dice client.Dice, locale string) *Server {
	if dice == nil {
		dice = client.NewLocal(roller.New())
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(mcpServer, domain.RollDiceTool(), domain.RollDiceHandler(dice, locale))
	mcp.AddTool(mcpServer, domain.ParseNotationTool(), domain.ParseNotationHandler(dice, locale))
	mcpServer.AddResource(domain.NotationResource(), domain.NotationResourceHandler())

	return &Server{mcpServer: mcpServer, dice: dice}
}

// MCPServer exposes the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	if s == nil {
		return nil
	}
	return s.mcpServer
}

// Close releases the dice client when it holds a connection.
func (s *Server) Close() error {
	if s == nil || s.dice == nil {
		return nil
	}
	closer, ok := s.dice.(io.Closer)
	if !ok {
		return nil
	}
	s.dice = nil
	return closer.Close()
}

// ParseTransport reads a transport name. Empty means stdio.
func ParseTransport(value string) (TransportKind, error) {
	switch TransportKind(strings.ToLower(strings.TrimSpace(value))) {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportHTTP:
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("transport %q is not supported", value)
	}
}

func newDiceClient(ctx context.Context, cfg Config) (client.Dice, error) {
	return client.Open(ctx, cfg.DiceAddr, cfg.Locale, roller.New(roller.WithLimits(cfg.Limits)))
}
