package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/internal/presentation/graph"
	"github.com/aretw0/simchain/internal/presentation/tui"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	trajectoryURI = "simchain://trajectory"
	graphURI      = "simchain://graph"
	maxArrivals   = 100000
)

// Engine defines what the MCP server needs from a simulation engine.
type Engine interface {
	Definition() *chain.Trajectory
	Interarrival(src string) (param.Param[float64], error)
	Simulate(ctx context.Context, arrivals int, interarrival param.Param[float64]) (domain.Summary, error)
	Records(ctx context.Context) ([]domain.ArrivalRecord, error)
}

// SimulateArgs are the arguments of the simulate tool.
type SimulateArgs struct {
	Arrivals     int    `json:"arrivals"`
	Interarrival string `json:"interarrival"`
}

// Server exposes an engine as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine: engine,
		logger: logger,
		mcpServer: server.NewMCPServer("simchain", version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves requests on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run arrivals through a fresh copy of the trajectory and return a summary."),
		mcp.WithNumber("arrivals", mcp.Required(), mcp.Description("Number of arrivals to generate")),
		mcp.WithString("interarrival", mcp.Description("Time between arrivals, a number or an expression (default 1)")),
		mcp.WithOutputSchema[domain.Summary](),
	), mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("get_trajectory",
		mcp.WithDescription("Get the steps of the trajectory as a markdown table."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(tui.Describe(s.engine.Definition())), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List every arrival recorded so far."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		recs, err := s.engine.Records(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("records failed: %v", err)), nil
		}
		data, err := json.Marshal(recs)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args SimulateArgs) (domain.Summary, error) {
	if args.Arrivals < 0 || args.Arrivals > maxArrivals {
		return domain.Summary{}, fmt.Errorf("arrivals must be in [0, %d]", maxArrivals)
	}
	src := args.Interarrival
	if src == "" {
		src = "1"
	}
	gap, err := s.engine.Interarrival(src)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("invalid interarrival: %w", err)
	}
	sum, err := s.engine.Simulate(ctx, args.Arrivals, gap)
	if err != nil {
		s.logger.Error("MCP simulate failed", "error", err)
		return domain.Summary{}, err
	}
	return sum, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(trajectoryURI, "Trajectory",
		mcp.WithResourceDescription("Steps of the loaded trajectory"),
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      trajectoryURI,
				MIMEType: "text/markdown",
				Text:     tui.Describe(s.engine.Definition()),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Trajectory Graph",
		mcp.WithResourceDescription("Mermaid flowchart of the loaded trajectory"),
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      graphURI,
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(s.engine.Definition(), nil),
			},
		}, nil
	})
}
