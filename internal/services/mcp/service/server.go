package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"

	platformgrpc "github.com/louisbranch/homerun/internal/platform/grpc"
	"github.com/louisbranch/homerun/internal/platform/timeouts"
	"github.com/louisbranch/homerun/internal/services/mcp/domain"
	"github.com/louisbranch/homerun/internal/services/round/api/roundv1"
)

const (
	serverName    = "homerun-round"
	serverVersion = "0.1.0"

	// TransportStdio serves MCP over stdin and stdout.
	TransportStdio = "stdio"
)

// Config configures the MCP adapter.
type Config struct {
	GRPCAddr  string
	Transport string
	// Caller and Token identify the adapter to the round service.
	Caller string
	Token  string
}

// Server binds an MCP server to a round service client.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// Run dials the round service and serves MCP until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	if strings.TrimSpace(cfg.GRPCAddr) == "" {
		return errors.New("round service address is required")
	}
	conn, err := platformgrpc.DialWithHealth(ctx, nil, platformgrpc.DialConfig{
		Addr:    cfg.GRPCAddr,
		Service: roundv1.ServiceName,
		Timeout: timeouts.GRPCDial,
	}, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return fmt.Errorf("connect to round service at %s: %w", cfg.GRPCAddr, err)
	}
	server := newServer(roundv1.NewRoundServiceClient(conn), domain.Identity{Caller: cfg.Caller, Token: cfg.Token})
	server.conn = conn
	return server.serveWithTransport(ctx, transport)
}

// newServer registers the round tools and resources.
func newServer(client roundv1.RoundServiceClient, identity domain.Identity) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(mcpServer, domain.RoundStatusTool(), domain.RoundStatusHandler(client, identity))
	mcp.AddTool(mcpServer, domain.RoundEventsTool(), domain.RoundEventsHandler(client, identity))
	mcp.AddTool(mcpServer, domain.AccountBalanceTool(), domain.AccountBalanceHandler(client, identity))
	mcpServer.AddResource(domain.RoundStatusResource(), domain.RoundStatusResourceHandler(client, identity))

	return &Server{mcpServer: mcpServer}
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP server and closes the gRPC connection on
// exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
