// Package mcp parses MCP command flags and starts the round MCP adapter.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/homerun/internal/platform/cmd"
	"github.com/louisbranch/homerun/internal/platform/config"
	mcpservice "github.com/louisbranch/homerun/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr      string `env:"HOMERUN_ROUND_ADDR"    envDefault:"localhost:8090"`
	Transport string `env:"HOMERUN_MCP_TRANSPORT" envDefault:"stdio"`
	Caller    string `env:"HOMERUN_CALLER_ID"`
	Token     string `env:"HOMERUN_CALLER_TOKEN"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "round service address")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio")
	fs.StringVar(&cfg.Caller, "caller", cfg.Caller, "caller identity sent to the round service")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			GRPCAddr:  cfg.Addr,
			Transport: cfg.Transport,
			Caller:    cfg.Caller,
			Token:     cfg.Token,
		})
	})
}
