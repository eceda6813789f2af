// Package round parses round service flags and launches the service.
package round

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/homerun/internal/platform/cmd"
	server "github.com/louisbranch/homerun/internal/services/round/app"
)

// Config holds round command configuration.
type Config struct {
	Port int    `env:"HOMERUN_ROUND_PORT" envDefault:"8090"`
	Addr string `env:"HOMERUN_ROUND_ADDR"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The round gRPC server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The round gRPC listen address; overrides -port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the round gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRound, func(ctx context.Context) error {
		if cfg.Addr != "" {
			srv, err := server.NewWithAddr(cfg.Addr)
			if err != nil {
				return err
			}
			return srv.Serve(ctx)
		}
		return server.Run(ctx, cfg.Port)
	})
}
