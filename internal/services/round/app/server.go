// Package server wires the round runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/louisbranch/homerun/internal/platform/config"
	"github.com/louisbranch/homerun/internal/platform/timeouts"
	"github.com/louisbranch/homerun/internal/services/round/api/grpc/interceptors"
	grpcmeta "github.com/louisbranch/homerun/internal/services/round/api/grpc/metadata"
	roundservice "github.com/louisbranch/homerun/internal/services/round/api/grpc/round"
	"github.com/louisbranch/homerun/internal/services/round/api/roundv1"
	"github.com/louisbranch/homerun/internal/services/round/callerauth"
	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/engine"
	"github.com/louisbranch/homerun/internal/services/round/integrity"
	roundsqlite "github.com/louisbranch/homerun/internal/services/round/storage/sqlite"
)

type serverEnv struct {
	DBPath             string        `env:"HOMERUN_ROUND_DB_PATH"`
	Fee                uint64        `env:"HOMERUN_ROUND_FEE" envDefault:"1000000000"`
	Duration           time.Duration `env:"HOMERUN_ROUND_DURATION" envDefault:"1h"`
	RentReserve        uint64        `env:"HOMERUN_ROUND_RENT_RESERVE" envDefault:"1586880"`
	ResetWinnerOnClaim bool          `env:"HOMERUN_ROUND_RESET_WINNER_ON_CLAIM"`
}

// Config holds everything a round server needs besides its address.
type Config struct {
	DBPath     string
	Round      domain.Config
	Keyring    *integrity.Keyring
	CallerAuth callerauth.Config
	// Clock overrides time.Now for the engine.
	Clock func() time.Time
}

// LoadConfigFromEnv reads server configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var env serverEnv
	if err := config.ParseEnv(&env); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(env.DBPath) == "" {
		env.DBPath = filepath.Join("data", "round.db")
	}
	keyring, err := integrity.KeyringFromEnv()
	if err != nil {
		return Config{}, fmt.Errorf("load journal keyring: %w", err)
	}
	callerAuth, err := callerauth.LoadConfigFromEnv(nil)
	if err != nil {
		return Config{}, fmt.Errorf("load caller auth: %w", err)
	}
	return Config{
		DBPath: env.DBPath,
		Round: domain.Config{
			Fee:                env.Fee,
			RoundDuration:      env.Duration,
			RentReserve:        env.RentReserve,
			ResetWinnerOnClaim: env.ResetWinnerOnClaim,
		},
		Keyring:    keyring,
		CallerAuth: callerAuth,
	}, nil
}

// Server hosts the round gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *roundsqlite.Store
}

// New creates a round server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a round server configured from the environment.
func NewWithAddr(addr string) (*Server, error) {
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(addr, cfg)
}

// NewWithConfig creates a round server for the provided address and config.
func NewWithConfig(addr string, cfg Config) (*Server, error) {
	if err := cfg.Round.Validate(); err != nil {
		return nil, fmt.Errorf("round config: %w", err)
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openRoundStore(cfg.DBPath, cfg.Keyring)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	handler, err := engine.NewHandler(store, cfg.Round, cfg.Clock)
	if err != nil {
		_ = store.Close()
		_ = listener.Close()
		return nil, err
	}
	apiService, err := roundservice.NewService(handler, store)
	if err != nil {
		_ = store.Close()
		_ = listener.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(nil),
			interceptors.CallerInterceptor(cfg.CallerAuth),
			interceptors.LoggingInterceptor(nil),
		),
	)
	healthServer := health.NewServer()
	roundv1.RegisterRoundServiceServer(grpcServer, apiService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(roundv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if cfg.CallerAuth.Enabled() {
		log.Printf("round caller tokens verified for issuer %s", cfg.CallerAuth.Issuer)
	} else {
		log.Printf("round caller identity taken from %s header", grpcmeta.CallerIDHeader)
	}

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a round server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)

	log.Printf("round server listening at %v", s.listener.Addr())
	group.Go(func() error {
		defer cancel()
		err := s.grpcServer.Serve(s.listener)
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		s.health.Shutdown()
		stopped := make(chan struct{})
		go func() {
			s.grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(timeouts.Shutdown):
			log.Printf("round server drain exceeded %v, forcing stop", timeouts.Shutdown)
			s.grpcServer.Stop()
		}
		return nil
	})
	return group.Wait()
}

// Close releases round server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close round store: %v", err)
		}
	}
}

func openRoundStore(path string, keyring *integrity.Keyring) (*roundsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := roundsqlite.Open(path, keyring)
	if err != nil {
		return nil, fmt.Errorf("open round sqlite store: %w", err)
	}
	return store, nil
}
