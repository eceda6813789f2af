// Package roundctl is a command-line client for the round service.
package roundctl

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/homerun/internal/platform/config"
	platformgrpc "github.com/louisbranch/homerun/internal/platform/grpc"
	grpcmeta "github.com/louisbranch/homerun/internal/services/round/api/grpc/metadata"
	"github.com/louisbranch/homerun/internal/services/round/api/roundv1"
)

// Config controls one roundctl invocation.
type Config struct {
	Addr      string
	Caller    string
	Token     string
	Locale    string
	Timeout   time.Duration
	PageSize  int
	PageToken string
	Filter    string
	OrderBy   string
	// Command is the operation name; Args are its positional arguments.
	Command string
	Args    []string
}

type envConfig struct {
	Addr   string `env:"HOMERUN_ROUND_ADDR" envDefault:"localhost:8090"`
	Caller string `env:"HOMERUN_CALLER_ID"`
	Token  string `env:"HOMERUN_CALLER_TOKEN"`
	Locale string `env:"HOMERUN_LOCALE"`
}

// Commands lists the supported operations.
var Commands = []string{
	"initialize", "play", "score", "claim", "pause", "resume", "profit", "kill",
	"status", "events", "balance",
}

// ParseConfig parses env defaults, flags and the command argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := config.ParseEnv(&envCfg); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Addr:   envCfg.Addr,
		Caller: envCfg.Caller,
		Token:  envCfg.Token,
		Locale: envCfg.Locale,
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "round service address")
	fs.StringVar(&cfg.Caller, "caller", cfg.Caller, "caller identity sent in trusted-header mode")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "caller token sent as a bearer credential")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "accept-language for error messages")
	fs.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "overall timeout")
	fs.IntVar(&cfg.PageSize, "page-size", 0, "events page size")
	fs.StringVar(&cfg.PageToken, "page-token", "", "events page token")
	fs.StringVar(&cfg.Filter, "filter", "", "events filter expression")
	fs.StringVar(&cfg.OrderBy, "order-by", "", "events order: seq or seq desc")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, fmt.Errorf("command is required: %s", strings.Join(Commands, ", "))
	}
	cfg.Command = rest[0]
	cfg.Args = rest[1:]
	return cfg, nil
}

// Run dials the round service and executes one command, writing JSON to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return errors.New("round address is required")
	}
	conn, err := platformgrpc.DialWithHealth(ctx, nil, platformgrpc.DialConfig{
		Addr:    cfg.Addr,
		Service: roundv1.ServiceName,
		Timeout: cfg.Timeout,
	}, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return err
	}
	defer conn.Close()
	return runCommand(ctx, cfg, roundv1.NewRoundServiceClient(conn), out)
}

func runCommand(ctx context.Context, cfg Config, client roundv1.RoundServiceClient, out io.Writer) error {
	if client == nil {
		return errors.New("round client is required")
	}
	requestID, err := grpcmeta.NewRequestID()
	if err != nil {
		return err
	}
	ctx = grpcmeta.OutgoingContext(ctx, cfg.Caller, cfg.Token, requestID, cfg.Locale)

	var resp any
	switch cfg.Command {
	case "initialize":
		resp, err = client.Initialize(ctx, &roundv1.CommandRequest{})
	case "play":
		resp, err = client.Play(ctx, &roundv1.CommandRequest{})
	case "score":
		value, parseErr := scoreArg(cfg.Args)
		if parseErr != nil {
			return parseErr
		}
		resp, err = client.Score(ctx, &roundv1.ScoreRequest{Value: value})
	case "claim":
		resp, err = client.Claim(ctx, &roundv1.CommandRequest{})
	case "pause":
		resp, err = client.Pause(ctx, &roundv1.CommandRequest{})
	case "resume":
		resp, err = client.Resume(ctx, &roundv1.CommandRequest{})
	case "profit":
		resp, err = client.Profit(ctx, &roundv1.CommandRequest{})
	case "kill":
		resp, err = client.Kill(ctx, &roundv1.CommandRequest{})
	case "status":
		resp, err = client.GetRound(ctx, &roundv1.GetRoundRequest{})
	case "events":
		resp, err = client.ListRoundEvents(ctx, &roundv1.ListRoundEventsRequest{
			PageSize:  int32(cfg.PageSize),
			PageToken: cfg.PageToken,
			Filter:    cfg.Filter,
			OrderBy:   cfg.OrderBy,
		})
	case "balance":
		account := ""
		if len(cfg.Args) > 0 {
			account = cfg.Args[0]
		}
		resp, err = client.GetBalance(ctx, &roundv1.GetBalanceRequest{Account: account})
	default:
		return fmt.Errorf("unknown command %q: want one of %s", cfg.Command, strings.Join(Commands, ", "))
	}
	if err != nil {
		return describeError(cfg.Command, err)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

func scoreArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("score requires exactly one value")
	}
	value, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse score: %w", err)
	}
	return value, nil
}

// describeError renders a gRPC status with its domain reason when present.
func describeError(command string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", command, err)
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return fmt.Errorf("%s: %s (%s): %s", command, st.Code(), info.GetReason(), st.Message())
		}
	}
	return fmt.Errorf("%s: %s: %s", command, st.Code(), st.Message())
}
