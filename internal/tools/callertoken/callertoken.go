// Package callertoken generates caller-token signing keys and mints caller
// tokens for local testing of the round service.
package callertoken

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/louisbranch/homerun/internal/platform/config"
	"github.com/louisbranch/homerun/internal/services/round/callerauth"
	"github.com/louisbranch/homerun/internal/services/round/domain"
)

// Config holds caller-token command configuration.
type Config struct {
	Keygen     bool
	Caller     string
	Issuer     string
	Audience   string
	TTL        time.Duration
	PrivateKey string
}

type envConfig struct {
	Issuer     string `env:"HOMERUN_CALLER_TOKEN_ISSUER" envDefault:"homerun-local"`
	Audience   string `env:"HOMERUN_CALLER_TOKEN_AUDIENCE" envDefault:"homerun-round"`
	PrivateKey string `env:"HOMERUN_CALLER_TOKEN_PRIVATE_KEY"`
}

// ParseConfig parses env defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := config.ParseEnv(&envCfg); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Issuer:     envCfg.Issuer,
		Audience:   envCfg.Audience,
		PrivateKey: envCfg.PrivateKey,
	}
	fs.BoolVar(&cfg.Keygen, "keygen", false, "generate a new ed25519 signing key pair")
	fs.StringVar(&cfg.Caller, "caller", "", "caller identity placed in the token subject")
	fs.StringVar(&cfg.Issuer, "issuer", cfg.Issuer, "token issuer")
	fs.StringVar(&cfg.Audience, "audience", cfg.Audience, "token audience")
	fs.DurationVar(&cfg.TTL, "ttl", time.Hour, "token lifetime")
	fs.StringVar(&cfg.PrivateKey, "private-key", cfg.PrivateKey, "base64 ed25519 private key (default: HOMERUN_CALLER_TOKEN_PRIVATE_KEY)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates a key pair or mints a token, writing exports to out.
func Run(cfg Config, out io.Writer, reader io.Reader, now func() time.Time) error {
	if out == nil {
		return errors.New("output is required")
	}
	if cfg.Keygen {
		if cfg.Caller != "" {
			return errors.New("-keygen cannot be combined with -caller")
		}
		return keygen(out, reader)
	}
	return mint(cfg, out, now)
}

func keygen(out io.Writer, reader io.Reader) error {
	if reader == nil {
		reader = rand.Reader
	}
	publicKey, privateKey, err := ed25519.GenerateKey(reader)
	if err != nil {
		return fmt.Errorf("generate caller token key: %w", err)
	}
	if _, err := fmt.Fprintf(out, "export HOMERUN_CALLER_TOKEN_PRIVATE_KEY=%s\n", base64.RawStdEncoding.EncodeToString(privateKey)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "export HOMERUN_CALLER_TOKEN_PUBLIC_KEY=%s\n", base64.RawStdEncoding.EncodeToString(publicKey)); err != nil {
		return err
	}
	return nil
}

func mint(cfg Config, out io.Writer, now func() time.Time) error {
	if strings.TrimSpace(cfg.PrivateKey) == "" {
		return errors.New("-private-key or HOMERUN_CALLER_TOKEN_PRIVATE_KEY is required")
	}
	caller, err := domain.ParseIdentity(cfg.Caller)
	if err != nil {
		return fmt.Errorf("-caller: %w", err)
	}
	key, err := callerauth.DecodePrivateKey(cfg.PrivateKey)
	if err != nil {
		return err
	}
	if now == nil {
		now = time.Now
	}
	token, err := callerauth.Mint(key, callerauth.MintRequest{
		Caller:   caller,
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		JWTID:    uuid.NewString(),
		IssuedAt: now(),
		TTL:      cfg.TTL,
	})
	if err != nil {
		return fmt.Errorf("mint caller token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
