// Package maintenance runs offline operations against the round SQLite file:
// funding ledger accounts, dumping the round record and verifying the
// operation journal.
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/integrity"
	"github.com/louisbranch/homerun/internal/services/round/storage"
	"github.com/louisbranch/homerun/internal/services/round/storage/sqlite"
)

// Config holds maintenance command configuration.
type Config struct {
	DBPath        string
	Timeout       time.Duration
	RoundDuration time.Duration
	CreditAccount string
	CreditAmount  uint64
	Status        bool
	VerifyJournal bool
	JSONOutput    bool
}

type envConfig struct {
	DBPath        string        `env:"HOMERUN_ROUND_DB_PATH"`
	Timeout       time.Duration `env:"HOMERUN_MAINTENANCE_TIMEOUT" envDefault:"1m"`
	RoundDuration time.Duration `env:"HOMERUN_ROUND_DURATION" envDefault:"1h"`
}

// ParseConfig parses env defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		DBPath:        envCfg.DBPath,
		Timeout:       envCfg.Timeout,
		RoundDuration: envCfg.RoundDuration,
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "round.db")
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the round sqlite database (default: HOMERUN_ROUND_DB_PATH or data/round.db)")
	fs.StringVar(&cfg.CreditAccount, "credit", "", "ledger account to fund")
	fs.Uint64Var(&cfg.CreditAmount, "amount", 0, "amount to credit (with -credit)")
	fs.BoolVar(&cfg.Status, "status", false, "print the round record, phase and custody balance")
	fs.BoolVar(&cfg.VerifyJournal, "verify-journal", false, "recompute journal hashes, chain links and signatures")
	fs.DurationVar(&cfg.RoundDuration, "round-duration", cfg.RoundDuration, "round duration used to derive the phase")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output JSON reports")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks that exactly one action is selected.
func (c Config) validate() error {
	actions := 0
	if c.CreditAccount != "" {
		actions++
		if c.CreditAmount == 0 {
			return errors.New("-amount must be > 0 with -credit")
		}
	} else if c.CreditAmount != 0 {
		return errors.New("-amount requires -credit")
	}
	if c.Status {
		actions++
	}
	if c.VerifyJournal {
		actions++
	}
	if actions != 1 {
		return errors.New("exactly one of -credit, -status or -verify-journal is required")
	}
	if c.Status && c.RoundDuration < time.Second {
		return errors.New("-round-duration must be at least 1s")
	}
	return nil
}

// Run executes the maintenance command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	keyring, err := integrity.KeyringFromEnv()
	if err != nil {
		return fmt.Errorf("load journal keyring: %w", err)
	}
	store, err := sqlite.Open(cfg.DBPath, keyring)
	if err != nil {
		return fmt.Errorf("open round store: %w", err)
	}
	return runWithDeps(ctx, cfg, store, time.Now, out, errOut)
}

func runWithDeps(ctx context.Context, cfg Config, store closableStore, now func() time.Time, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			fmt.Fprintf(errOut, "Error: close round store: %v\n", closeErr)
		}
	}()

	switch {
	case cfg.CreditAccount != "":
		return runCredit(ctx, store, cfg, out)
	case cfg.Status:
		return runStatus(ctx, store, cfg, now(), out)
	default:
		return runVerifyJournal(ctx, store, cfg, out)
	}
}

type creditReport struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount,string"`
	Balance uint64 `json:"balance,string"`
}

func runCredit(ctx context.Context, store storage.Store, cfg Config, out io.Writer) error {
	account, err := domain.ParseIdentity(cfg.CreditAccount)
	if err != nil {
		return err
	}
	balance, err := store.Credit(ctx, account, cfg.CreditAmount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", account, err)
	}
	report := creditReport{Account: account.String(), Amount: cfg.CreditAmount, Balance: balance}
	if cfg.JSONOutput {
		return writeJSON(out, report)
	}
	_, err = fmt.Fprintf(out, "credited %d to %s, balance %d\n", report.Amount, report.Account, report.Balance)
	return err
}

type statusReport struct {
	Initialized bool   `json:"initialized"`
	Paused      bool   `json:"paused"`
	Admin       string `json:"admin,omitempty"`
	Winner      string `json:"winner,omitempty"`
	Score       uint16 `json:"score"`
	Deadline    int64  `json:"deadline"`
	Pool        uint64 `json:"pool,string"`
	Commission  uint64 `json:"commission,string"`
	Custody     uint64 `json:"custody,string"`
	Phase       string `json:"phase"`
	GraceEndsAt int64  `json:"grace_ends_at,omitempty"`
}

func runStatus(ctx context.Context, store storage.Store, cfg Config, now time.Time, out io.Writer) error {
	custody, err := store.Balance(ctx, domain.CustodyAccount)
	if err != nil {
		return fmt.Errorf("read custody: %w", err)
	}
	round, err := store.GetRound(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		report := statusReport{Phase: "uninitialized", Custody: custody}
		if cfg.JSONOutput {
			return writeJSON(out, report)
		}
		_, err = fmt.Fprintf(out, "round is not initialized (custody %d)\n", custody)
		return err
	}
	if err != nil {
		return fmt.Errorf("read round: %w", err)
	}

	seconds := int64(cfg.RoundDuration / time.Second)
	phase, err := domain.PhaseAt(round, now.Unix(), seconds)
	if err != nil {
		return err
	}
	graceEnd, err := domain.GraceEndsAt(round, seconds)
	if err != nil {
		return err
	}
	report := statusReport{
		Initialized: round.Initialized,
		Paused:      round.Paused,
		Admin:       round.Admin.String(),
		Winner:      round.Winner.String(),
		Score:       round.Score,
		Deadline:    round.Deadline,
		Pool:        round.Pool,
		Commission:  round.Commission,
		Custody:     custody,
		Phase:       phase.String(),
		GraceEndsAt: graceEnd,
	}
	if cfg.JSONOutput {
		return writeJSON(out, report)
	}
	_, err = fmt.Fprintf(out, "phase=%s paused=%t admin=%s winner=%s score=%d deadline=%d pool=%d commission=%d custody=%d\n",
		report.Phase, report.Paused, report.Admin, report.Winner, report.Score, report.Deadline, report.Pool, report.Commission, report.Custody)
	return err
}

type journalReport struct {
	Entries   uint64 `json:"entries"`
	LastSeq   uint64 `json:"last_seq"`
	ChainHead string `json:"chain_head,omitempty"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

func runVerifyJournal(ctx context.Context, store storage.Store, cfg Config, out io.Writer) error {
	result, verifyErr := store.VerifyJournal(ctx)
	report := journalReport{
		Entries:   result.Entries,
		LastSeq:   result.LastSeq,
		ChainHead: result.ChainHead,
		OK:        verifyErr == nil,
	}
	if verifyErr != nil {
		report.Error = verifyErr.Error()
	}
	if cfg.JSONOutput {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else if verifyErr == nil {
		if _, err := fmt.Fprintf(out, "journal ok: %d entries, last seq %d, head %s\n", report.Entries, report.LastSeq, report.ChainHead); err != nil {
			return err
		}
	}
	if verifyErr != nil {
		return fmt.Errorf("verify journal: %w", verifyErr)
	}
	return nil
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
