// Package sqlite provides a SQLite-backed round storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/homerun/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/integrity"
	"github.com/louisbranch/homerun/internal/services/round/storage"
	"github.com/louisbranch/homerun/internal/services/round/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// journalName scopes the HMAC key derived for the round journal.
const journalName = "round"

// Store persists round state in SQLite.
//
// All access goes through one connection and write transactions begin with
// BEGIN IMMEDIATE, so commands are applied in a single global order.
type Store struct {
	sqlDB   *sql.DB
	keyring *integrity.Keyring
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for row timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens a SQLite round store and applies embedded migrations.
func Open(path string, keyring *integrity.Keyring, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if keyring == nil {
		return nil, fmt.Errorf("journal keyring is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	applied, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, "")
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	for _, name := range applied {
		log.Printf("round storage migration applied: %s", name)
	}

	store := &Store{sqlDB: sqlDB, keyring: keyring, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// WithinTx runs fn in one transaction and commits only when fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(tx storage.Tx) error) (err error) {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("transaction function is required")
	}
	sqlTx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = sqlTx.Rollback()
		}
	}()

	if err := fn(&txStore{q: sqlTx, keyring: s.keyring, now: s.now}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

// GetRound returns the stored round record.
func (s *Store) GetRound(ctx context.Context) (domain.Round, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Round{}, err
	}
	round, ok, err := loadRound(ctx, s.sqlDB)
	if err != nil {
		return domain.Round{}, err
	}
	if !ok {
		return domain.Round{}, storage.ErrNotFound
	}
	return round, nil
}

// Balance returns the ledger balance of account; unknown accounts hold zero.
func (s *Store) Balance(ctx context.Context, account domain.Identity) (uint64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	return balance(ctx, s.sqlDB, account)
}

// Credit mints amount into account.
func (s *Store) Credit(ctx context.Context, account domain.Identity, amount uint64) (uint64, error) {
	if strings.TrimSpace(string(account)) == "" {
		return 0, fmt.Errorf("account is required")
	}
	var updated uint64
	err := s.WithinTx(ctx, func(tx storage.Tx) error {
		t := tx.(*txStore)
		current, err := balance(ctx, t.q, account)
		if err != nil {
			return err
		}
		if current > ^uint64(0)-amount {
			return fmt.Errorf("credit %s: %w", account, storage.ErrOverflow)
		}
		updated = current + amount
		return t.setBalance(ctx, account, updated)
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadRound(ctx context.Context, q queryer) (domain.Round, bool, error) {
	row := q.QueryRowContext(
		ctx,
		`SELECT initialized, paused, admin, winner, score, deadline, pool, commission
		   FROM rounds
		  WHERE id = 1`,
	)
	var (
		round       domain.Round
		initialized int64
		paused      int64
		admin       string
		winner      string
		score       int64
		pool        int64
		commission  int64
	)
	err := row.Scan(&initialized, &paused, &admin, &winner, &score, &round.Deadline, &pool, &commission)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Round{}, false, nil
		}
		return domain.Round{}, false, fmt.Errorf("load round: %w", err)
	}
	round.Initialized = initialized != 0
	round.Paused = paused != 0
	round.Admin = domain.Identity(admin)
	round.Winner = domain.Identity(winner)
	round.Score = uint16(score)
	round.Pool = fromStored(pool)
	round.Commission = fromStored(commission)
	return round, true, nil
}

func balance(ctx context.Context, q queryer, account domain.Identity) (uint64, error) {
	var stored int64
	err := q.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE account = ?`, string(account)).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("load balance %s: %w", account, err)
	}
	return fromStored(stored), nil
}

// toStored bit-casts an unsigned amount into an INTEGER column value.
func toStored(v uint64) int64 { return int64(v) }

func fromStored(v int64) uint64 { return uint64(v) }

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

var _ storage.Store = (*Store)(nil)
