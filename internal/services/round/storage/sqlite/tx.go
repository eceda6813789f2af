package sqlite

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/integrity"
	"github.com/louisbranch/homerun/internal/services/round/storage"
)

type txStore struct {
	q       queryer
	keyring *integrity.Keyring
	now     func() time.Time
}

func (t *txStore) LoadRound(ctx context.Context) (domain.Round, bool, error) {
	return loadRound(ctx, t.q)
}

func (t *txStore) SaveRound(ctx context.Context, round domain.Round) error {
	_, err := t.q.ExecContext(
		ctx,
		`INSERT INTO rounds (id, initialized, paused, admin, winner, score, deadline, pool, commission, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   initialized = excluded.initialized,
		   paused = excluded.paused,
		   admin = excluded.admin,
		   winner = excluded.winner,
		   score = excluded.score,
		   deadline = excluded.deadline,
		   pool = excluded.pool,
		   commission = excluded.commission,
		   updated_at = excluded.updated_at`,
		boolToInt(round.Initialized),
		boolToInt(round.Paused),
		string(round.Admin),
		string(round.Winner),
		int64(round.Score),
		round.Deadline,
		toStored(round.Pool),
		toStored(round.Commission),
		t.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	return nil
}

func (t *txStore) DeleteRound(ctx context.Context) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM rounds WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (t *txStore) Balance(ctx context.Context, account domain.Identity) (uint64, error) {
	return balance(ctx, t.q, account)
}

func (t *txStore) Transfer(ctx context.Context, from, to domain.Identity, amount uint64) error {
	if amount == 0 {
		return nil
	}
	fromBalance, err := balance(ctx, t.q, from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("transfer %d from %s: %w", amount, from, storage.ErrInsufficientFunds)
	}
	if from == to {
		return nil
	}
	toBalance, err := balance(ctx, t.q, to)
	if err != nil {
		return err
	}
	if toBalance > math.MaxUint64-amount {
		return fmt.Errorf("transfer %d to %s: %w", amount, to, storage.ErrOverflow)
	}
	if err := t.setBalance(ctx, from, fromBalance-amount); err != nil {
		return err
	}
	return t.setBalance(ctx, to, toBalance+amount)
}

func (t *txStore) setBalance(ctx context.Context, account domain.Identity, value uint64) error {
	_, err := t.q.ExecContext(
		ctx,
		`INSERT INTO accounts (account, balance, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(account) DO UPDATE SET
		   balance = excluded.balance,
		   updated_at = excluded.updated_at`,
		string(account),
		toStored(value),
		t.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("set balance %s: %w", account, err)
	}
	return nil
}

var _ storage.Tx = (*txStore)(nil)
