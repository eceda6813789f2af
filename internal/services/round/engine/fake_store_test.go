package engine

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/storage"
)

// fakeStore keeps state in memory and applies a transaction only when the
// callback succeeds.
type fakeStore struct {
	round      domain.Round
	exists     bool
	balances   map[domain.Identity]uint64
	events     []storage.EventRecord
	appendErr  error
	balanceErr error
	txCount    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{balances: map[domain.Identity]uint64{}}
}

type fakeTx struct {
	store    *fakeStore
	round    domain.Round
	exists   bool
	balances map[domain.Identity]uint64
	events   []storage.EventRecord
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txCount++
	tx := &fakeTx{
		store:    s,
		round:    s.round,
		exists:   s.exists,
		balances: maps.Clone(s.balances),
		events:   append([]storage.EventRecord(nil), s.events...),
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.round, s.exists, s.balances, s.events = tx.round, tx.exists, tx.balances, tx.events
	return nil
}

func (s *fakeStore) GetRound(context.Context) (domain.Round, error) {
	if !s.exists {
		return domain.Round{}, storage.ErrNotFound
	}
	return s.round, nil
}

func (s *fakeStore) ListEvents(_ context.Context, query storage.EventQuery) ([]storage.EventRecord, error) {
	var out []storage.EventRecord
	for _, record := range s.events {
		if record.Seq > query.AfterSeq && len(out) < query.Limit {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *fakeStore) Balance(_ context.Context, account domain.Identity) (uint64, error) {
	return s.balances[account], nil
}

func (s *fakeStore) Credit(_ context.Context, account domain.Identity, amount uint64) (uint64, error) {
	s.balances[account] += amount
	return s.balances[account], nil
}

func (s *fakeStore) VerifyJournal(context.Context) (storage.JournalReport, error) {
	return storage.JournalReport{Entries: uint64(len(s.events))}, nil
}

func (t *fakeTx) LoadRound(context.Context) (domain.Round, bool, error) {
	return t.round, t.exists, nil
}

func (t *fakeTx) SaveRound(_ context.Context, round domain.Round) error {
	t.round, t.exists = round, true
	return nil
}

func (t *fakeTx) DeleteRound(context.Context) error {
	if !t.exists {
		return storage.ErrNotFound
	}
	t.round, t.exists = domain.Round{}, false
	return nil
}

func (t *fakeTx) Transfer(_ context.Context, from, to domain.Identity, amount uint64) error {
	if t.balances[from] < amount {
		return fmt.Errorf("fake transfer: %w", storage.ErrInsufficientFunds)
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (t *fakeTx) Balance(_ context.Context, account domain.Identity) (uint64, error) {
	if t.store.balanceErr != nil {
		return 0, t.store.balanceErr
	}
	return t.balances[account], nil
}

func (t *fakeTx) AppendEvent(_ context.Context, requestID string, evt domain.Event) (storage.EventRecord, error) {
	if t.store.appendErr != nil {
		return storage.EventRecord{}, t.store.appendErr
	}
	record := storage.EventRecord{Seq: uint64(len(t.events)) + 1, RequestID: requestID, Event: evt}
	t.events = append(t.events, record)
	return record, nil
}

var errFake = errors.New("fake failure")
