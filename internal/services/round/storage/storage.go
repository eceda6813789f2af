// Package storage defines persistence contracts for the round service.
//
// A Store owns three pieces of state that must change together: the single
// round record, the native-value ledger, and the operation journal. Commands
// run inside WithinTx so a rejected or failed command leaves all three
// untouched.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/homerun/internal/services/round/domain"
)

var (
	// ErrNotFound indicates the round record or a requested row is missing.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientFunds indicates a transfer source lacks the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrOverflow indicates a transfer would overflow the destination balance.
	ErrOverflow = errors.New("balance overflow")
	// ErrJournalCorrupt indicates a journal entry failed hash or signature checks.
	ErrJournalCorrupt = errors.New("journal integrity check failed")
)

// EventRecord is one stored journal entry.
type EventRecord struct {
	Seq            uint64
	RequestID      string
	Event          domain.Event
	Hash           string
	PrevHash       string
	ChainHash      string
	Signature      string
	SignatureKeyID string
}

// EventQuery selects a forward page of journal entries.
type EventQuery struct {
	// AfterSeq excludes entries with seq <= AfterSeq.
	AfterSeq uint64
	// Limit caps the number of rows returned; it must be positive.
	Limit int
	// Descending reverses the order; AfterSeq then excludes seq >= AfterSeq
	// unless it is zero.
	Descending bool
	// FilterClause is an optional SQL condition with positional params.
	FilterClause string
	FilterParams []any
}

// JournalReport summarizes a full journal verification.
type JournalReport struct {
	Entries   uint64
	LastSeq   uint64
	ChainHead string
}

// Tx is the unit of work for one round command.
type Tx interface {
	// LoadRound returns the stored record and whether it exists.
	LoadRound(ctx context.Context) (domain.Round, bool, error)
	SaveRound(ctx context.Context, round domain.Round) error
	DeleteRound(ctx context.Context) error
	// Transfer moves amount between ledger accounts.
	Transfer(ctx context.Context, from, to domain.Identity, amount uint64) error
	Balance(ctx context.Context, account domain.Identity) (uint64, error)
	AppendEvent(ctx context.Context, requestID string, evt domain.Event) (EventRecord, error)
}

// Store persists round state.
type Store interface {
	// WithinTx runs fn in a serialized transaction, committing only when fn
	// returns nil.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	GetRound(ctx context.Context) (domain.Round, error)
	ListEvents(ctx context.Context, query EventQuery) ([]EventRecord, error)
	Balance(ctx context.Context, account domain.Identity) (uint64, error)
	// Credit mints value into an account and returns the new balance.
	Credit(ctx context.Context, account domain.Identity, amount uint64) (uint64, error)
	VerifyJournal(ctx context.Context) (JournalReport, error)
}
