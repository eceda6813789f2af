// Package engine executes round commands against storage.
//
// Execute is the only write path: one storage transaction loads the record,
// asks the domain for a decision, moves value through the ledger, persists or
// destroys the record, journals the outcome and commits. Any error rolls the
// whole transaction back.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/storage"
)

// Request is one caller invocation.
type Request struct {
	Type   domain.CommandType
	Caller domain.Identity
	Score  uint16
	// RequestID correlates the journal entry with transport logs.
	RequestID string
}

// Result describes a committed command.
type Result struct {
	Round  domain.Round
	Closed bool
	// Moved is the value transferred by the command, if any.
	Moved uint64
	Event storage.EventRecord
}

// Status is the read model of the round at one clock reading.
type Status struct {
	Round       domain.Round
	Phase       domain.Phase
	GraceEndsAt int64
	Custody     uint64
	Now         int64
}

// Handler runs round commands.
type Handler struct {
	store  storage.Store
	config domain.Config
	clock  func() time.Time
}

// NewHandler builds a handler; clock defaults to time.Now.
func NewHandler(store storage.Store, cfg domain.Config, clock func() time.Time) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("round store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("round config: %w", err)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Handler{store: store, config: cfg, clock: clock}, nil
}

// Config returns the deployment configuration.
func (h *Handler) Config() domain.Config {
	return h.config
}

// Execute applies one command atomically.
func (h *Handler) Execute(ctx context.Context, req Request) (Result, error) {
	cmd := domain.Command{
		Type:   req.Type,
		Caller: req.Caller,
		Score:  req.Score,
		Now:    h.clock().Unix(),
	}

	var result Result
	err := h.store.WithinTx(ctx, func(tx storage.Tx) error {
		state, exists, err := tx.LoadRound(ctx)
		if err != nil {
			return err
		}
		decision, err := domain.Decide(state, exists, cmd, h.config)
		if err != nil {
			return err
		}

		moved, err := applyTransfers(ctx, tx, decision.Transfers)
		if err != nil {
			return err
		}
		evt := decision.Event
		evt.Amount = moved

		if decision.Closed {
			if err := tx.DeleteRound(ctx); err != nil {
				return fmt.Errorf("close round: %w", err)
			}
		} else {
			if err := tx.SaveRound(ctx, decision.Round); err != nil {
				return err
			}
			if err := checkCustody(ctx, tx, decision.Round); err != nil {
				return err
			}
		}

		record, err := tx.AppendEvent(ctx, req.RequestID, evt)
		if err != nil {
			return err
		}
		result = Result{Round: decision.Round, Closed: decision.Closed, Moved: moved, Event: record}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	log.Printf("round %s by %s committed seq=%d moved=%d pool=%d commission=%d",
		req.Type, req.Caller, result.Event.Seq, result.Moved, result.Round.Pool, result.Round.Commission)
	return result, nil
}

// Status reports the current record, its phase and custody balance, read
// from one snapshot.
func (h *Handler) Status(ctx context.Context) (Status, error) {
	var (
		round   domain.Round
		custody uint64
	)
	err := h.store.WithinTx(ctx, func(tx storage.Tx) error {
		loaded, exists, err := tx.LoadRound(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.New(apperrors.CodeRoundNotInitialized, "round is not initialized")
		}
		balance, err := tx.Balance(ctx, domain.CustodyAccount)
		if err != nil {
			return err
		}
		round, custody = loaded, balance
		return nil
	})
	if err != nil {
		return Status{}, err
	}
	now := h.clock().Unix()
	phase, err := domain.PhaseAt(round, now, h.config.DurationSeconds())
	if err != nil {
		return Status{}, err
	}
	graceEnd, err := domain.GraceEndsAt(round, h.config.DurationSeconds())
	if err != nil {
		return Status{}, err
	}
	return Status{Round: round, Phase: phase, GraceEndsAt: graceEnd, Custody: custody, Now: now}, nil
}

// applyTransfers moves value in order and returns the total moved.
func applyTransfers(ctx context.Context, tx storage.Tx, transfers []domain.Transfer) (uint64, error) {
	var moved uint64
	for _, transfer := range transfers {
		amount := transfer.Amount
		if transfer.Sweep {
			swept, err := tx.Balance(ctx, transfer.From)
			if err != nil {
				return 0, err
			}
			amount = swept
		}
		if err := tx.Transfer(ctx, transfer.From, transfer.To, amount); err != nil {
			return 0, transferError(transfer, amount, err)
		}
		moved += amount
	}
	return moved, nil
}

func transferError(transfer domain.Transfer, amount uint64, err error) error {
	metadata := map[string]string{
		"Account": string(transfer.From),
		"Amount":  strconv.FormatUint(amount, 10),
	}
	switch {
	case errors.Is(err, storage.ErrInsufficientFunds):
		return apperrors.WrapWithMetadata(apperrors.CodeInsufficientFunds, "transfer source lacks balance", metadata, err)
	case errors.Is(err, storage.ErrOverflow):
		metadata["Field"] = "balance of " + string(transfer.To)
		return apperrors.WrapWithMetadata(apperrors.CodeArithmeticOverflow, "transfer overflows destination", metadata, err)
	default:
		return err
	}
}

// checkCustody enforces custody >= pool + commission after every write.
func checkCustody(ctx context.Context, tx storage.Tx, round domain.Round) error {
	owed, err := round.Obligations()
	if err != nil {
		return err
	}
	custody, err := tx.Balance(ctx, domain.CustodyAccount)
	if err != nil {
		return err
	}
	if custody < owed {
		return fmt.Errorf("custody balance %d below obligations %d", custody, owed)
	}
	return nil
}
