// Package round implements homerun.round.v1.RoundService on top of the
// round engine.
package round

import (
	"context"
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
	grpcmeta "github.com/louisbranch/homerun/internal/services/round/api/grpc/metadata"
	"github.com/louisbranch/homerun/internal/services/round/api/roundv1"
	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/engine"
	"github.com/louisbranch/homerun/internal/services/round/storage"
)

// Service serves round commands and reads.
type Service struct {
	roundv1.UnimplementedRoundServiceServer
	handler *engine.Handler
	store   storage.Store
}

// NewService wires the service to the engine and its store.
func NewService(handler *engine.Handler, store storage.Store) (*Service, error) {
	if handler == nil {
		return nil, fmt.Errorf("round handler is required")
	}
	if store == nil {
		return nil, fmt.Errorf("round store is required")
	}
	return &Service{handler: handler, store: store}, nil
}

// Initialize creates the round record with the caller as admin.
func (s *Service) Initialize(ctx context.Context, _ *roundv1.CommandRequest) (*roundv1.CommandResponse, error) {
	return s.execute(ctx, domain.CommandInitialize, 0)
}

// Play pays the entry fee.
func (s *Service) Play(ctx context.Context, _ *roundv1.CommandRequest) (*roundv1.CommandResponse, error) {
	return s.execute(ctx, domain.CommandPlay, 0)
}

// Score submits a score for the running round.
func (s *Service) Score(ctx context.Context, in *roundv1.ScoreRequest) (*roundv1.CommandResponse, error) {
	if in == nil {
		in = &roundv1.ScoreRequest{}
	}
	if in.Value < 0 || in.Value > math.MaxUint16 {
		err := apperrors.WithMetadata(apperrors.CodeScoreOutOfRange, "score is out of range", map[string]string{
			"Max":   strconv.Itoa(math.MaxUint16),
			"Value": strconv.FormatInt(in.Value, 10),
		})
		return nil, apperrors.HandleError(err, grpcmeta.AcceptLanguageFromContext(ctx))
	}
	return s.execute(ctx, domain.CommandScore, uint16(in.Value))
}

// Claim pays the pool to the caller once the round is over.
func (s *Service) Claim(ctx context.Context, _ *roundv1.CommandRequest) (*roundv1.CommandResponse, error) {
	return s.execute(ctx, domain.CommandClaim, 0)
}

// Pause stops play and scoring.
func (s *Service) Pause(ctx context.Context, _ *roundv1.CommandRequest) (*roundv1.CommandResponse, error) {
	return s.execute(ctx, domain.CommandPause, 0)
}

// Resume reverses Pause.
func (s *Service) Resume(ctx context.Context, _ *roundv1.CommandRequest) (*roundv1.CommandResponse, error) {
	return s.execute(ctx, domain.CommandResume, 0)
}

// Profit withdraws the accrued commission to the admin.
func (s *Service) Profit(ctx context.Context, _ *roundv1.CommandRequest) (*roundv1.CommandResponse, error) {
	return s.execute(ctx, domain.CommandProfit, 0)
}

// Kill destroys a paused, drained round.
func (s *Service) Kill(ctx context.Context, _ *roundv1.CommandRequest) (*roundv1.CommandResponse, error) {
	return s.execute(ctx, domain.CommandKill, 0)
}

func (s *Service) execute(ctx context.Context, typ domain.CommandType, score uint16) (*roundv1.CommandResponse, error) {
	locale := grpcmeta.AcceptLanguageFromContext(ctx)
	caller, ok := grpcmeta.CallerFromContext(ctx)
	if !ok {
		return nil, apperrors.HandleError(apperrors.New(apperrors.CodeCallerRequired, "caller identity is required"), locale)
	}

	result, err := s.handler.Execute(ctx, engine.Request{
		Type:      typ,
		Caller:    caller,
		Score:     score,
		RequestID: grpcmeta.RequestIDFromContext(ctx),
	})
	if err != nil {
		return nil, apperrors.HandleError(err, locale)
	}

	resp := &roundv1.CommandResponse{
		Moved:    result.Moved,
		EventSeq: result.Event.Seq,
		Closed:   result.Closed,
	}
	if !result.Closed {
		resp.Round = roundToProto(result.Round, s.handler.Config())
	}
	return resp, nil
}

// GetRound returns the record with its derived phase and custody balance.
func (s *Service) GetRound(ctx context.Context, _ *roundv1.GetRoundRequest) (*roundv1.GetRoundResponse, error) {
	st, err := s.handler.Status(ctx)
	if err != nil {
		return nil, apperrors.HandleError(err, grpcmeta.AcceptLanguageFromContext(ctx))
	}
	return &roundv1.GetRoundResponse{Round: statusToProto(st, s.handler.Config())}, nil
}

// GetBalance returns one ledger balance. An empty account reads the caller's.
func (s *Service) GetBalance(ctx context.Context, in *roundv1.GetBalanceRequest) (*roundv1.GetBalanceResponse, error) {
	locale := grpcmeta.AcceptLanguageFromContext(ctx)
	account, err := balanceAccount(ctx, in)
	if err != nil {
		return nil, apperrors.HandleError(err, locale)
	}
	balance, err := s.store.Balance(ctx, account)
	if err != nil {
		return nil, apperrors.HandleError(err, locale)
	}
	return &roundv1.GetBalanceResponse{Account: account.String(), Balance: balance}, nil
}

func balanceAccount(ctx context.Context, in *roundv1.GetBalanceRequest) (domain.Identity, error) {
	if in == nil || in.Account == "" {
		caller, ok := grpcmeta.CallerFromContext(ctx)
		if !ok {
			return "", apperrors.New(apperrors.CodeCallerRequired, "account or caller identity is required")
		}
		return caller, nil
	}
	if domain.Identity(in.Account) == domain.CustodyAccount {
		return domain.CustodyAccount, nil
	}
	return domain.ParseIdentity(in.Account)
}
