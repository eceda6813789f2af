package domain

import (
	"strconv"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
)

// Decision is the accepted outcome of one command.
type Decision struct {
	// Round is the record after the command. Ignored when Closed is set.
	Round     Round
	Transfers []Transfer
	Event     Event
	// Closed means the record is destroyed.
	Closed bool
}

// Decide applies cmd to state and returns the resulting decision.
//
// exists reports whether a round record is stored. Every rejection is an
// *apperrors.Error; preconditions are checked in a fixed order per command so
// the first violated rule determines the code.
func Decide(state Round, exists bool, cmd Command, cfg Config) (Decision, error) {
	if err := cmd.Validate(); err != nil {
		return Decision{}, err
	}
	if cmd.Type == CommandInitialize {
		return decideInitialize(state, exists, cmd, cfg)
	}
	if !exists || !state.Initialized {
		return Decision{}, apperrors.New(apperrors.CodeRoundNotInitialized, "round is not initialized")
	}

	switch cmd.Type {
	case CommandPlay:
		return decidePlay(state, cmd, cfg)
	case CommandScore:
		return decideScore(state, cmd)
	case CommandClaim:
		return decideClaim(state, cmd, cfg)
	case CommandPause:
		return decidePause(state, cmd)
	case CommandResume:
		return decideResume(state, cmd)
	case CommandProfit:
		return decideProfit(state, cmd)
	default:
		return decideKill(state, cmd)
	}
}

func decideInitialize(state Round, exists bool, cmd Command, cfg Config) (Decision, error) {
	if exists && state.Initialized {
		return Decision{}, apperrors.New(apperrors.CodeRoundAlreadyInitialized, "round already initialized")
	}
	next := Round{Initialized: true, Admin: cmd.Caller}
	var transfers []Transfer
	if cfg.RentReserve > 0 {
		transfers = append(transfers, Transfer{From: cmd.Caller, To: CustodyAccount, Amount: cfg.RentReserve})
	}
	return Decision{
		Round:     next,
		Transfers: transfers,
		Event:     newEvent(EventInitialized, cmd, next, cfg.RentReserve),
	}, nil
}

func decidePlay(state Round, cmd Command, cfg Config) (Decision, error) {
	if state.Paused {
		return Decision{}, apperrors.New(apperrors.CodeGamePaused, "round is paused")
	}
	if state.Deadline != 0 && cmd.Now > state.Deadline {
		return Decision{}, playInClaiming(state.Deadline)
	}

	next := state
	if next.Deadline == 0 {
		deadline, err := addSeconds(cmd.Now, cfg.DurationSeconds(), "deadline")
		if err != nil {
			return Decision{}, err
		}
		next.Deadline = deadline
	}
	if next.Deadline < cmd.Now {
		return Decision{}, playInClaiming(next.Deadline)
	}

	var err error
	if next.Pool, err = addAmount(next.Pool, cfg.PoolShare(), "pool"); err != nil {
		return Decision{}, err
	}
	if next.Commission, err = addAmount(next.Commission, cfg.Commission(), "commission"); err != nil {
		return Decision{}, err
	}

	return Decision{
		Round:     next,
		Transfers: []Transfer{{From: cmd.Caller, To: CustodyAccount, Amount: cfg.Fee}},
		Event:     newEvent(EventPlayed, cmd, next, cfg.Fee),
	}, nil
}

func playInClaiming(deadline int64) error {
	return apperrors.WithMetadata(apperrors.CodePlayInClaimingPhase, "round deadline has passed", map[string]string{
		"Deadline": strconv.FormatInt(deadline, 10),
	})
}

func decideScore(state Round, cmd Command) (Decision, error) {
	if state.Paused {
		return Decision{}, apperrors.New(apperrors.CodeGamePaused, "round is paused")
	}
	if state.Deadline == 0 {
		return Decision{}, apperrors.New(apperrors.CodeScoreWithoutRound, "no round in progress")
	}
	if cmd.Now > state.Deadline {
		return Decision{}, apperrors.New(apperrors.CodeScoreInClaimingPhase, "round deadline has passed")
	}

	next := state
	if cmd.Score > next.Score {
		next.Score = cmd.Score
		next.Winner = cmd.Caller
	}
	return Decision{
		Round: next,
		Event: newEvent(EventScored, cmd, next, 0),
	}, nil
}

func decideClaim(state Round, cmd Command, cfg Config) (Decision, error) {
	if state.Deadline == 0 {
		return Decision{}, apperrors.New(apperrors.CodeClaimWithoutRound, "no round to claim")
	}
	if state.Pool == 0 {
		return Decision{}, apperrors.New(apperrors.CodePoolEmpty, "pool is empty")
	}
	if cmd.Now < state.Deadline {
		return Decision{}, apperrors.New(apperrors.CodeClaimInPlayingPhase, "round is still playing")
	}
	graceEnd, err := GraceEndsAt(state, cfg.DurationSeconds())
	if err != nil {
		return Decision{}, err
	}
	if cmd.Now <= graceEnd && cmd.Caller != state.Winner {
		return Decision{}, apperrors.WithMetadata(apperrors.CodeNotWinnerInGracePeriod, "only the winner may claim during the grace window", map[string]string{
			"GraceEndsAt": strconv.FormatInt(graceEnd, 10),
		})
	}

	amount := state.Pool
	next := state
	next.Pool = 0
	next.Deadline = 0
	if cfg.ResetWinnerOnClaim {
		next.Winner = ""
		next.Score = 0
	}
	return Decision{
		Round:     next,
		Transfers: []Transfer{{From: CustodyAccount, To: cmd.Caller, Amount: amount}},
		Event:     newEvent(EventClaimed, cmd, next, amount),
	}, nil
}

func requireAdmin(state Round, caller Identity) error {
	if caller != state.Admin {
		return apperrors.New(apperrors.CodeNotAdmin, "caller is not the round admin")
	}
	return nil
}

func decidePause(state Round, cmd Command) (Decision, error) {
	if err := requireAdmin(state, cmd.Caller); err != nil {
		return Decision{}, err
	}
	if state.Paused {
		return Decision{}, apperrors.New(apperrors.CodeGamePaused, "round is already paused")
	}
	next := state
	next.Paused = true
	return Decision{Round: next, Event: newEvent(EventPaused, cmd, next, 0)}, nil
}

func decideResume(state Round, cmd Command) (Decision, error) {
	if err := requireAdmin(state, cmd.Caller); err != nil {
		return Decision{}, err
	}
	if !state.Paused {
		return Decision{}, apperrors.New(apperrors.CodeGameNotPaused, "round is not paused")
	}
	next := state
	next.Paused = false
	return Decision{Round: next, Event: newEvent(EventResumed, cmd, next, 0)}, nil
}

func decideProfit(state Round, cmd Command) (Decision, error) {
	if err := requireAdmin(state, cmd.Caller); err != nil {
		return Decision{}, err
	}
	if state.Commission == 0 {
		return Decision{}, apperrors.New(apperrors.CodeProfitEmpty, "commission is empty")
	}
	amount := state.Commission
	next := state
	next.Commission = 0
	return Decision{
		Round:     next,
		Transfers: []Transfer{{From: CustodyAccount, To: state.Admin, Amount: amount}},
		Event:     newEvent(EventProfitTaken, cmd, next, amount),
	}, nil
}

func decideKill(state Round, cmd Command) (Decision, error) {
	if err := requireAdmin(state, cmd.Caller); err != nil {
		return Decision{}, err
	}
	if !state.Paused {
		return Decision{}, apperrors.New(apperrors.CodeKillBeforePausing, "round must be paused before kill")
	}
	if state.Pool != 0 {
		return Decision{}, apperrors.New(apperrors.CodeKillWithPool, "pool must be claimed before kill")
	}
	return Decision{
		Round:     state,
		Transfers: []Transfer{{From: CustodyAccount, To: state.Admin, Sweep: true}},
		Event:     newEvent(EventKilled, cmd, state, 0),
		Closed:    true,
	}, nil
}
