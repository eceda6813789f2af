package domain

import (
	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
)

// CommandType names one of the round operations.
type CommandType string

const (
	CommandInitialize CommandType = "initialize"
	CommandPlay       CommandType = "play"
	CommandScore      CommandType = "score"
	CommandClaim      CommandType = "claim"
	CommandPause      CommandType = "pause"
	CommandResume     CommandType = "resume"
	CommandProfit     CommandType = "profit"
	CommandKill       CommandType = "kill"
)

// CommandTypes lists every operation in declaration order.
var CommandTypes = []CommandType{
	CommandInitialize,
	CommandPlay,
	CommandScore,
	CommandClaim,
	CommandPause,
	CommandResume,
	CommandProfit,
	CommandKill,
}

// Command is one authenticated invocation against the round record.
type Command struct {
	Type   CommandType
	Caller Identity
	// Score is only read by CommandScore.
	Score uint16
	// Now is the clock reading for this invocation, in unix seconds.
	Now int64
}

// Validate checks the command envelope before any state is consulted.
func (c Command) Validate() error {
	switch c.Type {
	case CommandInitialize, CommandPlay, CommandScore, CommandClaim,
		CommandPause, CommandResume, CommandProfit, CommandKill:
	default:
		return apperrors.WithMetadata(apperrors.CodeCommandInvalid, "unsupported command", map[string]string{
			"Type": string(c.Type),
		})
	}
	if c.Caller.IsZero() {
		return apperrors.New(apperrors.CodeIdentityInvalid, "caller is required")
	}
	if c.Caller.IsReserved() {
		return apperrors.WithMetadata(apperrors.CodeIdentityInvalid, "caller uses the reserved round namespace", map[string]string{
			"Caller": c.Caller.String(),
		})
	}
	return nil
}

// Transfer moves native value between ledger accounts.
type Transfer struct {
	From   Identity
	To     Identity
	Amount uint64
	// Sweep moves the whole balance of From, whatever Amount says.
	Sweep bool
}
