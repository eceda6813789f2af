// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Lifecycle errors
	CodeRoundNotInitialized    Code = "ROUND_NOT_INITIALIZED"
	CodePlayInClaimingPhase    Code = "PLAY_IN_CLAIMING_PHASE"
	CodeScoreWithoutRound      Code = "SCORE_WITHOUT_ROUND"
	CodeScoreInClaimingPhase   Code = "SCORE_IN_CLAIMING_PHASE"
	CodeClaimWithoutRound      Code = "CLAIM_WITHOUT_ROUND"
	CodeClaimInPlayingPhase    Code = "CLAIM_IN_PLAYING_PHASE"
	CodeGamePaused             Code = "GAME_PAUSED"
	CodeGameNotPaused          Code = "GAME_NOT_PAUSED"
	CodeKillBeforePausing      Code = "KILL_BEFORE_PAUSING"
	CodeNotWinnerInGracePeriod Code = "NOT_WINNER_IN_GRACE_PERIOD"
	CodeNotAdmin               Code = "NOT_ADMIN"

	// Resource-state errors
	CodeRoundAlreadyInitialized Code = "ROUND_ALREADY_INITIALIZED"
	CodePoolEmpty               Code = "POOL_EMPTY"
	CodeProfitEmpty             Code = "PROFIT_EMPTY"
	CodeKillWithPool            Code = "KILL_WITH_POOL"
	CodeInsufficientFunds       Code = "INSUFFICIENT_FUNDS"

	// Arithmetic errors
	CodeArithmeticOverflow Code = "ARITHMETIC_OVERFLOW"

	// Input errors
	CodeIdentityInvalid  Code = "IDENTITY_INVALID"
	CodeCommandInvalid   Code = "COMMAND_INVALID"
	CodeScoreOutOfRange  Code = "SCORE_OUT_OF_RANGE"
	CodeFilterInvalid    Code = "FILTER_INVALID"
	CodePageTokenInvalid Code = "PAGE_TOKEN_INVALID"

	// Authentication errors
	CodeCallerRequired     Code = "CALLER_REQUIRED"
	CodeCallerTokenInvalid Code = "CALLER_TOKEN_INVALID"
	CodeCallerTokenExpired Code = "CALLER_TOKEN_EXPIRED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeIdentityInvalid,
		CodeCommandInvalid,
		CodeScoreOutOfRange,
		CodeFilterInvalid,
		CodePageTokenInvalid:
		return codes.InvalidArgument

	// Unauthenticated - caller identity missing or unverifiable
	case CodeCallerRequired,
		CodeCallerTokenInvalid,
		CodeCallerTokenExpired:
		return codes.Unauthenticated

	// FailedPrecondition - state doesn't allow operation
	case CodePlayInClaimingPhase,
		CodeScoreWithoutRound,
		CodeScoreInClaimingPhase,
		CodeClaimWithoutRound,
		CodeClaimInPlayingPhase,
		CodeGamePaused,
		CodeGameNotPaused,
		CodeKillBeforePausing,
		CodePoolEmpty,
		CodeProfitEmpty,
		CodeKillWithPool,
		CodeInsufficientFunds:
		return codes.FailedPrecondition

	// PermissionDenied - caller identity does not hold the required role
	case CodeNotAdmin,
		CodeNotWinnerInGracePeriod:
		return codes.PermissionDenied

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeRoundNotInitialized:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeRoundAlreadyInitialized:
		return codes.AlreadyExists

	// OutOfRange - checked arithmetic aborted the operation
	case CodeArithmeticOverflow:
		return codes.OutOfRange

	default:
		return codes.Internal
	}
}
