package domain

// Phase is the round stage derived from the deadline and the clock.
type Phase int

const (
	// PhaseDormant means no round is in progress.
	PhaseDormant Phase = iota
	// PhasePlaying accepts plays and scores until the deadline.
	PhasePlaying
	// PhaseGraceClaim lets only the winner claim.
	PhaseGraceClaim
	// PhaseOpenClaim lets anyone claim.
	PhaseOpenClaim
)

// String returns the phase label used on the wire and in logs.
func (p Phase) String() string {
	switch p {
	case PhaseDormant:
		return "dormant"
	case PhasePlaying:
		return "playing"
	case PhaseGraceClaim:
		return "grace_claim"
	case PhaseOpenClaim:
		return "open_claim"
	default:
		return "unknown"
	}
}

// PhaseAt derives the phase of round at now for a round of durationSeconds.
func PhaseAt(round Round, now, durationSeconds int64) (Phase, error) {
	if round.Deadline == 0 {
		return PhaseDormant, nil
	}
	if now <= round.Deadline {
		return PhasePlaying, nil
	}
	graceEnd, err := GraceEndsAt(round, durationSeconds)
	if err != nil {
		return PhaseDormant, err
	}
	if now <= graceEnd {
		return PhaseGraceClaim, nil
	}
	return PhaseOpenClaim, nil
}

// GraceEndsAt returns the last instant of the winner-only claim window, or
// zero when no round is in progress.
func GraceEndsAt(round Round, durationSeconds int64) (int64, error) {
	if round.Deadline == 0 {
		return 0, nil
	}
	return addSeconds(round.Deadline, durationSeconds, "grace window end")
}
