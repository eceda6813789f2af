package domain

// EventType labels a committed round command in the journal.
type EventType string

const (
	EventInitialized EventType = "round.initialized"
	EventPlayed      EventType = "round.played"
	EventScored      EventType = "round.scored"
	EventClaimed     EventType = "round.claimed"
	EventPaused      EventType = "round.paused"
	EventResumed     EventType = "round.resumed"
	EventProfitTaken EventType = "round.profit_taken"
	EventKilled      EventType = "round.killed"
)

// Event records one committed command and the round state it left behind.
type Event struct {
	Type  EventType
	Actor Identity
	// Amount is the value moved by the command, zero when none moved.
	Amount uint64
	// Submitted is the score value sent with a score command.
	Submitted  uint16
	Winner     Identity
	Score      uint16
	Deadline   int64
	Pool       uint64
	Commission uint64
	Paused     bool
	OccurredAt int64
}

func newEvent(typ EventType, cmd Command, after Round, amount uint64) Event {
	evt := Event{
		Type:       typ,
		Actor:      cmd.Caller,
		Amount:     amount,
		Winner:     after.Winner,
		Score:      after.Score,
		Deadline:   after.Deadline,
		Pool:       after.Pool,
		Commission: after.Commission,
		Paused:     after.Paused,
		OccurredAt: cmd.Now,
	}
	if cmd.Type == CommandScore {
		evt.Submitted = cmd.Score
	}
	return evt
}
