package roundv1

// CommandRequest carries no fields; the caller identity travels in metadata.
type CommandRequest struct{}

// ScoreRequest submits a score. Values above 65535 are rejected.
type ScoreRequest struct {
	Value int64 `json:"value"`
}

// CommandResponse reports a committed command.
type CommandResponse struct {
	// Round is the record after the command; nil once the round is killed.
	Round *Round `json:"round,omitempty"`
	// Moved is the value transferred by the command.
	Moved    uint64 `json:"moved,string"`
	EventSeq uint64 `json:"event_seq,string"`
	Closed   bool   `json:"closed,omitempty"`
}

// Round is the round record plus derived read-model fields.
type Round struct {
	Initialized bool   `json:"initialized"`
	Paused      bool   `json:"paused"`
	Admin       string `json:"admin"`
	Winner      string `json:"winner,omitempty"`
	Score       uint32 `json:"score"`
	// Deadline is a unix timestamp in seconds; zero means dormant.
	Deadline   int64  `json:"deadline"`
	Pool       uint64 `json:"pool,string"`
	Commission uint64 `json:"commission,string"`

	Phase       string `json:"phase,omitempty"`
	GraceEndsAt int64  `json:"grace_ends_at,omitempty"`
	Custody     uint64 `json:"custody,string"`
	Now         int64  `json:"now,omitempty"`

	Fee                  uint64 `json:"fee,string"`
	FeeCommission        uint64 `json:"fee_commission,string"`
	RoundDurationSeconds int64  `json:"round_duration_seconds"`
}

// GetRoundRequest reads the round record.
type GetRoundRequest struct{}

// GetRoundResponse returns the round record.
type GetRoundResponse struct {
	Round *Round `json:"round"`
}

// ListRoundEventsRequest pages the operation journal.
type ListRoundEventsRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	// Filter is an AIP-160 expression over seq, type, actor, winner, score
	// and ts.
	Filter string `json:"filter,omitempty"`
	// OrderBy is "seq" (default) or "seq desc".
	OrderBy string `json:"order_by,omitempty"`
}

// RoundEvent is one journal entry.
type RoundEvent struct {
	Seq        uint64 `json:"seq,string"`
	RequestID  string `json:"request_id,omitempty"`
	Type       string `json:"type"`
	Actor      string `json:"actor"`
	Amount     uint64 `json:"amount,string"`
	Submitted  uint32 `json:"submitted,omitempty"`
	Winner     string `json:"winner,omitempty"`
	Score      uint32 `json:"score"`
	Deadline   int64  `json:"deadline"`
	Pool       uint64 `json:"pool,string"`
	Commission uint64 `json:"commission,string"`
	Paused     bool   `json:"paused"`
	OccurredAt int64  `json:"occurred_at"`

	Hash           string `json:"hash"`
	ChainHash      string `json:"chain_hash"`
	Signature      string `json:"signature"`
	SignatureKeyID string `json:"signature_key_id"`
}

// ListRoundEventsResponse is one page of journal entries.
type ListRoundEventsResponse struct {
	Events        []*RoundEvent `json:"events"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

// GetBalanceRequest reads a ledger account.
type GetBalanceRequest struct {
	Account string `json:"account"`
}

// GetBalanceResponse returns a ledger balance.
type GetBalanceResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance,string"`
}
