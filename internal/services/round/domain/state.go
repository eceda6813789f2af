package domain

// Round is the single persistent competition record.
//
// Deadline is a unix timestamp in seconds; zero means no round is in progress.
// Winner and Score carry over a claim unless Config.ResetWinnerOnClaim is set.
type Round struct {
	Initialized bool
	Paused      bool
	Admin       Identity
	Winner      Identity
	Score       uint16
	Deadline    int64
	Pool        uint64
	Commission  uint64
}

// Obligations returns pool + commission, the least value custody must hold.
func (r Round) Obligations() (uint64, error) {
	return addAmount(r.Pool, r.Commission, "obligations")
}
