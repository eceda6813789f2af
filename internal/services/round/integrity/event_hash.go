package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/louisbranch/homerun/internal/services/round/domain"
)

// envelope fixes the hashed field order of a journal entry.
type envelope struct {
	Seq        uint64 `json:"seq"`
	Type       string `json:"type"`
	Actor      string `json:"actor"`
	Amount     string `json:"amount"`
	Submitted  uint16 `json:"submitted"`
	Winner     string `json:"winner"`
	Score      uint16 `json:"score"`
	Deadline   int64  `json:"deadline"`
	Pool       string `json:"pool"`
	Commission string `json:"commission"`
	Paused     bool   `json:"paused"`
	OccurredAt int64  `json:"occurred_at"`
	RequestID  string `json:"request_id,omitempty"`
}

func newEnvelope(seq uint64, requestID string, evt domain.Event) envelope {
	return envelope{
		Seq:        seq,
		Type:       string(evt.Type),
		Actor:      string(evt.Actor),
		Amount:     strconv.FormatUint(evt.Amount, 10),
		Submitted:  evt.Submitted,
		Winner:     string(evt.Winner),
		Score:      evt.Score,
		Deadline:   evt.Deadline,
		Pool:       strconv.FormatUint(evt.Pool, 10),
		Commission: strconv.FormatUint(evt.Commission, 10),
		Paused:     evt.Paused,
		OccurredAt: evt.OccurredAt,
		RequestID:  requestID,
	}
}

// EventHash computes the content hash of one journal entry.
func EventHash(seq uint64, requestID string, evt domain.Event) (string, error) {
	if seq == 0 {
		return "", fmt.Errorf("event sequence is required")
	}
	if evt.Type == "" {
		return "", fmt.Errorf("event type is required")
	}
	data, err := json.Marshal(newEnvelope(seq, requestID, evt))
	if err != nil {
		return "", fmt.Errorf("marshal event envelope: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ChainHash links an entry's content hash to its predecessor's chain hash.
// The first entry of a journal has an empty prevHash.
func ChainHash(eventHash, prevHash string) (string, error) {
	if eventHash == "" {
		return "", fmt.Errorf("event hash is required")
	}
	sum := sha256.Sum256([]byte(prevHash + "\n" + eventHash))
	return hex.EncodeToString(sum[:]), nil
}
