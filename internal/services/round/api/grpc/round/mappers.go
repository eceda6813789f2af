package round

import (
	"github.com/louisbranch/homerun/internal/services/round/api/roundv1"
	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/engine"
	"github.com/louisbranch/homerun/internal/services/round/storage"
)

func roundToProto(r domain.Round, cfg domain.Config) *roundv1.Round {
	return &roundv1.Round{
		Initialized:          r.Initialized,
		Paused:               r.Paused,
		Admin:                r.Admin.String(),
		Winner:               r.Winner.String(),
		Score:                uint32(r.Score),
		Deadline:             r.Deadline,
		Pool:                 r.Pool,
		Commission:           r.Commission,
		Fee:                  cfg.Fee,
		FeeCommission:        cfg.Commission(),
		RoundDurationSeconds: cfg.DurationSeconds(),
	}
}

func statusToProto(st engine.Status, cfg domain.Config) *roundv1.Round {
	out := roundToProto(st.Round, cfg)
	out.Phase = st.Phase.String()
	out.GraceEndsAt = st.GraceEndsAt
	out.Custody = st.Custody
	out.Now = st.Now
	return out
}

func eventToProto(record storage.EventRecord) *roundv1.RoundEvent {
	evt := record.Event
	return &roundv1.RoundEvent{
		Seq:            record.Seq,
		RequestID:      record.RequestID,
		Type:           string(evt.Type),
		Actor:          evt.Actor.String(),
		Amount:         evt.Amount,
		Submitted:      uint32(evt.Submitted),
		Winner:         evt.Winner.String(),
		Score:          uint32(evt.Score),
		Deadline:       evt.Deadline,
		Pool:           evt.Pool,
		Commission:     evt.Commission,
		Paused:         evt.Paused,
		OccurredAt:     evt.OccurredAt,
		Hash:           record.Hash,
		ChainHash:      record.ChainHash,
		Signature:      record.Signature,
		SignatureKeyID: record.SignatureKeyID,
	}
}
