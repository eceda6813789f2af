package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/homerun/internal/services/round/domain"
	"github.com/louisbranch/homerun/internal/services/round/integrity"
	"github.com/louisbranch/homerun/internal/services/round/storage"
)

const eventColumns = `seq, request_id, event_type, actor, amount, submitted, winner, score,
	       deadline, pool, commission, paused, occurred_at,
	       event_hash, prev_hash, chain_hash, signature, signature_key_id`

func (t *txStore) AppendEvent(ctx context.Context, requestID string, evt domain.Event) (storage.EventRecord, error) {
	var (
		lastSeq   uint64
		prevChain string
	)
	err := t.q.QueryRowContext(ctx, `SELECT seq, chain_hash FROM round_events ORDER BY seq DESC LIMIT 1`).Scan(&lastSeq, &prevChain)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return storage.EventRecord{}, fmt.Errorf("load journal head: %w", err)
	}

	record := storage.EventRecord{
		Seq:       lastSeq + 1,
		RequestID: strings.TrimSpace(requestID),
		Event:     evt,
		PrevHash:  prevChain,
	}
	if record.Hash, err = integrity.EventHash(record.Seq, record.RequestID, evt); err != nil {
		return storage.EventRecord{}, fmt.Errorf("hash event: %w", err)
	}
	if record.ChainHash, err = integrity.ChainHash(record.Hash, prevChain); err != nil {
		return storage.EventRecord{}, fmt.Errorf("chain event: %w", err)
	}
	if record.Signature, record.SignatureKeyID, err = t.keyring.SignChainHash(journalName, record.ChainHash); err != nil {
		return storage.EventRecord{}, fmt.Errorf("sign event: %w", err)
	}

	_, err = t.q.ExecContext(
		ctx,
		`INSERT INTO round_events (`+eventColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(record.Seq),
		record.RequestID,
		string(evt.Type),
		string(evt.Actor),
		toStored(evt.Amount),
		int64(evt.Submitted),
		string(evt.Winner),
		int64(evt.Score),
		evt.Deadline,
		toStored(evt.Pool),
		toStored(evt.Commission),
		boolToInt(evt.Paused),
		evt.OccurredAt,
		record.Hash,
		record.PrevHash,
		record.ChainHash,
		record.Signature,
		record.SignatureKeyID,
	)
	if err != nil {
		return storage.EventRecord{}, fmt.Errorf("append event: %w", err)
	}
	return record, nil
}

// ListEvents returns one page of journal entries.
func (s *Store) ListEvents(ctx context.Context, query storage.EventQuery) ([]storage.EventRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if query.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	var (
		conditions []string
		params     []any
	)
	if query.AfterSeq > 0 {
		if query.Descending {
			conditions = append(conditions, "seq < ?")
		} else {
			conditions = append(conditions, "seq > ?")
		}
		params = append(params, int64(query.AfterSeq))
	}
	if clause := strings.TrimSpace(query.FilterClause); clause != "" {
		conditions = append(conditions, clause)
		params = append(params, query.FilterParams...)
	}

	sqlText := `SELECT ` + eventColumns + ` FROM round_events`
	if len(conditions) > 0 {
		sqlText += " WHERE " + strings.Join(conditions, " AND ")
	}
	if query.Descending {
		sqlText += " ORDER BY seq DESC"
	} else {
		sqlText += " ORDER BY seq ASC"
	}
	sqlText += " LIMIT ?"
	params = append(params, query.Limit)

	rows, err := s.sqlDB.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	records := make([]storage.EventRecord, 0, query.Limit)
	for rows.Next() {
		record, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return records, nil
}

// VerifyJournal recomputes every hash, chain link and signature in order.
func (s *Store) VerifyJournal(ctx context.Context) (storage.JournalReport, error) {
	if err := s.ready(ctx); err != nil {
		return storage.JournalReport{}, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+eventColumns+` FROM round_events ORDER BY seq ASC`)
	if err != nil {
		return storage.JournalReport{}, fmt.Errorf("verify journal: %w", err)
	}
	defer rows.Close()

	var report storage.JournalReport
	for rows.Next() {
		record, err := scanEvent(rows)
		if err != nil {
			return report, fmt.Errorf("verify journal: %w", err)
		}
		if err := verifyRecord(s.keyring, record, report); err != nil {
			return report, err
		}
		report.Entries++
		report.LastSeq = record.Seq
		report.ChainHead = record.ChainHash
	}
	if err := rows.Err(); err != nil {
		return report, fmt.Errorf("verify journal: %w", err)
	}
	return report, nil
}

func verifyRecord(keyring *integrity.Keyring, record storage.EventRecord, prev storage.JournalReport) error {
	corrupt := func(reason string) error {
		return fmt.Errorf("seq %d: %s: %w", record.Seq, reason, storage.ErrJournalCorrupt)
	}
	if record.Seq != prev.LastSeq+1 {
		return corrupt("sequence gap")
	}
	if record.PrevHash != prev.ChainHead {
		return corrupt("previous hash mismatch")
	}
	hash, err := integrity.EventHash(record.Seq, record.RequestID, record.Event)
	if err != nil || hash != record.Hash {
		return corrupt("event hash mismatch")
	}
	chain, err := integrity.ChainHash(record.Hash, record.PrevHash)
	if err != nil || chain != record.ChainHash {
		return corrupt("chain hash mismatch")
	}
	if err := keyring.VerifyChainHash(journalName, record.ChainHash, record.Signature, record.SignatureKeyID); err != nil {
		return corrupt(err.Error())
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (storage.EventRecord, error) {
	var (
		record     storage.EventRecord
		seq        int64
		eventType  string
		actor      string
		amount     int64
		submitted  int64
		winner     string
		score      int64
		pool       int64
		commission int64
		paused     int64
	)
	err := row.Scan(
		&seq,
		&record.RequestID,
		&eventType,
		&actor,
		&amount,
		&submitted,
		&winner,
		&score,
		&record.Event.Deadline,
		&pool,
		&commission,
		&paused,
		&record.Event.OccurredAt,
		&record.Hash,
		&record.PrevHash,
		&record.ChainHash,
		&record.Signature,
		&record.SignatureKeyID,
	)
	if err != nil {
		return storage.EventRecord{}, err
	}
	record.Seq = uint64(seq)
	record.Event.Type = domain.EventType(eventType)
	record.Event.Actor = domain.Identity(actor)
	record.Event.Amount = fromStored(amount)
	record.Event.Submitted = uint16(submitted)
	record.Event.Winner = domain.Identity(winner)
	record.Event.Score = uint16(score)
	record.Event.Pool = fromStored(pool)
	record.Event.Commission = fromStored(commission)
	record.Event.Paused = paused != 0
	return record, nil
}
