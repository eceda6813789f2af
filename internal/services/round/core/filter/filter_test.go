package filter

import (
	"reflect"
	"testing"
)

func TestParseEventFilter_TypeEquals(t *testing.T) {
	cond, err := ParseEventFilter(`type = "round.played"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "event_type = ?" {
		t.Fatalf("Clause = %q, want %q", cond.Clause, "event_type = ?")
	}
	if !reflect.DeepEqual(cond.Params, []any{"round.played"}) {
		t.Fatalf("Params = %v", cond.Params)
	}
}

func TestParseEventFilter_Empty(t *testing.T) {
	cond, err := ParseEventFilter(" ")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "" || cond.Params != nil {
		t.Fatalf("expected empty condition, got %+v", cond)
	}
}

func TestParseEventFilter_AndOr(t *testing.T) {
	cond, err := ParseEventFilter(`type = "round.scored" AND actor = "alice"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(event_type = ? AND actor = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{"round.scored", "alice"}) {
		t.Fatalf("Params = %v", cond.Params)
	}

	cond, err = ParseEventFilter(`actor = "alice" OR actor = "bob"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(actor = ? OR actor = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
}

func TestParseEventFilter_NumericAndTimestamp(t *testing.T) {
	cond, err := ParseEventFilter(`score > 100`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "score > ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{int64(100)}) {
		t.Fatalf("Params = %v", cond.Params)
	}

	cond, err = ParseEventFilter(`ts >= timestamp("2025-01-01T00:00:00Z")`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "occurred_at >= ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{int64(1735689600)}) {
		t.Fatalf("Params = %v", cond.Params)
	}
}

func TestParseEventFilter_InvalidField(t *testing.T) {
	if _, err := ParseEventFilter(`pool = "1"`); err == nil {
		t.Fatal("expected error for undeclared field")
	}
}

func TestParseEventFilter_Malformed(t *testing.T) {
	if _, err := ParseEventFilter(`type = `); err == nil {
		t.Fatal("expected parse error")
	}
}
