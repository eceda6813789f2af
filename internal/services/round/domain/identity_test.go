package domain

import (
	"strings"
	"testing"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
)

func TestParseIdentity(t *testing.T) {
	id, err := ParseIdentity("  alice  ")
	if err != nil {
		t.Fatalf("parse identity: %v", err)
	}
	if id != "alice" {
		t.Fatalf("identity = %q, want alice", id)
	}
}

func TestParseIdentityRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "   "},
		{name: "too long", raw: strings.Repeat("a", MaxIdentityLength+1)},
		{name: "inner space", raw: "al ice"},
		{name: "non ascii", raw: "álice"},
		{name: "control", raw: "al\x01ice"},
		{name: "reserved namespace", raw: string(CustodyAccount)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseIdentity(tc.raw)
			if apperrors.GetCode(err) != apperrors.CodeIdentityInvalid {
				t.Fatalf("err = %v, want %s", err, apperrors.CodeIdentityInvalid)
			}
		})
	}
}

func TestParseIdentityAcceptsMaxLength(t *testing.T) {
	if _, err := ParseIdentity(strings.Repeat("a", MaxIdentityLength)); err != nil {
		t.Fatalf("parse identity: %v", err)
	}
}
