package domain

import (
	"math"
	"testing"
	"time"
)

func TestConfigSplit(t *testing.T) {
	cfg := Config{Fee: 1_000_000_000}
	if cfg.Commission() != 100_000_000 {
		t.Fatalf("commission = %d, want 100000000", cfg.Commission())
	}
	if cfg.PoolShare() != 900_000_000 {
		t.Fatalf("pool share = %d, want 900000000", cfg.PoolShare())
	}

	tiny := Config{Fee: 9}
	if tiny.Commission() != 0 || tiny.PoolShare() != 9 {
		t.Fatalf("split of 9 = %d/%d, want 0/9", tiny.Commission(), tiny.PoolShare())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Fee: 1, RoundDuration: 4 * time.Second}},
		{name: "zero fee", cfg: Config{RoundDuration: time.Hour}, wantErr: true},
		{name: "short duration", cfg: Config{Fee: 1, RoundDuration: 500 * time.Millisecond}, wantErr: true},
		{name: "fractional duration", cfg: Config{Fee: 1, RoundDuration: 1500 * time.Millisecond}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("validate err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRoundObligations(t *testing.T) {
	total, err := Round{Pool: 9, Commission: 1}.Obligations()
	if err != nil || total != 10 {
		t.Fatalf("obligations = %d, %v; want 10", total, err)
	}
	if _, err := (Round{Pool: math.MaxUint64, Commission: 1}).Obligations(); err == nil {
		t.Fatal("expected overflow")
	}
}
