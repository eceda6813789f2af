package domain

import (
	"math"
	"strconv"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
)

// ErrOverflow is matched with errors.Is against any overflow rejection.
var ErrOverflow = apperrors.New(apperrors.CodeArithmeticOverflow, "arithmetic overflow")

func overflow(field string) error {
	return apperrors.WithMetadata(apperrors.CodeArithmeticOverflow, "arithmetic overflow computing "+field, map[string]string{
		"Field": field,
	})
}

func addAmount(a, b uint64, field string) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, overflow(field)
	}
	return a + b, nil
}

func addSeconds(ts, seconds int64, field string) (int64, error) {
	if seconds > 0 && ts > math.MaxInt64-seconds {
		return 0, overflow(field)
	}
	if seconds < 0 && ts < math.MinInt64-seconds {
		return 0, overflow(field)
	}
	return ts + seconds, nil
}

func itoa(v int) string { return strconv.Itoa(v) }
