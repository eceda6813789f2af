package domain

import (
	"strings"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
)

const (
	// MaxIdentityLength bounds caller identities in bytes.
	MaxIdentityLength = 128

	reservedPrefix = "round:"
)

// Identity names a caller or a ledger account.
type Identity string

// CustodyAccount is the ledger account holding value owed by the round record.
const CustodyAccount Identity = reservedPrefix + "custody"

// String returns the identity text.
func (id Identity) String() string { return string(id) }

// IsZero reports whether the identity is unset.
func (id Identity) IsZero() bool { return id == "" }

// IsReserved reports whether the identity belongs to the round's own
// account namespace.
func (id Identity) IsReserved() bool { return strings.HasPrefix(string(id), reservedPrefix) }

// ParseIdentity validates a caller-supplied identity.
//
// Identities are printable ASCII without spaces and may not claim the
// reserved round account namespace.
func ParseIdentity(raw string) (Identity, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", apperrors.New(apperrors.CodeIdentityInvalid, "identity is required")
	}
	if len(value) > MaxIdentityLength {
		return "", apperrors.WithMetadata(apperrors.CodeIdentityInvalid, "identity is too long", map[string]string{
			"Length": itoa(len(value)),
		})
	}
	for i := 0; i < len(value); i++ {
		if c := value[i]; c <= ' ' || c > '~' {
			return "", apperrors.New(apperrors.CodeIdentityInvalid, "identity must be printable ascii without spaces")
		}
	}
	if Identity(value).IsReserved() {
		return "", apperrors.New(apperrors.CodeIdentityInvalid, "identity uses the reserved round namespace")
	}
	return Identity(value), nil
}
