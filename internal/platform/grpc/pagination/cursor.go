package pagination

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// Cursor is the decoded state behind a page token.
type Cursor struct {
	// Seq is the last sequence number returned on the previous page.
	Seq uint64 `json:"seq"`
	// FilterHash invalidates the token if the filter changes.
	FilterHash string `json:"filter_hash,omitempty"`
	// OrderHash invalidates the token if order_by changes.
	OrderHash string `json:"order_hash,omitempty"`
}

// ErrTokenMismatch reports a token minted for a different filter or order.
var ErrTokenMismatch = errors.New("page token does not match request")

// NewCursor creates a next-page cursor after lastSeq.
func NewCursor(lastSeq uint64, filter, orderBy string) Cursor {
	return Cursor{Seq: lastSeq, FilterHash: hashValue(filter), OrderHash: hashValue(orderBy)}
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode decodes a page token.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.Seq == 0 {
		return Cursor{}, fmt.Errorf("cursor seq is required")
	}
	return c, nil
}

// DecodeFor decodes a token and checks it was minted for the same filter
// and order.
func DecodeFor(token, filter, orderBy string) (Cursor, error) {
	c, err := Decode(token)
	if err != nil {
		return Cursor{}, err
	}
	if c.FilterHash != hashValue(filter) || c.OrderHash != hashValue(orderBy) {
		return Cursor{}, ErrTokenMismatch
	}
	return c, nil
}

func hashValue(value string) string {
	if value == "" {
		return ""
	}
	h := sha256.Sum256([]byte(value))
	return hex.EncodeToString(h[:8])
}
