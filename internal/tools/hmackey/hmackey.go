// Package hmackey generates journal signing keys for the round service.
package hmackey

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Config holds configuration for HMAC key generation.
type Config struct {
	Bytes int
	// KeyID switches the output to the rotation form
	// HOMERUN_ROUND_EVENT_HMAC_KEYS=<id>=<key>.
	KeyID string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Bytes: 32}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of random bytes (default: 32)")
	fs.StringVar(&cfg.KeyID, "key-id", "", "emit a rotation entry for this key id")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the key and writes it to out.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.Bytes <= 0 {
		return errors.New("bytes must be greater than zero")
	}
	if out == nil {
		return errors.New("output is required")
	}
	keyID := strings.TrimSpace(cfg.KeyID)
	if strings.ContainsAny(keyID, "=,") {
		return errors.New("key id must not contain '=' or ','")
	}
	if reader == nil {
		reader = rand.Reader
	}

	buf := make([]byte, cfg.Bytes)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return fmt.Errorf("generate random bytes: %w", err)
	}
	key := hex.EncodeToString(buf)
	if keyID == "" {
		_, err := fmt.Fprintf(out, "HOMERUN_ROUND_EVENT_HMAC_KEY=%s\n", key)
		return err
	}
	_, err := fmt.Fprintf(out, "HOMERUN_ROUND_EVENT_HMAC_KEYS=%s=%s\nHOMERUN_ROUND_EVENT_HMAC_KEY_ID=%s\n", keyID, key, keyID)
	return err
}
