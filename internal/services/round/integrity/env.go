package integrity

import (
	"fmt"
	"strings"

	"github.com/louisbranch/homerun/internal/platform/config"
)

const (
	envHMACKey   = "HOMERUN_ROUND_EVENT_HMAC_KEY"
	envHMACKeys  = "HOMERUN_ROUND_EVENT_HMAC_KEYS"
	defaultKeyID = "v1"
)

type keyringEnv struct {
	Key   string `env:"HOMERUN_ROUND_EVENT_HMAC_KEY"`
	Keys  string `env:"HOMERUN_ROUND_EVENT_HMAC_KEYS"`
	KeyID string `env:"HOMERUN_ROUND_EVENT_HMAC_KEY_ID"`
}

// KeyringFromEnv loads the HMAC keyring configuration from environment variables.
//
// HOMERUN_ROUND_EVENT_HMAC_KEYS takes "id=secret,id=secret" pairs for key
// rotation; otherwise HOMERUN_ROUND_EVENT_HMAC_KEY is the single root key.
func KeyringFromEnv() (*Keyring, error) {
	var cfg keyringEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return nil, err
	}

	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" {
		keyID = defaultKeyID
	}

	keySpec := strings.TrimSpace(cfg.Keys)
	if keySpec == "" {
		raw := strings.TrimSpace(cfg.Key)
		if raw == "" {
			return nil, fmt.Errorf("%s is required", envHMACKey)
		}
		return NewKeyring(map[string][]byte{keyID: []byte(raw)}, keyID)
	}

	keys := make(map[string][]byte)
	for _, entry := range strings.Split(keySpec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, value, ok := strings.Cut(entry, "=")
		id = strings.TrimSpace(id)
		value = strings.TrimSpace(value)
		if !ok || id == "" || value == "" {
			return nil, fmt.Errorf("invalid %s entry", envHMACKeys)
		}
		keys[id] = []byte(value)
	}
	return NewKeyring(keys, keyID)
}
