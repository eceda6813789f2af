package integrity

import "testing"

func setKeyringEnv(t *testing.T, key, keys, keyID string) {
	t.Helper()
	t.Setenv("HOMERUN_ROUND_EVENT_HMAC_KEY", key)
	t.Setenv("HOMERUN_ROUND_EVENT_HMAC_KEYS", keys)
	t.Setenv("HOMERUN_ROUND_EVENT_HMAC_KEY_ID", keyID)
}

func TestKeyringFromEnvRequiresKey(t *testing.T) {
	setKeyringEnv(t, "", "", "")
	if _, err := KeyringFromEnv(); err == nil {
		t.Fatal("expected error when no key is configured")
	}
}

func TestKeyringFromEnvSingleKey(t *testing.T) {
	setKeyringEnv(t, "secret", "   ", "   ")
	ring, err := KeyringFromEnv()
	if err != nil {
		t.Fatalf("keyring from env: %v", err)
	}
	if ring.ActiveKeyID() != "v1" {
		t.Fatalf("active key id = %s, want v1", ring.ActiveKeyID())
	}
}

func TestKeyringFromEnvKeySpec(t *testing.T) {
	setKeyringEnv(t, "", "k1=one, ,k2=two", "k2")
	ring, err := KeyringFromEnv()
	if err != nil {
		t.Fatalf("keyring from env: %v", err)
	}
	if ring.ActiveKeyID() != "k2" {
		t.Fatalf("active key id = %s, want k2", ring.ActiveKeyID())
	}
}

func TestKeyringFromEnvInvalidKeySpec(t *testing.T) {
	for _, spec := range []string{"bad-entry", "=value", "k1="} {
		t.Run(spec, func(t *testing.T) {
			setKeyringEnv(t, "", spec, "k1")
			if _, err := KeyringFromEnv(); err == nil {
				t.Fatal("expected error for invalid key spec")
			}
		})
	}
}

func TestKeyringFromEnvUnknownActiveKey(t *testing.T) {
	setKeyringEnv(t, "", "k1=one", "k9")
	if _, err := KeyringFromEnv(); err == nil {
		t.Fatal("expected error for unknown active key id")
	}
}
