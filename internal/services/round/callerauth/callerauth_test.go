package callerauth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
)

var testNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func generateKey(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return pub, priv
}

func testConfig(pub ed25519.PublicKey) Config {
	return Config{Issuer: "issuer", Audience: "round", Key: pub, Now: func() time.Time { return testNow }}
}

func mint(t *testing.T, priv ed25519.PrivateKey, mutate func(*MintRequest)) string {
	t.Helper()
	req := MintRequest{
		Caller:   "alice",
		Issuer:   "issuer",
		Audience: "round",
		JWTID:    "jti-1",
		IssuedAt: testNow.Add(-time.Minute),
		TTL:      time.Hour,
	}
	if mutate != nil {
		mutate(&req)
	}
	token, err := Mint(priv, req)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return token
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HOMERUN_CALLER_TOKEN_ISSUER", "")
	t.Setenv("HOMERUN_CALLER_TOKEN_AUDIENCE", "")
	t.Setenv("HOMERUN_CALLER_TOKEN_PUBLIC_KEY", "")

	cfg, err := LoadConfigFromEnv(nil)
	if err != nil {
		t.Fatalf("load disabled config: %v", err)
	}
	if cfg.Enabled() {
		t.Fatal("expected verification disabled without a public key")
	}

	pub, _ := generateKey(t)
	t.Setenv("HOMERUN_CALLER_TOKEN_PUBLIC_KEY", base64.RawStdEncoding.EncodeToString(pub))
	if _, err := LoadConfigFromEnv(nil); err == nil {
		t.Fatal("expected error when issuer is missing")
	}

	t.Setenv("HOMERUN_CALLER_TOKEN_ISSUER", "issuer")
	t.Setenv("HOMERUN_CALLER_TOKEN_AUDIENCE", "round")
	cfg, err = LoadConfigFromEnv(nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Enabled() || cfg.Issuer != "issuer" || cfg.Audience != "round" {
		t.Fatalf("config = %+v", cfg)
	}

	t.Setenv("HOMERUN_CALLER_TOKEN_PUBLIC_KEY", "c2hvcnQ")
	if _, err := LoadConfigFromEnv(nil); err == nil {
		t.Fatal("expected error for short public key")
	}
}

func TestVerifySuccess(t *testing.T) {
	pub, priv := generateKey(t)
	claims, err := Verify(mint(t, priv, nil), testConfig(pub))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Caller != "alice" {
		t.Fatalf("caller = %q, want alice", claims.Caller)
	}
	if claims.JWTID != "jti-1" {
		t.Fatalf("jti = %q, want jti-1", claims.JWTID)
	}
	if !claims.ExpiresAt.Equal(testNow.Add(59 * time.Minute)) {
		t.Fatalf("expires at = %v", claims.ExpiresAt)
	}
}

func TestVerifyRejections(t *testing.T) {
	pub, priv := generateKey(t)
	_, otherPriv := generateKey(t)

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice", Issuer: "issuer", Audience: jwt.ClaimStrings{"round"},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hs256: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  apperrors.Code
	}{
		{"empty", "  ", apperrors.CodeCallerRequired},
		{"garbage", "not-a-token", apperrors.CodeCallerTokenInvalid},
		{"wrong key", mint(t, otherPriv, nil), apperrors.CodeCallerTokenInvalid},
		{"wrong alg", hmacToken, apperrors.CodeCallerTokenInvalid},
		{"wrong issuer", mint(t, priv, func(r *MintRequest) { r.Issuer = "other" }), apperrors.CodeCallerTokenInvalid},
		{"wrong audience", mint(t, priv, func(r *MintRequest) { r.Audience = "web" }), apperrors.CodeCallerTokenInvalid},
		{"expired", mint(t, priv, func(r *MintRequest) { r.IssuedAt = testNow.Add(-2 * time.Hour) }), apperrors.CodeCallerTokenExpired},
		{"reserved subject", mint(t, priv, func(r *MintRequest) { r.Caller = "round:custody" }), apperrors.CodeCallerTokenInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Verify(tc.token, testConfig(pub))
			if got := apperrors.GetCode(err); got != tc.want {
				t.Fatalf("code = %s, want %s (err: %v)", got, tc.want, err)
			}
		})
	}
}

func TestVerifyRequiresConfig(t *testing.T) {
	_, priv := generateKey(t)
	if _, err := Verify(mint(t, priv, nil), Config{}); err == nil {
		t.Fatal("expected error for unconfigured verifier")
	}
}

func TestMintValidation(t *testing.T) {
	_, priv := generateKey(t)
	if _, err := Mint(priv, MintRequest{Caller: "alice", Issuer: "i", Audience: "a", JWTID: "j"}); err == nil {
		t.Fatal("expected error for zero ttl")
	}
	if _, err := Mint(priv, MintRequest{Issuer: "i", Audience: "a", JWTID: "j", TTL: time.Minute}); err == nil {
		t.Fatal("expected error for missing caller")
	}
	if _, err := Mint(nil, MintRequest{Caller: "alice", Issuer: "i", Audience: "a", JWTID: "j", TTL: time.Minute}); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestDecodePrivateKeyAcceptsSeed(t *testing.T) {
	pub, priv := generateKey(t)
	seed := base64.StdEncoding.EncodeToString(priv.Seed())
	decoded, err := DecodePrivateKey(seed)
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	if !pub.Equal(decoded.Public()) {
		t.Fatal("expected seed to derive the same public key")
	}
	if _, err := DecodePrivateKey("AAAA"); err == nil {
		t.Fatal("expected error for short key")
	}
}
