// Package callerauth verifies the signed tokens callers present to prove
// their identity.
package callerauth

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
	"github.com/louisbranch/homerun/internal/services/round/domain"
)

// callerEnv holds raw env values before post-parse validation.
type callerEnv struct {
	Issuer    string `env:"HOMERUN_CALLER_TOKEN_ISSUER"`
	Audience  string `env:"HOMERUN_CALLER_TOKEN_AUDIENCE"`
	PublicKey string `env:"HOMERUN_CALLER_TOKEN_PUBLIC_KEY"`
}

// Config defines how caller tokens are verified.
type Config struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// Enabled reports whether token verification is configured.
func (c Config) Enabled() bool {
	return len(c.Key) == ed25519.PublicKeySize
}

// Claims captures validated caller token claims.
type Claims struct {
	Caller    domain.Identity
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	JWTID     string
}

// LoadConfigFromEnv reads caller token verification configuration.
//
// A missing public key returns a disabled config; issuer and audience are
// then ignored.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw callerEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse caller token env: %w", err)
	}
	publicKey := strings.TrimSpace(raw.PublicKey)
	if publicKey == "" {
		return Config{Now: now}, nil
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	if issuer == "" {
		return Config{}, fmt.Errorf("HOMERUN_CALLER_TOKEN_ISSUER is required")
	}
	if audience == "" {
		return Config{}, fmt.Errorf("HOMERUN_CALLER_TOKEN_AUDIENCE is required")
	}
	key, err := DecodePublicKey(publicKey)
	if err != nil {
		return Config{}, err
	}
	if now == nil {
		now = time.Now
	}
	return Config{Issuer: issuer, Audience: audience, Key: key, Now: now}, nil
}

// DecodePublicKey parses a base64 ed25519 public key.
func DecodePublicKey(value string) (ed25519.PublicKey, error) {
	keyBytes, err := decodeBase64(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("decode caller token public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("caller token public key must be %d bytes", ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(keyBytes), nil
}

// DecodePrivateKey parses a base64 ed25519 private key or seed.
func DecodePrivateKey(value string) (ed25519.PrivateKey, error) {
	keyBytes, err := decodeBase64(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("decode caller token private key: %w", err)
	}
	switch len(keyBytes) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(keyBytes), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(keyBytes), nil
	default:
		return nil, fmt.Errorf("caller token private key must be %d or %d bytes", ed25519.SeedSize, ed25519.PrivateKeySize)
	}
}

// Verify validates a caller token and returns its claims.
func Verify(token string, cfg Config) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.New(apperrors.CodeCallerRequired, "caller token is required")
	}
	if !cfg.Enabled() || cfg.Issuer == "" || cfg.Audience == "" {
		return Claims{}, errors.New("caller token verifier is not configured")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var parsed jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return Claims{}, mismatch("issuer")
	}
	if !slices.Contains(parsed.Audience, cfg.Audience) {
		return Claims{}, mismatch("audience")
	}
	if parsed.ID == "" {
		return Claims{}, apperrors.New(apperrors.CodeCallerTokenInvalid, "caller token jti is required")
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, apperrors.New(apperrors.CodeCallerTokenInvalid, "caller token exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return Claims{}, apperrors.New(apperrors.CodeCallerTokenExpired, "caller token is expired")
	}
	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time) {
		return Claims{}, apperrors.New(apperrors.CodeCallerTokenInvalid, "caller token not active yet")
	}

	caller, err := domain.ParseIdentity(parsed.Subject)
	if err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeCallerTokenInvalid, "caller token subject is invalid", err)
	}

	claims := Claims{
		Caller:    caller,
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		ExpiresAt: exp,
		JWTID:     parsed.ID,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// MintRequest describes a token to sign.
type MintRequest struct {
	Caller   domain.Identity
	Issuer   string
	Audience string
	JWTID    string
	IssuedAt time.Time
	TTL      time.Duration
}

// Mint signs a caller token with an ed25519 private key.
func Mint(key ed25519.PrivateKey, req MintRequest) (string, error) {
	if len(key) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("caller token private key must be %d bytes", ed25519.PrivateKeySize)
	}
	if req.Caller.IsZero() {
		return "", fmt.Errorf("caller is required")
	}
	if req.Issuer == "" || req.Audience == "" || req.JWTID == "" {
		return "", fmt.Errorf("issuer, audience and jti are required")
	}
	if req.TTL <= 0 {
		return "", fmt.Errorf("token ttl must be positive")
	}
	issued := req.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	claims := jwt.RegisteredClaims{
		Subject:   req.Caller.String(),
		Issuer:    req.Issuer,
		Audience:  jwt.ClaimStrings{req.Audience},
		ID:        req.JWTID,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(req.TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(key)
}

func mismatch(field string) error {
	return apperrors.WithMetadata(
		apperrors.CodeCallerTokenInvalid,
		"caller token "+field+" mismatch",
		map[string]string{"Field": field},
	)
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeCallerTokenInvalid, "caller token signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeCallerTokenInvalid, "caller token alg is invalid")
	}
	return apperrors.New(apperrors.CodeCallerTokenInvalid, "caller token is invalid")
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
