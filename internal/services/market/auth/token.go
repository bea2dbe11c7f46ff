// Package auth issues and verifies the signed caller tokens that carry a
// marketplace caller's address.
package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/nftmarket/internal/platform/config"
	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/platform/id"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
)

const signingMethod = "EdDSA"

const tokenEnvPrefix = "NFTMARKET_CALLER_TOKEN_"

// tokenEnv holds raw NFTMARKET_CALLER_TOKEN_* values before validation.
type tokenEnv struct {
	Issuer     string `env:"ISSUER" envDefault:"nftmarket"`
	Audience   string `env:"AUDIENCE" envDefault:"market"`
	PublicKey  string `env:"PUBLIC_KEY"`
	PrivateKey string `env:"PRIVATE_KEY"`
}

// VerifierConfig defines how caller tokens are verified.
type VerifierConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// IssuerConfig defines how caller tokens are signed.
type IssuerConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PrivateKey
	Now      func() time.Time
}

// Claims are the validated claims of a caller token.
type Claims struct {
	Caller    core.Address
	Issuer    string
	ExpiresAt time.Time
	JWTID     string
}

// LoadVerifierConfigFromEnv reads caller token verification configuration.
func LoadVerifierConfigFromEnv(now func() time.Time) (VerifierConfig, error) {
	var raw tokenEnv
	if err := config.ParseEnvWithPrefix(&raw, tokenEnvPrefix); err != nil {
		return VerifierConfig{}, fmt.Errorf("parse caller token env: %w", err)
	}
	publicKey := strings.TrimSpace(raw.PublicKey)
	if publicKey == "" {
		return VerifierConfig{}, fmt.Errorf("NFTMARKET_CALLER_TOKEN_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return VerifierConfig{}, fmt.Errorf("decode caller token public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return VerifierConfig{}, fmt.Errorf("caller token public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return VerifierConfig{
		Issuer:   strings.TrimSpace(raw.Issuer),
		Audience: strings.TrimSpace(raw.Audience),
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// LoadIssuerConfigFromEnv reads caller token signing configuration.
func LoadIssuerConfigFromEnv(now func() time.Time) (IssuerConfig, error) {
	var raw tokenEnv
	if err := config.ParseEnvWithPrefix(&raw, tokenEnvPrefix); err != nil {
		return IssuerConfig{}, fmt.Errorf("parse caller token env: %w", err)
	}
	privateKey := strings.TrimSpace(raw.PrivateKey)
	if privateKey == "" {
		return IssuerConfig{}, fmt.Errorf("NFTMARKET_CALLER_TOKEN_PRIVATE_KEY is required")
	}
	keyBytes, err := decodeBase64(privateKey)
	if err != nil {
		return IssuerConfig{}, fmt.Errorf("decode caller token private key: %w", err)
	}
	if len(keyBytes) != ed25519.PrivateKeySize {
		return IssuerConfig{}, fmt.Errorf("caller token private key must be %d bytes", ed25519.PrivateKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return IssuerConfig{
		Issuer:   strings.TrimSpace(raw.Issuer),
		Audience: strings.TrimSpace(raw.Audience),
		Key:      ed25519.PrivateKey(keyBytes),
		Now:      now,
	}, nil
}

// Issue signs a token naming caller, valid for ttl.
func Issue(caller core.Address, ttl time.Duration, cfg IssuerConfig) (string, error) {
	if caller.IsZero() {
		return "", apperrors.New(apperrors.CodeInvalidAddress, "caller address is required")
	}
	if len(cfg.Key) != ed25519.PrivateKeySize || cfg.Issuer == "" || cfg.Audience == "" {
		return "", errors.New("caller token issuer is not configured")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	jti, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	now := cfg.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   caller.String(),
		Audience:  jwt.ClaimStrings{cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        jti,
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(cfg.Key)
}

// Verify validates a caller token and returns its claims.
func Verify(token string, cfg VerifierConfig) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.New(apperrors.CodeUnauthenticated, "caller token is required")
	}
	if len(cfg.Key) != ed25519.PublicKeySize || cfg.Issuer == "" || cfg.Audience == "" {
		return Claims{}, errors.New("caller token verifier is not configured")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var parsed jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{signingMethod}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(cfg.Now),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}
	caller, err := core.ParseAddress(parsed.Subject)
	if err != nil || caller.IsZero() {
		return Claims{}, apperrors.WithMetadata(apperrors.CodeUnauthenticated,
			"caller token subject is not an address", map[string]string{"Field": "sub"})
	}
	return Claims{
		Caller:    caller,
		Issuer:    parsed.Issuer,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
		JWTID:     parsed.ID,
	}, nil
}

// GenerateKeyPair returns a new Ed25519 key pair encoded as base64.
func GenerateKeyPair() (publicKey, privateKey string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pub), base64.StdEncoding.EncodeToString(priv), nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.New(apperrors.CodeUnauthenticated, "caller token is expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrEd25519Verification):
		return apperrors.New(apperrors.CodeUnauthenticated, "caller token signature is invalid")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return apperrors.New(apperrors.CodeUnauthenticated, "caller token was issued for another service")
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.New(apperrors.CodeUnauthenticated, "caller token alg is invalid")
	default:
		return apperrors.Wrap(apperrors.CodeUnauthenticated, "caller token is invalid", err)
	}
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
