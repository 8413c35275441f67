package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// DefaultKeyID is the kid given to generated signing keys
const DefaultKeyID = "quill-signing-key"

// GenerateSigningKey creates a fresh ES256 (P-256) private JWK with kid, alg and use set
func GenerateSigningKey(kid string) (jwk.Key, error) {
	if kid == "" {
		kid = DefaultKeyID
	}

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	key, err := jwk.FromRaw(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK from private key: %w", err)
	}

	if err := key.Set(jwk.KeyIDKey, kid); err != nil {
		return nil, fmt.Errorf("failed to set kid: %w", err)
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.ES256); err != nil {
		return nil, fmt.Errorf("failed to set alg: %w", err)
	}
	if err := key.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("failed to set use: %w", err)
	}

	return key, nil
}

// parseSigningKey parses a private EC JWK and extracts the P-256 key behind it
func parseSigningKey(data []byte) (jwk.Key, *ecdsa.PrivateKey, error) {
	key, err := jwk.ParseKey(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse JWK: %w", err)
	}

	var raw ecdsa.PrivateKey
	if err := key.Raw(&raw); err != nil {
		return nil, nil, fmt.Errorf("signing JWK must be an EC private key: %w", err)
	}
	if raw.Curve != elliptic.P256() {
		return nil, nil, fmt.Errorf("signing JWK must use curve P-256, got %s", raw.Curve.Params().Name)
	}

	if key.KeyID() == "" {
		if err := key.Set(jwk.KeyIDKey, DefaultKeyID); err != nil {
			return nil, nil, fmt.Errorf("failed to set kid: %w", err)
		}
	}

	return key, &raw, nil
}

// publicSet builds the JWKS document for a private key
func publicSet(privateKey jwk.Key) (jwk.Set, error) {
	pubKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %w", err)
	}

	set := jwk.NewSet()
	if err := set.AddKey(pubKey); err != nil {
		return nil, fmt.Errorf("failed to add key to set: %w", err)
	}
	return set, nil
}
