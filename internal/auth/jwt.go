package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// TokenType distinguishes access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour

	// DefaultIssuer is the iss claim on every token
	DefaultIssuer = "quill"

	// minSecretLength is the shortest HS256 secret accepted
	minSecretLength = 32
)

var (
	// ErrNoSigningKey is returned when neither a JWK nor a secret is configured
	ErrNoSigningKey = errors.New("no token signing key configured")

	// ErrInvalidToken covers malformed tokens, bad signatures and wrong algorithms
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned for tokens past their exp claim
	ErrTokenExpired = errors.New("token has expired")

	// ErrWrongTokenType is returned when e.g. a refresh token is presented as an access token
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims are the JWT claims Quill issues
type Claims struct {
	jwt.RegisteredClaims
	Name      string    `json:"name"`
	TokenType TokenType `json:"typ"`
}

// UserID parses the sub claim
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Config configures an Issuer. PrivateJWK wins over Secret when both are set.
type Config struct {
	PrivateJWK string
	Issuer     string
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Issuer signs and verifies tokens with one pinned algorithm
type Issuer struct {
	method     jwt.SigningMethod
	signKey    interface{}
	verifyKey  interface{}
	jwks       jwk.Set
	now        func() time.Time
	kid        string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer builds an Issuer. ES256 is used when cfg.PrivateJWK is set, HS256 otherwise.
func NewIssuer(cfg Config) (*Issuer, error) {
	i := &Issuer{
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	if i.issuer == "" {
		i.issuer = DefaultIssuer
	}
	if i.accessTTL <= 0 {
		i.accessTTL = DefaultAccessTTL
	}
	if i.refreshTTL <= 0 {
		i.refreshTTL = DefaultRefreshTTL
	}

	switch {
	case strings.TrimSpace(cfg.PrivateJWK) != "":
		key, raw, err := parseSigningKey([]byte(cfg.PrivateJWK))
		if err != nil {
			return nil, err
		}
		set, err := publicSet(key)
		if err != nil {
			return nil, err
		}
		i.method = jwt.SigningMethodES256
		i.signKey = raw
		i.verifyKey = &raw.PublicKey
		i.kid = key.KeyID()
		i.jwks = set

	case len(cfg.Secret) > 0:
		if len(cfg.Secret) < minSecretLength {
			return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLength)
		}
		i.method = jwt.SigningMethodHS256
		i.signKey = cfg.Secret
		i.verifyKey = cfg.Secret

	default:
		return nil, ErrNoSigningKey
	}

	return i, nil
}

// Algorithm returns the pinned signing algorithm
func (i *Issuer) Algorithm() string {
	return i.method.Alg()
}

// Issue creates an access/refresh pair for a user
func (i *Issuer) Issue(userID int64, username string) (*TokenPair, error) {
	access, err := i.sign(userID, username, TokenTypeAccess, i.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := i.sign(userID, username, TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) sign(userID int64, username string, typ TokenType, ttl time.Duration) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Name:      username,
		TokenType: typ,
	}

	token := jwt.NewWithClaims(i.method, claims)
	if i.kid != "" {
		token.Header["kid"] = i.kid
	}

	signed, err := token.SignedString(i.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer, expiry and token type.
// The algorithm comes from the Issuer configuration, never from the token header.
func (i *Issuer) Verify(tokenString string, expected TokenType) (*Claims, error) {
	tokenString = stripBearerPrefix(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if i.kid != "" {
			if kid, _ := token.Header["kid"].(string); kid != i.kid {
				return nil, fmt.Errorf("unknown key id %q", kid)
			}
		}
		return i.verifyKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// PublicJWKS returns the public key set, or false when signing with a shared secret
func (i *Issuer) PublicJWKS() (jwk.Set, bool) {
	if i.jwks == nil {
		return nil, false
	}
	return i.jwks, true
}

// stripBearerPrefix removes the "Bearer " prefix from a token string
func stripBearerPrefix(tokenString string) string {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	return strings.TrimSpace(tokenString)
}
