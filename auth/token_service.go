package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenIssuer builds signed, time-bounded identity tokens.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

// TokenValidator checks signature, issuer, audience and expiry, and extracts
// claims. Consumed by the request middleware.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// TokenService issues and validates HS256 tokens from a single shared
// symmetric key. Stateless; safe for concurrent use.
type TokenService struct {
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
}

var (
	_ TokenIssuer    = (*TokenService)(nil)
	_ TokenValidator = (*TokenService)(nil)
)

// NewTokenService creates a new TokenService. A missing signing key or a
// non-positive lifetime is a startup-time misconfiguration, not a per-request
// error.
func NewTokenService(cfg Config, logger Logger) (*TokenService, error) {
	if logger == nil {
		logger = defLogger{}
	}

	if cfg.GetSigningKey() == "" {
		return nil, errors.New("token signing key is required", errors.CategoryInternal)
	}

	if cfg.GetTokenExpiration() <= 0 {
		return nil, errors.New("token expiration must be a positive number of minutes", errors.CategoryInternal)
	}

	return &TokenService{
		signingKey:      []byte(cfg.GetSigningKey()),
		tokenExpiration: cfg.GetTokenExpiration(),
		issuer:          cfg.GetIssuer(),
		audience:        cfg.GetAudience(),
		logger:          logger,
	}, nil
}

// Issue creates a signed JWT carrying the identity's claims. Tokens issued
// for the same identity at different instants differ only in iat/exp.
func (ts *TokenService) Issue(identity Identity) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.ID(),
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.tokenExpiration) * time.Minute)),
		},
		DisplayName:  identity.Name(),
		EmailAddress: identity.Email(),
		UserRole:     identity.Role(),
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenService) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims.
// Tampered, mis-issued, mis-audienced and expired tokens are all rejected
// uniformly as ErrTokenInvalid.
func (ts *TokenService) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenInvalid
}
