// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tasknest Contributors

package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tasknest/tasknest/internal/fault"
)

// Bearer token configuration.
const (
	// BearerScheme is the literal scheme prefix expected on the
	// Authorization header.
	BearerScheme = "Bearer"

	// TokenTTL is the validity window of an issued token.
	TokenTTL = time.Hour

	// tokenLeeway tolerates clock skew between issuer and verifier.
	tokenLeeway = 30 * time.Second
)

// signingMethod is the single accepted algorithm. Verification rejects
// tokens bearing any other algorithm to prevent downgrade attacks.
var signingMethod = jwt.SigningMethodHS512

// Claims is the verified identity carried by a bearer token.
// It is constructed at issuance and discarded after verification;
// it carries no authorization scopes beyond identity.
type Claims struct {
	// Subject is the stringified account identifier.
	Subject string

	// AccountID is Subject parsed back to the numeric account identifier.
	AccountID int64

	// ExpiresAt is the instant after which the token is no longer valid.
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// It holds no state beyond the immutable signing secret and is safe for
// unlimited concurrent use.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with an explicit signing secret.
// The secret is threaded in at construction so tests can use distinct keys;
// an empty secret is rejected here because its absence is a startup-fatal
// condition, never a per-request error.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, fault.New(fault.SystemError, "token signing secret is required")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue creates a signed token identifying the given account.
// The expiration is set to now + TokenTTL.
func (s *TokenService) Issue(accountID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(accountID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(s.secret)
	if err != nil {
		return "", fault.Wrap(fault.TokenCreationFailed, err, "failed to create token")
	}
	return signed, nil
}

// Verify validates the raw Authorization header value and returns the
// claims it carries.
//
// A missing header or one not starting with the Bearer scheme fails with
// NoAuthHeader. A bad signature, malformed structure, foreign algorithm, or
// passed expiry fails with Unauthenticated.
func (s *TokenService) Verify(authorizationHeader string) (*Claims, error) {
	if !strings.HasPrefix(authorizationHeader, BearerScheme) {
		return nil, fault.New(fault.NoAuthHeader, "auth header is invalid")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, BearerScheme))

	var registered jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &registered,
		func(_ *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithLeeway(tokenLeeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fault.New(fault.Unauthenticated, "token is invalid")
	}

	accountID, err := strconv.ParseInt(registered.Subject, 10, 64)
	if err != nil {
		return nil, fault.New(fault.Unauthenticated, "token subject is invalid")
	}

	return &Claims{
		Subject:   registered.Subject,
		AccountID: accountID,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
