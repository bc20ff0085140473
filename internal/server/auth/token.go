package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/innoclinic/authsvc/internal/common"
	"github.com/innoclinic/authsvc/internal/server/models"
)

// Claims is the claim set embedded in an access token: the registered claims
// (sub, iss, aud, jti, iat, exp) plus the account email and its verification
// flag.
type Claims struct {
	jwt.RegisteredClaims
	Email           string `json:"email"`
	IsEmailVerified bool   `json:"is_email_verified"`
}

// AuthResponse is the composite returned to the boundary layer after a
// successful sign-up or sign-in.
type AuthResponse struct {
	Token     string
	ExpiresIn int // minutes
	AccountID string
	Email     string
}

// TokenIssuer mints and validates HS256-signed access tokens. Tokens are
// self-contained: no server-side session record exists and issued tokens
// cannot be revoked before expiry.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
}

// NewTokenIssuer constructs a TokenIssuer. A blank secret is a configuration
// error and is rejected here rather than surfacing per-call.
func NewTokenIssuer(secret, issuer, audience string, lifetime time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is not configured")
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
	}, nil
}

// Issue signs a token for the account with a fresh jti, valid from now until
// now plus the configured lifetime.
func (ti *TokenIssuer) Issue(account *models.Account) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.lifetime)),
		},
		Email:           account.Email,
		IsEmailVerified: account.IsEmailVerified,
	})

	tokenString, err := token.SignedString(ti.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate checks the signature, issuer, audience, and lifetime (with zero
// clock-skew tolerance) and returns the claims. Every failure — bad
// signature, expired, wrong issuer or audience, malformed input — collapses
// to common.ErrInvalidToken so callers learn nothing about which check
// failed.
func (ti *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithAudience(ti.audience),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// IssueResponse mints a token for the account and wraps it with the expiry
// and identity fields the boundary layer hands back to clients.
func (ti *TokenIssuer) IssueResponse(account *models.Account) (*AuthResponse, error) {
	token, err := ti.Issue(account)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     token,
		ExpiresIn: int(ti.lifetime.Minutes()),
		AccountID: account.ID,
		Email:     account.Email,
	}, nil
}
