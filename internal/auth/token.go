package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of both access and refresh tokens. Email and
// Username are copied from the user when the token is issued.
type Claims struct {
	TokenType string  `json:"token_type"`
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	jwt.RegisteredClaims
}

// Identity is the user snapshot embedded into tokens.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Username *string
}

// Issuer signs and verifies HS256 tokens. It holds no per-token state.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

func (i *Issuer) IssueAccess(id Identity) (string, error) {
	return i.sign(id, TokenTypeAccess, i.accessTTL)
}

func (i *Issuer) IssueRefresh(id Identity) (string, error) {
	return i.sign(id, TokenTypeRefresh, i.refreshTTL)
}

func (i *Issuer) sign(id Identity, tokenType string, ttl time.Duration) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		TokenType: tokenType,
		Email:     id.Email,
		Username:  id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Parse verifies signature, expiry and the token_type discriminator.
func (i *Issuer) Parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, tokenType, claims.TokenType)
	}
	return claims, nil
}

// Identity rebuilds the embedded user snapshot.
func (c *Claims) Identity() (Identity, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return Identity{UserID: id, Email: c.Email, Username: c.Username}, nil
}
