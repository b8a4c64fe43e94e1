package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *Issuer {
	return NewIssuer("test-secret", 15*time.Minute, 24*time.Hour)
}

func strPtr(s string) *string { return &s }

func TestIssuerAccessRoundTrip(t *testing.T) {
	issuer := newTestIssuer()
	id := Identity{UserID: uuid.New(), Email: "api@example.com", Username: strPtr("api")}

	token, err := issuer.IssueAccess(id)
	require.NoError(t, err)

	claims, err := issuer.Parse(token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, id.UserID.String(), claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "api@example.com", claims.Email)
	require.NotNil(t, claims.Username)
	assert.Equal(t, "api", *claims.Username)
	assert.NotEmpty(t, claims.ID)

	got, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestIssuerTokenTypeMismatch(t *testing.T) {
	issuer := newTestIssuer()
	id := Identity{UserID: uuid.New(), Email: "a@example.com"}

	access, err := issuer.IssueAccess(id)
	require.NoError(t, err)
	refresh, err := issuer.IssueRefresh(id)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	_, err = issuer.Parse(access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse(refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse(refresh, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestIssuerRejectsExpired(t *testing.T) {
	issuedAt := time.Now().Add(-48 * time.Hour)
	past := newTestIssuer().WithClock(func() time.Time { return issuedAt })

	token, err := past.IssueRefresh(Identity{UserID: uuid.New(), Email: "a@example.com"})
	require.NoError(t, err)

	_, err = newTestIssuer().Parse(token, TokenTypeRefresh)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestIssuerRejectsForeignSignature(t *testing.T) {
	other := NewIssuer("other-secret", time.Minute, time.Hour)
	token, err := other.IssueRefresh(Identity{UserID: uuid.New(), Email: "a@example.com"})
	require.NoError(t, err)

	_, err = newTestIssuer().Parse(token, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuerRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestIssuer().Parse(token, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuerRejectsGarbage(t *testing.T) {
	_, err := newTestIssuer().Parse("not-a-token", TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsIdentityBadSubject(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "nope"}}
	_, err := c.Identity()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
