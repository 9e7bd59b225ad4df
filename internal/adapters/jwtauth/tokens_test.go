package jwtauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	iss, err := New("s3cret", time.Hour)
	require.NoError(t, err)

	tok, exp, err := iss.Issue(domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, domain.RoleAdmin, c.Role)
	assert.Equal(t, exp.Unix(), c.ExpiresAt.Unix())
}

func TestParseRejects(t *testing.T) {
	iss, _ := New("s3cret", time.Hour)
	other, _ := New("different", time.Hour)
	tok, _, err := other.Issue(domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong key")

	_, err = iss.Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := time.Now().Add(-2 * time.Hour)
	iss.now = func() time.Time { return past }
	old, _, err := iss.Issue(domain.User{ID: "u1"})
	require.NoError(t, err)
	iss.now = time.Now
	_, err = iss.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = iss.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("", time.Hour)
	assert.Error(t, err)
}
