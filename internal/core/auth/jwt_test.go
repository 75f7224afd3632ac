package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "todo", TTL: time.Hour}
}

func TestJWTer_SessionRoundTrip(t *testing.T) {
	j := newJWTer()
	tok, err := j.Issue("user-1")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UID)
	assert.Equal(t, "todo", c.Issuer)
}

func TestJWTer_RejectsForeignSecret(t *testing.T) {
	tok, err := newJWTer().Issue("user-1")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "todo", TTL: time.Hour}
	_, err = other.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTer_RejectsExpired(t *testing.T) {
	j := &JWTer{Secret: []byte("s"), Issuer: "todo", TTL: -2 * time.Minute}
	tok, err := j.Issue("user-1")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTer_RejectsGarbage(t *testing.T) {
	_, err := newJWTer().Parse("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTer_FlashRoundTrip(t *testing.T) {
	j := newJWTer()
	tok, err := j.IssueFlash([]string{"list is empty", "second"})
	require.NoError(t, err)

	msgs, err := j.ParseFlash(tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"list is empty", "second"}, msgs)
}

func TestJWTer_TokensNotInterchangeable(t *testing.T) {
	j := newJWTer()
	flash, err := j.IssueFlash([]string{"x"})
	require.NoError(t, err)
	_, err = j.Parse(flash)
	require.ErrorIs(t, err, ErrInvalidToken)

	session, err := j.Issue("user-1")
	require.NoError(t, err)
	_, err = j.ParseFlash(session)
	require.ErrorIs(t, err, ErrInvalidToken)
}
