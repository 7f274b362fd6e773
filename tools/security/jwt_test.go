package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	opts := DefaultOptions([]byte("unit-secret"))

	token, exp, err := Generate(opts, "user-42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(opts.TTL), exp, 5*time.Second)

	sub, err := Verify(opts, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	token, _, err := Generate(DefaultOptions([]byte("secret-a")), "user-42")
	require.NoError(t, err)

	_, err = Verify(DefaultOptions([]byte("secret-b")), token)
	assert.Error(t, err)
}

func TestJWTExpiredRejected(t *testing.T) {
	opts := Options{Secret: []byte("unit-secret"), TTL: time.Millisecond}
	token, _, err := Generate(opts, "user-42")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = Verify(opts, token)
	assert.Error(t, err)
}

func TestJWTUnsupportedAlg(t *testing.T) {
	_, _, err := Generate(Options{Secret: []byte("x"), Alg: "RS256"}, "user-42")
	assert.Error(t, err)
}

func TestJWTGarbageToken(t *testing.T) {
	_, err := Verify(DefaultOptions([]byte("unit-secret")), "not.a.token")
	assert.Error(t, err)
}
