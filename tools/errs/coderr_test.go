package errs

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCodeErrorIsMatchesOnCode(t *testing.T) {
	err := ErrInvalidCredentials.WithDetail("email unknown")

	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	assert.False(t, errors.Is(err, ErrUnauthorized))

	wrapped := errors.Wrap(err, "login")
	assert.True(t, errors.Is(wrapped, ErrInvalidCredentials))
}

func TestCodeErrorDetailAccumulates(t *testing.T) {
	e := NewCodeError(400, "bad request").WithDetail("first").WithDetail("second")
	assert.Equal(t, "first, second", e.Detail)
	assert.Contains(t, e.Error(), "400 bad request first, second")
}
