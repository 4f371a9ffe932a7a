package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrStructural", ErrStructural},
		{"ErrTransport", ErrTransport},
		{"ErrNoContent", ErrNoContent},
		{"ErrNotConfigured", ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrAlreadyExists))
}

func TestIsStructural(t *testing.T) {
	wrapped := fmt.Errorf("%w: non-resource subject found", ErrStructural)

	assert.True(t, IsStructural(wrapped))
	assert.False(t, IsTransport(wrapped))
}

func TestIsTransport(t *testing.T) {
	wrapped := fmt.Errorf("%w: create object: boom", ErrTransport)

	assert.True(t, IsTransport(wrapped))
	assert.False(t, IsStructural(wrapped))
}

func TestObjectError(t *testing.T) {
	cause := fmt.Errorf("%w: bad RELS-EXT", ErrStructural)
	err := error(&ObjectError{PID: "demo:1", Err: cause})

	assert.Equal(t, "migrate demo:1: structural error: bad RELS-EXT", err.Error())
	assert.True(t, IsStructural(err))

	var objErr *ObjectError
	assert.True(t, errors.As(err, &objErr))
	assert.Equal(t, "demo:1", objErr.PID)
}
