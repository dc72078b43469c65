package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("Success_PreservesErrorChain", func(t *testing.T) {
		wrapped := Wrap(ErrNotFound, "user lookup failed")

		assert.True(t, Is(wrapped, ErrNotFound))
		assert.Equal(t, "user lookup failed: not found", wrapped.Error())
	})

	t.Run("Success_NestedWrapping", func(t *testing.T) {
		inner := Wrap(ErrInvalidInput, "port out of range")
		outer := Wrap(inner, "save rejected")

		assert.True(t, Is(outer, ErrInvalidInput))
		assert.Equal(t, "save rejected: port out of range: invalid input", outer.Error())
	})

	t.Run("Success_NilErrorReturnsNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})
}

func TestIs(t *testing.T) {
	assert.True(t, Is(ErrNotFound, ErrNotFound))
	assert.False(t, Is(ErrNotFound, ErrConflict))
	assert.False(t, Is(stderrors.New("other"), ErrNotFound))
}

func TestNew(t *testing.T) {
	err := New("something failed")
	assert.EqualError(t, err, "something failed")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrForbidden,
		ErrConfiguration,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v should not match %v", a, b)
		}
	}
}
