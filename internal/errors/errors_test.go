package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestAsType(t *testing.T) {
	wrapped := Wrap(&codedError{code: "E1"}, "outer")

	got, ok := AsType[*codedError](wrapped)
	assert.True(t, ok)
	assert.Equal(t, "E1", got.code)

	_, ok = AsType[*codedError](New("plain"))
	assert.False(t, ok)
}

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := New("sentinel")

	assert.True(t, Is(Wrapf(sentinel, "ctx %d", 1), sentinel))
	assert.True(t, Is(WithStack(sentinel), sentinel))
	assert.EqualError(t, Wrap(sentinel, "outer"), "outer: sentinel")
}
