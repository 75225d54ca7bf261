package appstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreationFlag_SetAndGet(t *testing.T) {
	f := NewCreationFlag()
	assert.False(t, f.Get())

	f.Set(true)
	assert.True(t, f.Get())

	f.Set(false)
	assert.False(t, f.Get())
}

func TestCreationFlag_NotifiesOnChangeOnly(t *testing.T) {
	f := NewCreationFlag()
	var seen []bool
	unsubscribe := f.Subscribe(func(v bool) { seen = append(seen, v) })

	f.Set(true)
	f.Set(true)
	f.Set(false)
	f.Set(false)
	assert.Equal(t, []bool{true, false}, seen)

	unsubscribe()
	f.Set(true)
	assert.Equal(t, []bool{true, false}, seen)
}

func TestCreationFlag_ZeroValueUsable(t *testing.T) {
	var f CreationFlag
	called := false
	f.Subscribe(func(bool) { called = true })
	f.Set(true)
	assert.True(t, called)
}
