package callbacks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/vtodo/internal/callbacks"
	"github.com/idilsaglam/vtodo/internal/model"
	"github.com/idilsaglam/vtodo/internal/store"
)

func TestHandlesActOnLatestCollection(t *testing.T) {
	s, err := store.New(nil)
	require.NoError(t, err)
	h := callbacks.Stabilize(s)

	// Taken before any edit; must still see every later commit.
	toggle, remove := h.Toggle, h.Remove

	require.NoError(t, h.Insert.Call("a"))
	require.NoError(t, h.Insert.Call("b"))
	require.NoError(t, h.Insert.Call("c"))
	remove.Call(1)
	toggle.Call(2)
	require.NoError(t, h.Edit.Call(0, "A"))

	assert.Equal(t, []model.Entry{{ID: 0, Text: "A"}, {ID: 2, Text: "c", Checked: true}},
		s.Current().Entries())
}

func TestHandleIdentityIsStable(t *testing.T) {
	s, err := store.New(nil)
	require.NoError(t, err)
	h := callbacks.Stabilize(s)
	before := h

	for i := 0; i < 10; i++ {
		require.NoError(t, h.Insert.Call("x"))
		h.Toggle.Call(i)
	}
	assert.Same(t, before.Toggle, h.Toggle)
	assert.Same(t, before.Remove, h.Remove)
	assert.NotSame(t, h.Toggle, h.Remove)
	assert.Equal(t, "toggle", h.Toggle.String())
}
