package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/vtodo/internal/callbacks"
	"github.com/idilsaglam/vtodo/internal/model"
)

type nopMutator struct{}

func (nopMutator) Insert(string) error    { return nil }
func (nopMutator) Remove(int)             {}
func (nopMutator) Toggle(int)             {}
func (nopMutator) Edit(int, string) error { return nil }

func TestShouldRecompute(t *testing.T) {
	h := callbacks.Stabilize(nopMutator{})
	other := callbacks.Stabilize(nopMutator{})
	e := &model.Entry{ID: 3, Text: "milk"}
	base := KeyFor(e, h)

	tests := []struct {
		name string
		next Key
		want bool
	}{
		{"same entry and handles", KeyFor(e, h), false},
		{"equal copy of the entry", KeyFor(&model.Entry{ID: 3, Text: "milk"}, h), false},
		{"checked differs", KeyFor(&model.Entry{ID: 3, Text: "milk", Checked: true}, h), true},
		{"text differs", KeyFor(&model.Entry{ID: 3, Text: "eggs"}, h), true},
		{"id differs", KeyFor(&model.Entry{ID: 4, Text: "milk"}, h), true},
		{"toggle handle differs", KeyFor(e, callbacks.Handles{Toggle: other.Toggle, Remove: h.Remove}), true},
		{"remove handle differs", KeyFor(e, callbacks.Handles{Toggle: h.Toggle, Remove: other.Remove}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRecompute(base, tt.next))
		})
	}
}

func TestTable(t *testing.T) {
	h := callbacks.Stabilize(nopMutator{})
	tbl := NewTable[int]()
	k := KeyFor(&model.Entry{ID: 1, Text: "a"}, h)

	assert.True(t, tbl.Check(0, k), "first sight renders")
	assert.False(t, tbl.Check(0, k))
	assert.True(t, tbl.Check(1, k), "slots are independent")

	tbl.Forget(0)
	assert.True(t, tbl.Check(0, k))
	assert.Equal(t, Stats{Hits: 1, Misses: 3}, tbl.Stats())
	assert.Equal(t, 2, tbl.Len())

	tbl.Reset()
	assert.Equal(t, 0, tbl.Len())
}
