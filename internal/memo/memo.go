// Package memo decides when a rendered row can be reused.
package memo

import (
	"github.com/idilsaglam/vtodo/internal/callbacks"
	"github.com/idilsaglam/vtodo/internal/model"
)

// Key is everything a row rendering depends on.
type Key struct {
	EntryID  int
	Text     string
	Checked  bool
	OnToggle *callbacks.IDHandle
	OnRemove *callbacks.IDHandle
}

// KeyFor builds the key for e rendered with h.
func KeyFor(e *model.Entry, h callbacks.Handles) Key {
	return Key{
		EntryID:  e.ID,
		Text:     e.Text,
		Checked:  e.Checked,
		OnToggle: h.Toggle,
		OnRemove: h.Remove,
	}
}

// ShouldRecompute reports whether a row rendered for prev must be redone for
// next. Every field counts, the callback identities included: a row holding
// an outdated handle is stale even when its entry is not.
func ShouldRecompute(prev, next Key) bool {
	return prev.EntryID != next.EntryID ||
		prev.Text != next.Text ||
		prev.Checked != next.Checked ||
		prev.OnToggle != next.OnToggle ||
		prev.OnRemove != next.OnRemove
}

// Stats counts memo lookups.
type Stats struct {
	Hits   int
	Misses int
}

// Table remembers the key each slot was last rendered with.
type Table[S comparable] struct {
	keys  map[S]Key
	stats Stats
}

// NewTable returns an empty table.
func NewTable[S comparable]() *Table[S] {
	return &Table[S]{keys: map[S]Key{}}
}

// Check records next as the slot's key and reports whether the slot must be
// re-rendered. A slot with no recorded key always needs rendering.
func (t *Table[S]) Check(slot S, next Key) bool {
	prev, ok := t.keys[slot]
	t.keys[slot] = next
	if ok && !ShouldRecompute(prev, next) {
		t.stats.Hits++
		return false
	}
	t.stats.Misses++
	return true
}

// Forget drops the key recorded for slot.
func (t *Table[S]) Forget(slot S) { delete(t.keys, slot) }

// Reset drops every recorded key. Counters are kept.
func (t *Table[S]) Reset() { t.keys = map[S]Key{} }

// Len returns the number of slots with a recorded key.
func (t *Table[S]) Len() int { return len(t.keys) }

// Stats returns the hit and miss counters.
func (t *Table[S]) Stats() Stats { return t.stats }
