package store

import "github.com/idilsaglam/vtodo/internal/model"

// IDGenerator hands out entry ids. It is a plain value: Next returns the id
// and the advanced generator, so the pure mutation functions can thread it
// through without shared state.
type IDGenerator struct {
	next int
}

// NewIDGenerator returns a generator whose first id is start.
func NewIDGenerator(start int) IDGenerator {
	return IDGenerator{next: start}
}

// Next returns the next id and the generator that follows it.
func (g IDGenerator) Next() (int, IDGenerator) {
	return g.next, IDGenerator{next: g.next + 1}
}

// Peek returns the id the next call to Next would hand out.
func (g IDGenerator) Peek() int { return g.next }

// Insert appends a new unchecked entry. Every existing entry is shared with c.
func Insert(c Collection, g IDGenerator, text string) (Collection, IDGenerator) {
	id, g := g.Next()
	return c.conj(&model.Entry{ID: id, Text: text}), g
}

// Remove drops the entry with the given id. An unknown id is a no-op and
// returns c itself.
func Remove(c Collection, g IDGenerator, id int) (Collection, IDGenerator) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, g
	}
	return c.without(i), g
}

// Toggle flips Checked on the entry with the given id. Only that entry gets a
// new identity; an unknown id is a no-op.
func Toggle(c Collection, g IDGenerator, id int) (Collection, IDGenerator) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, g
	}
	e := c.At(i).WithChecked(!c.At(i).Checked)
	return c.assoc(i, &e), g
}

// Edit replaces the text of the entry with the given id. Unknown ids and
// unchanged text are no-ops.
func Edit(c Collection, g IDGenerator, id int, text string) (Collection, IDGenerator) {
	i := c.IndexOf(id)
	if i < 0 || c.At(i).Text == text {
		return c, g
	}
	e := c.At(i).WithText(text)
	return c.assoc(i, &e), g
}

// Restore puts a removed entry back at index i, clamped to the collection.
// It is a no-op when the id is still present or was never handed out by g,
// so an id cannot end up on two entries.
func Restore(c Collection, g IDGenerator, i int, e model.Entry) (Collection, IDGenerator) {
	if e.ID < 0 || e.ID >= g.Peek() || c.IndexOf(e.ID) >= 0 {
		return c, g
	}
	i = max(0, min(i, c.Len()))
	return c.insertAt(i, &e), g
}
