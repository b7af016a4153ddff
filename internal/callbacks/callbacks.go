// Package callbacks hands out mutation handles whose identity never changes.
//
// A row renderer receives "toggle this" and "remove this" actions together
// with its entry. If those actions were rebuilt whenever the collection was
// replaced, every row would look changed after every edit and memoization
// would never hit. The handles here are created once per driver and compared
// by pointer; they reach the data through the Mutator they wrap, which always
// holds the latest committed collection.
package callbacks

// Mutator is the store cell the handles call through.
type Mutator interface {
	Insert(text string) error
	Remove(id int)
	Toggle(id int)
	Edit(id int, text string) error
}

// IDHandle is an action on one entry, addressed by id.
type IDHandle struct {
	name string
	fn   func(id int)
}

// Call applies the action to the current collection.
func (h *IDHandle) Call(id int) { h.fn(id) }

func (h *IDHandle) String() string { return h.name }

// TextHandle is an action taking entry text.
type TextHandle struct {
	fn func(text string) error
}

// Call applies the action to the current collection.
func (h *TextHandle) Call(text string) error { return h.fn(text) }

// EditHandle replaces the text of one entry.
type EditHandle struct {
	fn func(id int, text string) error
}

// Call applies the edit to the current collection.
func (h *EditHandle) Call(id int, text string) error { return h.fn(id, text) }

// Handles is the full set of stable actions.
type Handles struct {
	Insert *TextHandle
	Remove *IDHandle
	Toggle *IDHandle
	Edit   *EditHandle
}

// Stabilize wraps m. The handles never capture a collection; each call goes
// through m at call time.
func Stabilize(m Mutator) Handles {
	return Handles{
		Insert: &TextHandle{fn: func(text string) error { return m.Insert(text) }},
		Remove: &IDHandle{name: "remove", fn: func(id int) { m.Remove(id) }},
		Toggle: &IDHandle{name: "toggle", fn: func(id int) { m.Toggle(id) }},
		Edit:   &EditHandle{fn: func(id int, text string) error { return m.Edit(id, text) }},
	}
}
