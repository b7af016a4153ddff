package store

import (
	"github.com/xiaq/persistent/vector"

	"github.com/idilsaglam/vtodo/internal/model"
)

// Collection is an immutable, ordered sequence of entries.
//
// Entries are held by pointer in a persistent vector, so every mutation
// returns a new Collection that shares the untouched entries (and most of the
// vector's tree) with its predecessor. Two collections hold "the same" entry
// at an index exactly when the pointers are equal.
//
// The zero Collection is empty and ready to use.
type Collection struct {
	v vector.Vector
}

func (c Collection) vec() vector.Vector {
	if c.v == nil {
		return vector.Empty
	}
	return c.v
}

// Len returns the number of entries.
func (c Collection) Len() int {
	if c.v == nil {
		return 0
	}
	return c.v.Len()
}

// At returns the entry at index i, or nil when i is out of range.
func (c Collection) At(i int) *model.Entry {
	if c.v == nil {
		return nil
	}
	x, ok := c.v.Index(i)
	if !ok {
		return nil
	}
	return x.(*model.Entry)
}

// IndexOf returns the index of the entry with the given id, or -1.
func (c Collection) IndexOf(id int) int {
	i := 0
	for it := c.vec().Iterator(); it.HasElem(); it.Next() {
		if it.Elem().(*model.Entry).ID == id {
			return i
		}
		i++
	}
	return -1
}

// Each calls fn for every entry in order until fn returns false.
func (c Collection) Each(fn func(i int, e *model.Entry) bool) {
	i := 0
	for it := c.vec().Iterator(); it.HasElem(); it.Next() {
		if !fn(i, it.Elem().(*model.Entry)) {
			return
		}
		i++
	}
}

// Entries copies the collection out as plain values.
func (c Collection) Entries() []model.Entry {
	out := make([]model.Entry, 0, c.Len())
	c.Each(func(_ int, e *model.Entry) bool {
		out = append(out, *e)
		return true
	})
	return out
}

// Same reports whether c and other are the very same snapshot.
func (c Collection) Same(other Collection) bool {
	return c.vec() == other.vec()
}

// Stats counts checked and unchecked entries.
func (c Collection) Stats() (done, pending int) {
	c.Each(func(_ int, e *model.Entry) bool {
		if e.Checked {
			done++
		} else {
			pending++
		}
		return true
	})
	return
}

func (c Collection) conj(e *model.Entry) Collection {
	return Collection{c.vec().Cons(e)}
}

func (c Collection) assoc(i int, e *model.Entry) Collection {
	return Collection{c.vec().Assoc(i, e)}
}

// insertAt puts e at index i, shifting the rest down.
func (c Collection) insertAt(i int, e *model.Entry) Collection {
	v := c.vec()
	n := v.Len()
	if i >= n {
		return Collection{v.Cons(e)}
	}
	out := v.SubVector(0, i).Cons(e)
	for j := i; j < n; j++ {
		x, _ := v.Index(j)
		out = out.Cons(x)
	}
	return Collection{out}
}

// without drops the entry at index i. The prefix is shared as a subvector;
// only the suffix is re-appended.
func (c Collection) without(i int) Collection {
	v := c.vec()
	n := v.Len()
	if i == n-1 {
		return Collection{v.Pop()}
	}
	out := v.SubVector(0, i)
	for j := i + 1; j < n; j++ {
		x, _ := v.Index(j)
		out = out.Cons(x)
	}
	return Collection{out}
}
