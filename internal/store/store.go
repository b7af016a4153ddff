package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/idilsaglam/vtodo/internal/model"
)

var (
	// ErrInvalidSeed reports seed data the store refuses to start from.
	ErrInvalidSeed = errors.New("invalid seed")
	// ErrRejected is wrapped by errors returned from a TextPolicy.
	ErrRejected = errors.New("text rejected")
)

// TextPolicy normalizes or rejects text before an insert or edit is applied.
type TextPolicy func(text string) (string, error)

// State is one committed snapshot of the store.
type State struct {
	Entries Collection
	IDs     IDGenerator
}

// Store is the single writer of collection state. It is the mutable cell the
// rest of the engine reads "the current collection" from; every mutation
// computes a new State with the pure functions and commits it.
//
// A Store is not safe for concurrent use; all calls must come from the one
// event loop that owns it.
type Store struct {
	state     State
	policy    TextPolicy
	listeners map[int]func(Collection)
	order     []int
	nextSub   int
	log       *slog.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	start  *int
	policy TextPolicy
	logger *slog.Logger
}

// WithIDStart sets the first id handed out. It must be above every seeded id.
func WithIDStart(start int) Option {
	return func(o *options) { o.start = &start }
}

// WithTextPolicy installs a hook run on insert and edit text.
func WithTextPolicy(p TextPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds a store seeded with entries, in the given order.
func New(seed []model.Entry, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var c Collection
	seen := make(map[int]struct{}, len(seed))
	maxID := -1
	for i := range seed {
		e := seed[i]
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidSeed, e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.ID > maxID {
			maxID = e.ID
		}
		c = c.conj(&e)
	}

	start := maxID + 1
	if o.start != nil {
		if *o.start <= maxID {
			return nil, fmt.Errorf("%w: id generator would start at %d, highest seeded id is %d",
				ErrInvalidSeed, *o.start, maxID)
		}
		start = *o.start
	}

	return &Store{
		state:     State{Entries: c, IDs: NewIDGenerator(start)},
		policy:    o.policy,
		listeners: map[int]func(Collection){},
		log:       o.logger.With("component", "store"),
	}, nil
}

// Current returns the latest committed collection.
func (s *Store) Current() Collection { return s.state.Entries }

// State returns the latest committed state.
func (s *Store) State() State { return s.state }

// Subscribe registers fn to be called after every commit that changes the
// collection. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Collection)) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return func() {
		delete(s.listeners, id)
		for i, x := range s.order {
			if x == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Insert appends a new entry with the given text.
func (s *Store) Insert(text string) error {
	text, err := s.apply(text)
	if err != nil {
		return err
	}
	c, g := Insert(s.state.Entries, s.state.IDs, text)
	s.commit("insert", State{c, g})
	return nil
}

// Remove drops the entry with the given id, if present.
func (s *Store) Remove(id int) {
	c, g := Remove(s.state.Entries, s.state.IDs, id)
	s.commit("remove", State{c, g})
}

// Toggle flips the checked flag of the entry with the given id, if present.
func (s *Store) Toggle(id int) {
	c, g := Toggle(s.state.Entries, s.state.IDs, id)
	s.commit("toggle", State{c, g})
}

// Restore puts a removed entry back at index i. See the Restore function.
func (s *Store) Restore(i int, e model.Entry) {
	c, g := Restore(s.state.Entries, s.state.IDs, i, e)
	s.commit("restore", State{c, g})
}

// Edit replaces the text of the entry with the given id, if present.
func (s *Store) Edit(id int, text string) error {
	text, err := s.apply(text)
	if err != nil {
		return err
	}
	c, g := Edit(s.state.Entries, s.state.IDs, id, text)
	s.commit("edit", State{c, g})
	return nil
}

func (s *Store) apply(text string) (string, error) {
	if s.policy == nil {
		return text, nil
	}
	out, err := s.policy(text)
	if err != nil {
		if !errors.Is(err, ErrRejected) {
			err = fmt.Errorf("%w: %w", ErrRejected, err)
		}
		return "", err
	}
	return out, nil
}

func (s *Store) commit(op string, next State) {
	if next.Entries.Same(s.state.Entries) && next.IDs == s.state.IDs {
		s.log.Debug("no-op mutation", "op", op)
		return
	}
	s.state = next
	s.log.Debug("commit", "op", op, "len", next.Entries.Len(), "next_id", next.IDs.Peek())
	for _, id := range append([]int(nil), s.order...) {
		if fn, ok := s.listeners[id]; ok {
			fn(next.Entries)
		}
	}
}
