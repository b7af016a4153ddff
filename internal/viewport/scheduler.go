package viewport

import (
	"math"
	"sort"
)

// SlotID addresses a slot in the scheduler's pool.
type SlotID int

// Slot is a reusable rendering unit. While bound it shows the row at Index.
type Slot struct {
	ID    SlotID
	Index int
	Bound bool
}

// Binding pairs a slot with the index it shows.
type Binding struct {
	Slot  SlotID
	Index int
}

// Diff is the outcome of one scheduler update.
type Diff struct {
	Range Range
	// Entered lists indices that came into range, with the slot now backing
	// them. They have never been rendered in that slot.
	Entered []Binding
	// Kept lists indices that were in range before and still are.
	Kept []Binding
	// Released lists slots that were unbound and not handed to another index.
	Released []SlotID
}

// Scheduler tracks the scroll offset and binds the visible indices to a pool
// of slots. Slots are allocated lazily, recycled when their index scrolls out
// of range, and only dropped by Reset.
type Scheduler struct {
	cfg     Config
	offset  float64
	length  int
	rng     Range
	slots   []Slot
	free    []SlotID
	byIndex map[int]SlotID
}

// NewScheduler validates cfg and returns a scheduler at offset 0 with an
// empty range.
func NewScheduler(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.capacity()
	return &Scheduler{
		cfg:     cfg,
		slots:   make([]Slot, 0, n),
		free:    make([]SlotID, 0, n),
		byIndex: make(map[int]SlotID, n),
	}, nil
}

// Config returns the scheduler's constants.
func (s *Scheduler) Config() Config { return s.cfg }

// Offset returns the current scroll offset.
func (s *Scheduler) Offset() float64 { return s.offset }

// Range returns the current bound range.
func (s *Scheduler) Range() Range { return s.rng }

// Allocated returns how many slots the pool has ever created.
func (s *Scheduler) Allocated() int { return len(s.slots) }

// Slot returns the slot with the given id.
func (s *Scheduler) Slot(id SlotID) (Slot, bool) {
	if id < 0 || int(id) >= len(s.slots) {
		return Slot{}, false
	}
	return s.slots[id], true
}

// SlotFor returns the slot currently showing index i.
func (s *Scheduler) SlotFor(i int) (SlotID, bool) {
	id, ok := s.byIndex[i]
	return id, ok
}

// Top returns the vertical offset of the row at index i.
func (s *Scheduler) Top(i int) float64 { return float64(i) * s.cfg.RowHeight }

// ContentSize returns the total height of length rows.
func (s *Scheduler) ContentSize(length int) float64 { return float64(length) * s.cfg.RowHeight }

// MaxOffset returns the largest offset that still fills the viewport.
func (s *Scheduler) MaxOffset(length int) float64 {
	return math.Max(0, s.ContentSize(length)-s.cfg.ViewportSize)
}

// Bindings returns the bound slots ordered by index.
func (s *Scheduler) Bindings() []Binding {
	out := make([]Binding, 0, len(s.byIndex))
	for i, id := range s.byIndex {
		out = append(out, Binding{Slot: id, Index: i})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// Update moves the viewport to offset over a collection of the given length
// and rebinds slots.
func (s *Scheduler) Update(offset float64, length int) Diff {
	if math.IsNaN(offset) {
		offset = 0
	}
	s.offset = offset
	s.length = length
	return s.rebind(VisibleRange(s.cfg, offset, length))
}

// SetViewportSize changes the viewport size and rebinds slots.
func (s *Scheduler) SetViewportSize(size float64) (Diff, error) {
	cfg := s.cfg
	cfg.ViewportSize = size
	if err := cfg.Validate(); err != nil {
		return Diff{Range: s.rng}, err
	}
	s.cfg = cfg
	return s.rebind(VisibleRange(s.cfg, s.offset, s.length)), nil
}

// Reset unbinds and drops every slot.
func (s *Scheduler) Reset() {
	s.slots = s.slots[:0]
	s.free = s.free[:0]
	s.byIndex = map[int]SlotID{}
	s.rng = Range{}
}

func (s *Scheduler) rebind(next Range) Diff {
	d := Diff{Range: next}

	// Release first so that leaving slots can back entering indices.
	var released []SlotID
	for i := s.rng.First; i < s.rng.Last; i++ {
		if next.Contains(i) {
			continue
		}
		id, ok := s.byIndex[i]
		if !ok {
			continue
		}
		delete(s.byIndex, i)
		s.slots[id].Bound = false
		s.free = append(s.free, id)
		released = append(released, id)
	}

	for i := next.First; i < next.Last; i++ {
		if id, ok := s.byIndex[i]; ok {
			d.Kept = append(d.Kept, Binding{Slot: id, Index: i})
			continue
		}
		id := s.acquire()
		s.slots[id].Index = i
		s.slots[id].Bound = true
		s.byIndex[i] = id
		d.Entered = append(d.Entered, Binding{Slot: id, Index: i})
	}

	for _, id := range released {
		if !s.slots[id].Bound {
			d.Released = append(d.Released, id)
		}
	}
	s.rng = next
	return d
}

func (s *Scheduler) acquire() SlotID {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		return id
	}
	id := SlotID(len(s.slots))
	s.slots = append(s.slots, Slot{ID: id})
	return id
}
