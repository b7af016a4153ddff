// Package render drives a rendering surface from the store and the viewport.
//
// The driver reacts to two events, a committed collection and a new scroll
// offset. Each is handled to completion before the next one starts: events
// raised while one is being handled (a surface invoking a handle from inside
// RenderRow, say) are queued and handled afterwards.
package render

import (
	"io"
	"log/slog"

	"github.com/idilsaglam/vtodo/internal/callbacks"
	"github.com/idilsaglam/vtodo/internal/memo"
	"github.com/idilsaglam/vtodo/internal/model"
	"github.com/idilsaglam/vtodo/internal/store"
	"github.com/idilsaglam/vtodo/internal/viewport"
)

// Row is everything a surface needs to paint one entry.
type Row struct {
	Slot     viewport.SlotID
	Index    int
	EntryID  int
	Text     string
	Checked  bool
	OnToggle *callbacks.IDHandle
	OnRemove *callbacks.IDHandle
	Top      float64
	Height   float64
}

// Surface paints rows. RenderRow replaces whatever the slot showed before.
// ReleaseRow is called when a slot stops showing anything.
type Surface interface {
	RenderRow(r Row)
	ReleaseRow(slot viewport.SlotID)
}

// Stats counts the work done by a driver.
type Stats struct {
	Events   int
	Rendered int
	Skipped  int
	Released int
}

type event interface{ isEvent() }

type collectionChanged struct{ c store.Collection }

type scrollChanged struct{ offset float64 }

type resized struct{ size float64 }

func (collectionChanged) isEvent() {}
func (scrollChanged) isEvent()     {}
func (resized) isEvent()           {}

// Driver wires a store, a scheduler and a surface together.
type Driver struct {
	store   *store.Store
	handles callbacks.Handles
	sched   *viewport.Scheduler
	memo    *memo.Table[viewport.SlotID]
	surface Surface
	log     *slog.Logger

	unsubscribe func()
	mounted     bool
	queue       []event
	dispatching bool
	stats       Stats
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// NewDriver validates cfg and returns an unmounted driver.
func NewDriver(st *store.Store, cfg viewport.Config, surface Surface, opts ...Option) (*Driver, error) {
	sched, err := viewport.NewScheduler(cfg)
	if err != nil {
		return nil, err
	}
	d := &Driver{
		store:   st,
		handles: callbacks.Stabilize(st),
		sched:   sched,
		memo:    memo.NewTable[viewport.SlotID](),
		surface: surface,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With("component", "render")
	return d, nil
}

// Handles returns the stable mutation handles rows are rendered with.
func (d *Driver) Handles() callbacks.Handles { return d.handles }

// Scheduler exposes the viewport state for reading.
func (d *Driver) Scheduler() *viewport.Scheduler { return d.sched }

// Collection returns the collection the driver renders.
func (d *Driver) Collection() store.Collection { return d.store.Current() }

// Mounted reports whether the driver is between Mount and Unmount.
func (d *Driver) Mounted() bool { return d.mounted }

// Stats returns the work counters.
func (d *Driver) Stats() Stats { return d.stats }

// MemoStats returns the memo table's hit and miss counters.
func (d *Driver) MemoStats() memo.Stats { return d.memo.Stats() }

// Mount renders the first window at offset 0 and starts following the store.
func (d *Driver) Mount() {
	if d.mounted {
		return
	}
	d.mounted = true
	d.unsubscribe = d.store.Subscribe(func(c store.Collection) {
		d.dispatch(collectionChanged{c})
	})
	d.dispatch(scrollChanged{0})
	d.log.Debug("mounted", "len", d.store.Current().Len(), "range", d.sched.Range())
}

// Unmount releases every row and stops following the store. Later events are
// ignored.
func (d *Driver) Unmount() {
	if !d.mounted {
		return
	}
	d.unsubscribe()
	d.unsubscribe = nil
	for _, b := range d.sched.Bindings() {
		d.release(b.Slot)
	}
	d.sched.Reset()
	d.memo.Reset()
	d.queue = nil
	d.mounted = false
	d.log.Debug("unmounted", "stats", d.stats)
}

// NotifyScroll moves the viewport to offset.
func (d *Driver) NotifyScroll(offset float64) { d.dispatch(scrollChanged{offset}) }

// Resize changes the viewport size.
func (d *Driver) Resize(size float64) error {
	if err := (viewport.Config{
		RowHeight:    d.sched.Config().RowHeight,
		ViewportSize: size,
		Overscan:     d.sched.Config().Overscan,
	}).Validate(); err != nil {
		return err
	}
	d.dispatch(resized{size})
	return nil
}

// RequestInsert appends an entry through the stable insert handle.
func (d *Driver) RequestInsert(text string) error { return d.handles.Insert.Call(text) }

// RequestRemove removes an entry through the stable remove handle.
func (d *Driver) RequestRemove(id int) { d.handles.Remove.Call(id) }

// RequestToggle toggles an entry through the stable toggle handle.
func (d *Driver) RequestToggle(id int) { d.handles.Toggle.Call(id) }

// RequestRestore puts a removed entry back at index i.
func (d *Driver) RequestRestore(i int, e model.Entry) { d.store.Restore(i, e) }

// RequestEdit edits an entry through the stable edit handle.
func (d *Driver) RequestEdit(id int, text string) error { return d.handles.Edit.Call(id, text) }

func (d *Driver) dispatch(ev event) {
	if !d.mounted {
		d.log.Debug("event after unmount dropped", "event", ev)
		return
	}
	d.queue = append(d.queue, ev)
	if d.dispatching {
		return
	}
	d.dispatching = true
	defer func() { d.dispatching = false }()
	for len(d.queue) > 0 && d.mounted {
		ev := d.queue[0]
		d.queue = d.queue[1:]
		d.handle(ev)
	}
}

func (d *Driver) handle(ev event) {
	d.stats.Events++
	c := d.store.Current()
	switch ev := ev.(type) {
	case collectionChanged:
		diff := d.sched.Update(d.sched.Offset(), ev.c.Len())
		d.apply(ev.c, diff, true)
	case scrollChanged:
		diff := d.sched.Update(ev.offset, c.Len())
		d.apply(c, diff, false)
	case resized:
		diff, err := d.sched.SetViewportSize(ev.size)
		if err != nil {
			d.log.Warn("resize rejected", "err", err)
			return
		}
		d.apply(c, diff, false)
	}
}

// apply pushes a scheduler diff to the surface. Entered rows have no key
// recorded and always render; kept rows are only checked when recheck is set.
func (d *Driver) apply(c store.Collection, diff viewport.Diff, recheck bool) {
	for _, id := range diff.Released {
		d.release(id)
	}
	for _, b := range diff.Entered {
		d.memo.Forget(b.Slot)
		d.render(c, b)
	}
	if !recheck {
		return
	}
	for _, b := range diff.Kept {
		d.render(c, b)
	}
}

func (d *Driver) render(c store.Collection, b viewport.Binding) {
	e := c.At(b.Index)
	if e == nil {
		return
	}
	key := memo.KeyFor(e, d.handles)
	if !d.memo.Check(b.Slot, key) {
		d.stats.Skipped++
		return
	}
	d.stats.Rendered++
	d.surface.RenderRow(Row{
		Slot:     b.Slot,
		Index:    b.Index,
		EntryID:  e.ID,
		Text:     e.Text,
		Checked:  e.Checked,
		OnToggle: d.handles.Toggle,
		OnRemove: d.handles.Remove,
		Top:      d.sched.Top(b.Index),
		Height:   d.sched.Config().RowHeight,
	})
}

func (d *Driver) release(id viewport.SlotID) {
	d.memo.Forget(id)
	d.stats.Released++
	d.surface.ReleaseRow(id)
}
