package render_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/vtodo/internal/model"
	"github.com/idilsaglam/vtodo/internal/render"
	"github.com/idilsaglam/vtodo/internal/store"
	"github.com/idilsaglam/vtodo/internal/viewport"
)

// recordingSurface logs every call and keeps what each slot shows.
type recordingSurface struct {
	shown    map[viewport.SlotID]render.Row
	rendered []render.Row
	released []viewport.SlotID
	onRender func(render.Row)
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{shown: map[viewport.SlotID]render.Row{}}
}

func (s *recordingSurface) RenderRow(r render.Row) {
	s.shown[r.Slot] = r
	s.rendered = append(s.rendered, r)
	if s.onRender != nil {
		s.onRender(r)
	}
}

func (s *recordingSurface) ReleaseRow(slot viewport.SlotID) {
	delete(s.shown, slot)
	s.released = append(s.released, slot)
}

func (s *recordingSurface) reset() {
	s.rendered = nil
	s.released = nil
}

// visible returns the entry ids shown, ordered by index.
func (s *recordingSurface) visible() []int {
	rows := make([]render.Row, 0, len(s.shown))
	for _, r := range s.shown {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].Index < rows[b].Index })
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.EntryID
	}
	return ids
}

func seeded(t *testing.T, n int) *store.Store {
	t.Helper()
	entries := make([]model.Entry, n)
	for i := range entries {
		entries[i] = model.Entry{ID: i, Text: fmt.Sprintf("todo %d", i)}
	}
	s, err := store.New(entries)
	require.NoError(t, err)
	return s
}

func mount(t *testing.T, st *store.Store, cfg viewport.Config) (*render.Driver, *recordingSurface) {
	t.Helper()
	surf := newRecordingSurface()
	d, err := render.NewDriver(st, cfg, surf)
	require.NoError(t, err)
	d.Mount()
	return d, surf
}

func TestMountRendersFirstWindow(t *testing.T) {
	d, surf := mount(t, seeded(t, 10000), viewport.Config{RowHeight: 57, ViewportSize: 513})

	assert.Len(t, surf.rendered, 9)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, surf.visible())
	for _, r := range surf.rendered {
		assert.Equal(t, float64(r.Index)*57, r.Top)
		assert.Equal(t, 57.0, r.Height)
		assert.Same(t, d.Handles().Toggle, r.OnToggle)
		assert.Same(t, d.Handles().Remove, r.OnRemove)
	}
}

func TestToggleRerendersOneRow(t *testing.T) {
	d, surf := mount(t, seeded(t, 10000), viewport.Config{RowHeight: 1, ViewportSize: 20, Overscan: 3})
	surf.reset()

	d.RequestToggle(5)

	require.Len(t, surf.rendered, 1)
	assert.Equal(t, 5, surf.rendered[0].EntryID)
	assert.True(t, surf.rendered[0].Checked)
	assert.Empty(t, surf.released)
	assert.Equal(t, 22, d.Stats().Skipped)
}

func TestEditOffscreenRendersNothing(t *testing.T) {
	d, surf := mount(t, seeded(t, 10000), viewport.Config{RowHeight: 1, ViewportSize: 20})
	surf.reset()

	d.RequestToggle(9000)
	require.NoError(t, d.RequestEdit(9001, "far away"))

	assert.Empty(t, surf.rendered)
	assert.Equal(t, "far away", d.Collection().At(9001).Text)
}

func TestRemoveShiftsFollowingRows(t *testing.T) {
	d, surf := mount(t, seeded(t, 100), viewport.Config{RowHeight: 1, ViewportSize: 10})
	surf.reset()

	d.RequestRemove(7)

	// Indices 7, 8, 9 now hold entries 8, 9, 10.
	var ids []int
	for _, r := range surf.rendered {
		ids = append(ids, r.EntryID)
	}
	assert.Equal(t, []int{8, 9, 10}, ids)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 8, 9, 10}, surf.visible())
}

func TestRestoreShiftsRowsBack(t *testing.T) {
	d, surf := mount(t, seeded(t, 100), viewport.Config{RowHeight: 1, ViewportSize: 10})
	removed := *d.Collection().At(7)
	d.RequestRemove(7)
	surf.reset()

	d.RequestRestore(7, removed)

	var ids []int
	for _, r := range surf.rendered {
		ids = append(ids, r.EntryID)
	}
	assert.Equal(t, []int{7, 8, 9}, ids)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, surf.visible())
	assert.Empty(t, surf.released)
}

func TestShrinkReleasesRows(t *testing.T) {
	d, surf := mount(t, seeded(t, 5), viewport.Config{RowHeight: 1, ViewportSize: 10})
	require.Len(t, surf.rendered, 5)
	surf.reset()

	d.RequestRemove(4)
	d.RequestRemove(0)

	assert.Len(t, surf.released, 2)
	assert.Equal(t, []int{1, 2, 3}, surf.visible())
}

func TestInsertIntoVisibleTail(t *testing.T) {
	d, surf := mount(t, seeded(t, 3), viewport.Config{RowHeight: 1, ViewportSize: 10})
	surf.reset()

	require.NoError(t, d.RequestInsert("new"))

	require.Len(t, surf.rendered, 1)
	assert.Equal(t, 3, surf.rendered[0].Index)
	assert.Equal(t, 3, surf.rendered[0].EntryID)
	assert.Equal(t, "new", surf.rendered[0].Text)
}

func TestScrollRendersOnlyEnteringRows(t *testing.T) {
	d, surf := mount(t, seeded(t, 10000), viewport.Config{RowHeight: 57, ViewportSize: 513})
	before := d.Scheduler().Allocated()
	surf.reset()

	d.NotifyScroll(570)

	assert.Equal(t, 10, d.Scheduler().Range().First)
	assert.Len(t, surf.rendered, 9)
	assert.Empty(t, surf.released, "slots were recycled, not released")
	assert.Equal(t, before, d.Scheduler().Allocated())
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18}, surf.visible())

	surf.reset()
	d.NotifyScroll(570) // same rows, nothing entered
	assert.Empty(t, surf.rendered)

	surf.reset()
	d.NotifyScroll(570 + 57) // one row in, one out
	require.Len(t, surf.rendered, 1)
	assert.Equal(t, 19, surf.rendered[0].Index)
	assert.Empty(t, surf.released)
}

func TestHandlesSurviveManyEdits(t *testing.T) {
	d, surf := mount(t, seeded(t, 50), viewport.Config{RowHeight: 1, ViewportSize: 10})
	h := d.Handles()
	for i := 0; i < 20; i++ {
		require.NoError(t, d.RequestInsert("x"))
		d.RequestToggle(i)
	}
	assert.Equal(t, h, d.Handles())

	// A row rendered long ago still carries a handle that acts on today's
	// collection.
	row := surf.shown[0]
	row.OnRemove.Call(row.EntryID)
	assert.Equal(t, -1, d.Collection().IndexOf(row.EntryID))
	assert.Equal(t, 69, d.Collection().Len())
}

func TestEventsDuringRenderAreQueued(t *testing.T) {
	d, surf := mount(t, seeded(t, 30), viewport.Config{RowHeight: 1, ViewportSize: 5})
	surf.reset()

	var order []string
	fired := false
	surf.onRender = func(r render.Row) {
		order = append(order, fmt.Sprintf("render %d", r.Index))
		if !fired {
			fired = true
			// The toggle lands after the scroll has fully rendered.
			r.OnToggle.Call(r.EntryID)
		}
	}
	d.NotifyScroll(10)

	assert.Equal(t, []string{
		"render 10", "render 11", "render 12", "render 13", "render 14",
		"render 10",
	}, order)
	assert.True(t, d.Collection().At(10).Checked)
}

func TestUnmount(t *testing.T) {
	d, surf := mount(t, seeded(t, 100), viewport.Config{RowHeight: 1, ViewportSize: 10})
	surf.reset()

	d.Unmount()
	assert.Len(t, surf.released, 10)
	assert.Empty(t, surf.shown)
	assert.False(t, d.Mounted())
	assert.Equal(t, 0, d.Scheduler().Allocated())

	surf.reset()
	d.RequestToggle(1) // store still mutates, driver no longer listens
	d.NotifyScroll(40)
	assert.Empty(t, surf.rendered)
	assert.True(t, d.Collection().At(1).Checked)
}

func TestNewDriverRejectsBadConfig(t *testing.T) {
	_, err := render.NewDriver(seeded(t, 1), viewport.Config{RowHeight: 0, ViewportSize: 10}, newRecordingSurface())
	assert.ErrorIs(t, err, viewport.ErrConfig)

	d, _ := mount(t, seeded(t, 1), viewport.Config{RowHeight: 1, ViewportSize: 10})
	assert.ErrorIs(t, d.Resize(-1), viewport.ErrConfig)
}

func TestResize(t *testing.T) {
	d, surf := mount(t, seeded(t, 100), viewport.Config{RowHeight: 1, ViewportSize: 10})
	surf.reset()

	require.NoError(t, d.Resize(4))
	assert.Len(t, surf.released, 6)
	assert.Empty(t, surf.rendered)

	require.NoError(t, d.Resize(12))
	assert.Len(t, surf.rendered, 8)
}
