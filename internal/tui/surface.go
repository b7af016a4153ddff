package tui

import (
	"fmt"

	"github.com/idilsaglam/vtodo/internal/render"
	"github.com/idilsaglam/vtodo/internal/viewport"
)

// rowCache is the terminal surface. It keeps the styled line of every bound
// slot, so drawing a frame only joins strings; a line is rebuilt only when
// the driver asks for it.
type rowCache struct {
	rows    map[viewport.SlotID]render.Row
	lines   map[viewport.SlotID]string
	renders int
}

func newRowCache() *rowCache {
	return &rowCache{
		rows:  map[viewport.SlotID]render.Row{},
		lines: map[viewport.SlotID]string{},
	}
}

func (c *rowCache) RenderRow(r render.Row) {
	c.rows[r.Slot] = r
	c.lines[r.Slot] = renderLine(r)
	c.renders++
}

func (c *rowCache) ReleaseRow(slot viewport.SlotID) {
	delete(c.rows, slot)
	delete(c.lines, slot)
}

func (c *rowCache) row(slot viewport.SlotID) (render.Row, bool) {
	r, ok := c.rows[slot]
	return r, ok
}

// renderLine draws one entry as a single line: "☐ Buy milk".
func renderLine(r render.Row) string {
	box := mutedStyle.Render(boxUnchecked)
	text := r.Text
	if r.Checked {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%s %s", box, text)
}
