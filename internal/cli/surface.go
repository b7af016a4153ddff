package cli

import (
	"github.com/idilsaglam/vtodo/internal/render"
	"github.com/idilsaglam/vtodo/internal/viewport"
)

// recorder is the headless surface: it keeps the last row each slot was
// asked to show.
type recorder struct {
	rows     map[viewport.SlotID]render.Row
	renders  int
	releases int
}

func newRecorder() *recorder {
	return &recorder{rows: map[viewport.SlotID]render.Row{}}
}

func (r *recorder) RenderRow(row render.Row) {
	r.rows[row.Slot] = row
	r.renders++
}

func (r *recorder) ReleaseRow(slot viewport.SlotID) {
	delete(r.rows, slot)
	r.releases++
}
