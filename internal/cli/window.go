package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/vtodo/internal/render"
	"github.com/idilsaglam/vtodo/internal/store"
	"github.com/idilsaglam/vtodo/internal/ui"
)

// defaultWindowRows sizes the headless viewport when none is configured.
const defaultWindowRows = 20

func newWindowCmd() *cobra.Command {
	var offset float64
	cmd := &cobra.Command{
		Use:     "window",
		Short:   "Print the rows a viewport at the given offset would render",
		Example: `  vtodo window --offset 570 --row-height 57 --viewport-size 513 --overscan 0`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			st, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			rec := newRecorder()
			d, err := render.NewDriver(st, cfg.Viewport(defaultWindowRows*cfg.RowHeight), rec, render.WithLogger(log))
			if err != nil {
				return err
			}
			d.Mount()
			defer d.Unmount()
			d.NotifyScroll(offset)

			printWindow(cmd.OutOrStdout(), d, rec)
			return nil
		},
	}
	cmd.Flags().Float64Var(&offset, "offset", 0, "scroll offset, in viewport units")
	return cmd
}

// summaryLines is the header shared by the headless commands.
func summaryLines(c store.Collection) []string {
	d, p := c.Stats()
	t := ui.Current()
	return []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			ui.C(t.Title, "Todos"),
			ui.C(t.Success, "✔"), d,
			ui.C(t.Pending, "•"), p,
			ui.C(t.Accent, "Total"), c.Len(),
		),
		ui.ProgressBar(d, d+p, 28),
	}
}

// printWindow prints the bound rows of d, in index order, as recorded by rec.
func printWindow(w io.Writer, d *render.Driver, rec *recorder) {
	s := d.Scheduler()
	lines := summaryLines(d.Collection())
	lines = append(lines,
		fmt.Sprintf("offset %g  range %v  slots %d", s.Offset(), s.Range(), s.Allocated()))
	ui.Panel(w, lines)

	rows := [][]string{{"SLOT", "INDEX", "ID", "TOP", "", "TEXT"}}
	for _, b := range s.Bindings() {
		r, ok := rec.rows[b.Slot]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(int(r.Slot)),
			strconv.Itoa(r.Index),
			strconv.Itoa(r.EntryID),
			strconv.FormatFloat(r.Top, 'g', -1, 64),
			ui.Current().BoxUnchecked,
			r.Text,
		})
		if r.Checked {
			rows[len(rows)-1][4] = ui.Current().BoxChecked
		}
	}
	if len(rows) == 1 {
		fmt.Fprintln(w, ui.C(ui.Current().Muted, "no items"))
		return
	}
	ui.Table(w, rows)
}
