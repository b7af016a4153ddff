package ui

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

func width(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// ProgressBar draws done out of total as a bar w cells wide, in the current
// theme's glyphs and colours, followed by the percentage.
func ProgressBar(done, total, w int) string {
	w = max(w, 5)
	frac := 0.0
	if total > 0 {
		frac = math.Min(float64(done)/float64(total), 1)
	}
	filled := int(frac * float64(w))
	return fmt.Sprintf("%s%s %3d%%",
		C(current.Success, strings.Repeat(current.BarFull, filled)),
		C(current.Muted, strings.Repeat(current.BarEmpty, w-filled)),
		int(frac*100))
}

// Panel draws a framed box around lines using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if n := width(ln); n > maxw {
			maxw = n
		}
	}
	pad := func(s string) string {
		if vis := width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// Table lays rows out in aligned columns; the first row is the header.
func Table(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Separator = "  "
	for _, r := range rows {
		cells := make([]interface{}, len(r))
		for j, c := range r {
			cells[j] = c
		}
		tbl.AddRow(cells...)
	}
	fmt.Fprintln(w, tbl)
}
