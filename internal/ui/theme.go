package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending []color.Attribute
	BoxUnchecked, BoxChecked                      string
	BarFull, BarEmpty                             string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title: []color.Attribute{color.Bold}, Muted: []color.Attribute{color.FgHiBlack},
		Accent: []color.Attribute{color.FgBlue}, Success: []color.Attribute{color.FgGreen},
		Error: []color.Attribute{color.FgRed}, Pending: []color.Attribute{color.FgYellow},
		BoxUnchecked: "☐", BoxChecked: "☑",
		BarFull: "█", BarEmpty: "░",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
	}
}

// SetTheme selects "classic", "neon" or "mono".
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: []color.Attribute{color.FgHiMagenta}, Muted: []color.Attribute{color.FgHiBlack},
			Accent: []color.Attribute{color.FgHiCyan}, Success: []color.Attribute{color.FgGreen},
			Error: []color.Attribute{color.FgRed}, Pending: []color.Attribute{color.FgHiYellow},
			BoxUnchecked: "◻", BoxChecked: "◼",
			BarFull: "▰", BarEmpty: "▱",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		disableColor = true
		current = Theme{
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			BarFull: "#", BarEmpty: ".",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// Box returns the checkbox glyph for checked, coloured.
func Box(checked bool) string {
	if checked {
		return C(current.Success, current.BoxChecked)
	}
	return C(current.Muted, current.BoxUnchecked)
}
