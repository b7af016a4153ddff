package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)
	SetTheme("classic")

	assert.Equal(t, "█████░░░░░  50%", ProgressBar(5, 10, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 2))
	assert.Equal(t, "█████ 100%", ProgressBar(7, 7, 5))
	assert.Equal(t, "█████ 100%", ProgressBar(9, 7, 5), "overfull bars stop at the end")
}

func TestProgressBarFollowsTheme(t *testing.T) {
	defer SetTheme("classic")
	defer SetColorForcing(false, false)

	SetTheme("mono")
	assert.Equal(t, "##...  40%", ProgressBar(2, 5, 5))

	SetTheme("classic")
	SetColorForcing(true, false)
	bar := ProgressBar(1, 2, 6)
	assert.Contains(t, bar, "\x1b[32m███")
	assert.Contains(t, bar, "\x1b[90m░░░")
	assert.Equal(t, "███░░░  50%", stripANSI(bar))
}

func TestPanelPadsToWidestLine(t *testing.T) {
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)

	var b bytes.Buffer
	Panel(&b, []string{"short", C([]color.Attribute{color.FgRed}, "wider ✔ line")})

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	for _, ln := range lines {
		assert.Equal(t, width(lines[0]), width(ln), "%q", ln)
	}
	assert.Contains(t, b.String(), "\x1b[31m")
}

func TestColorDisabled(t *testing.T) {
	SetColorForcing(true, true)
	defer SetColorForcing(false, false)
	assert.Equal(t, "x", C([]color.Attribute{color.Bold}, "x"))
}

func TestTable(t *testing.T) {
	var b bytes.Buffer
	Table(&b, [][]string{{"ID", "TEXT"}, {"1", "Buy milk"}, {"12", "Call mom"}})

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, strings.Index(lines[0], "TEXT"), strings.Index(lines[2], "Call"))
}
