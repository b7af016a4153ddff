package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/vtodo/internal/model"
	"github.com/idilsaglam/vtodo/internal/render"
	"github.com/idilsaglam/vtodo/internal/store"
	"github.com/idilsaglam/vtodo/internal/viewport"
)

// ErrEmptyText is returned by TrimPolicy for blank text.
var ErrEmptyText = errors.New("title cannot be empty")

// TrimPolicy is the text policy the terminal list installs on its store:
// surrounding space is trimmed and blank titles are refused.
func TrimPolicy(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %w", store.ErrRejected, ErrEmptyText)
	}
	return text, nil
}

const (
	// lines taken by the header, the status line and the help line
	chromeLines = 3
	// lines taken by the framed input box
	inputLines = 4
	wheelStep  = 3
	// list height used until the terminal reports its size
	initialLines = 20
)

// Options tune the terminal list.
type Options struct {
	// FitTerminal makes the viewport follow the terminal height. When false
	// the configured viewport size is kept.
	FitTerminal bool
	Logger      *slog.Logger
}

// Model is the Bubble Tea model of the list. It is the rendering surface of
// a render.Driver: the driver pushes rows into the row cache, View only
// arranges cached lines.
type Model struct {
	driver *render.Driver
	rows   *rowCache
	keys   keyMap
	help   help.Model
	log    *slog.Logger

	fit           bool
	width, height int
	selected      int
	done          int

	// Last removed entry, for a single level of undo.
	undo *removed

	// Inline add / edit share one text input.
	adding   bool
	editing  bool
	editID   int
	ti       textinput.Model
	inputErr string
}

type removed struct {
	index int
	entry model.Entry
}

// New mounts a driver for st and returns the model showing it. cfg is in
// row units where one terminal line is cfg.RowHeight tall.
func New(st *store.Store, cfg viewport.Config, opt Options) (Model, error) {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opt.FitTerminal {
		cfg.ViewportSize = float64(initialLines) * cfg.RowHeight
	}
	rows := newRowCache()
	d, err := render.NewDriver(st, cfg, rows, render.WithLogger(log))
	if err != nil {
		return Model{}, err
	}
	d.Mount()

	done, _ := st.Current().Stats()
	m := Model{
		driver: d,
		rows:   rows,
		keys:   defaultKeys(),
		help:   help.New(),
		log:    log.With("component", "tui"),
		fit:    opt.FitTerminal,
		done:   done,
		width:  80,
		height: initialLines + chromeLines + frameLines,
	}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200
	return m, nil
}

// Run starts the program on the alternate screen and unmounts the driver
// when it exits.
func Run(st *store.Store, cfg viewport.Config, opt Options) error {
	m, err := New(st, cfg, opt)
	if err != nil {
		return err
	}
	defer m.driver.Unmount()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// Driver returns the driver behind the model.
func (m Model) Driver() *render.Driver { return m.driver }

// Selected returns the index of the highlighted entry.
func (m Model) Selected() int { return m.selected }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	}
	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveTo(m.selected - 1)
		case key.Matches(msg, m.keys.Down):
			m.moveTo(m.selected + 1)
		case key.Matches(msg, m.keys.PageUp):
			m.moveTo(m.selected - m.listLines())
		case key.Matches(msg, m.keys.PageDown):
			m.moveTo(m.selected + m.listLines())
		case key.Matches(msg, m.keys.Home):
			m.moveTo(0)
		case key.Matches(msg, m.keys.End):
			m.moveTo(m.length() - 1)
		case key.Matches(msg, m.keys.Toggle):
			if r, ok := m.selectedRow(); ok {
				if r.Checked {
					m.done--
				} else {
					m.done++
				}
				r.OnToggle.Call(r.EntryID)
			}
		case key.Matches(msg, m.keys.Remove):
			if r, ok := m.selectedRow(); ok {
				if r.Checked {
					m.done--
				}
				m.undo = &removed{m.selected, model.Entry{ID: r.EntryID, Text: r.Text, Checked: r.Checked}}
				r.OnRemove.Call(r.EntryID)
				m.moveTo(m.selected)
			}
		case key.Matches(msg, m.keys.Undo):
			if u := m.undo; u != nil {
				m.undo = nil
				n := m.length()
				m.driver.RequestRestore(u.index, u.entry)
				if m.length() > n {
					if u.entry.Checked {
						m.done++
					}
					m.moveTo(u.index)
				}
			}
		case key.Matches(msg, m.keys.Add):
			m.adding = true
			m.inputErr = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			m.ti.Focus()
			m.layout()
		case key.Matches(msg, m.keys.Edit):
			if r, ok := m.selectedRow(); ok {
				m.editing = true
				m.editID = r.EntryID
				m.inputErr = ""
				m.ti.SetValue(r.Text)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit item title..."
				m.ti.Focus()
				m.layout()
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-wheelStep)
		case tea.MouseButtonWheelDown:
			m.scrollBy(wheelStep)
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			var err error
			if m.adding {
				err = m.driver.Handles().Insert.Call(m.ti.Value())
			} else {
				err = m.driver.Handles().Edit.Call(m.editID, m.ti.Value())
			}
			if err != nil {
				m.inputErr = "Title cannot be empty"
				if !errors.Is(err, ErrEmptyText) {
					m.inputErr = err.Error()
				}
				return m, nil
			}
			if m.adding {
				m.closeInput()
				m.moveTo(m.length() - 1)
				return m, nil
			}
			m.closeInput()
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding = false
	m.editing = false
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.layout()
}

func (m Model) length() int { return m.driver.Collection().Len() }

func (m Model) rowHeight() float64 { return m.driver.Scheduler().Config().RowHeight }

// listLines is the number of terminal lines the list may use.
func (m Model) listLines() int {
	n := m.height - chromeLines - frameLines
	if m.adding || m.editing {
		n -= inputLines
	}
	if n < 1 {
		n = 1
	}
	return n
}

// topLine is the index of the first row drawn.
func (m Model) topLine() int {
	return int(math.Floor(m.driver.Scheduler().Offset() / m.rowHeight()))
}

// layout resizes the viewport to the terminal and keeps the selection on
// screen.
func (m *Model) layout() {
	if m.fit {
		if err := m.driver.Resize(float64(m.listLines()) * m.rowHeight()); err != nil {
			m.log.Warn("resize", "err", err)
		}
	}
	m.moveTo(m.selected)
}

// moveTo selects index i, clamped to the collection, and scrolls it into view.
func (m *Model) moveTo(i int) {
	n := m.length()
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	m.selected = i

	top, lines := m.topLine(), m.visibleLines()
	switch {
	case i < top:
		top = i
	case i >= top+lines:
		top = i - lines + 1
	}
	m.scrollTo(top)
}

func (m *Model) scrollBy(delta int) {
	m.scrollTo(m.topLine() + delta)
	top, lines := m.topLine(), m.visibleLines()
	if m.selected < top {
		m.selected = top
	} else if m.selected >= top+lines {
		m.selected = top + lines - 1
	}
}

func (m *Model) scrollTo(top int) {
	s := m.driver.Scheduler()
	offset := math.Min(float64(top)*m.rowHeight(), s.MaxOffset(m.length()))
	if offset < 0 {
		offset = 0
	}
	if offset != s.Offset() {
		m.driver.NotifyScroll(offset)
	}
}

// visibleLines is how many rows fit in the viewport, which may be smaller
// than the terminal when the size is configured.
func (m Model) visibleLines() int {
	cfg := m.driver.Scheduler().Config()
	n := int(math.Floor(cfg.ViewportSize / cfg.RowHeight))
	if l := m.listLines(); n > l || n < 1 {
		n = l
	}
	return n
}

func (m Model) selectedRow() (render.Row, bool) {
	slot, ok := m.driver.Scheduler().SlotFor(m.selected)
	if !ok {
		return render.Row{}, false
	}
	return m.rows.row(slot)
}

func (m Model) View() string {
	n := m.length()
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), m.done,
		pendingStyle.Render("•"), n-m.done,
		accentStyle.Render("Total"), n,
	)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	top, lines := m.topLine(), m.visibleLines()
	for i := top; i < top+lines; i++ {
		if i < n {
			prefix := "  "
			if i == m.selected {
				prefix = selectedStyle.Render("> ")
			}
			line := ""
			if slot, ok := m.driver.Scheduler().SlotFor(i); ok {
				line = m.rows.lines[slot]
			}
			b.WriteString(prefix + line)
		} else if i == 0 {
			b.WriteString(mutedStyle.Render("no items"))
		}
		b.WriteString("\n")
	}

	st := m.driver.Stats()
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d  rows %v  rendered %d  skipped %d  slots %d",
		min(m.selected+1, n), n, m.driver.Scheduler().Range(), st.Rendered, st.Skipped,
		m.driver.Scheduler().Allocated())))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += ": " + errorStyle.Render(m.inputErr)
		}
		b.WriteString("\n")
		b.WriteString(frameStyle.Render(title + "\n" + m.ti.View()))
	}
	return panelString(b.String())
}
