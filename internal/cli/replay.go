package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/vtodo/internal/model"
	"github.com/idilsaglam/vtodo/internal/render"
	"github.com/idilsaglam/vtodo/internal/store"
	"github.com/idilsaglam/vtodo/internal/ui"
)

func newReplayCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "Apply a script of edits and scrolls, then print the result",
		Long: `replay reads one operation per line from the script, or from stdin when no
script is given, and applies it to a headless list:

  add <text...>        append an entry
  rm <id>              remove an entry
  toggle <id>          flip an entry's checked state
  edit <id> <text...>  replace an entry's text
  scroll <offset>      move the viewport

Blank lines and lines starting with # are ignored.`,
		Example: `  printf 'add a\nadd b\nadd c\nrm 1\ntoggle 2\n' | vtodo replay --seed-count 0`,
		Args:    cobra.MaximumNArgs(1),
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

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}

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

			if err := replay(in, d); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printCollection(out, d.Collection(), limit)
			printStats(out, d)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "print at most this many entries (0: all)")
	return cmd
}

// replay applies every operation in r to d, in order.
func replay(r io.Reader, d *render.Driver) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := apply(d, line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

func apply(d *render.Driver, line string) error {
	op, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch op {
	case "add":
		return d.RequestInsert(rest)
	case "rm", "toggle":
		id, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("%s: not a number: %q", op, rest)
		}
		if op == "rm" {
			d.RequestRemove(id)
		} else {
			d.RequestToggle(id)
		}
		return nil
	case "edit":
		idText, text, _ := strings.Cut(rest, " ")
		id, err := strconv.Atoi(idText)
		if err != nil {
			return fmt.Errorf("edit: not a number: %q", idText)
		}
		return d.RequestEdit(id, strings.TrimSpace(text))
	case "scroll":
		offset, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return fmt.Errorf("scroll: not a number: %q", rest)
		}
		d.NotifyScroll(offset)
		return nil
	}
	return fmt.Errorf("unknown operation %q", op)
}

// printCollection prints up to limit entries in a framed panel.
func printCollection(w io.Writer, c store.Collection, limit int) {
	lines := summaryLines(c)
	lines = append(lines, "")
	lines = append(lines, flatLines(c, limit)...)
	ui.Panel(w, lines)
}

// maxTitleWidth is the widest title flatLines prints, in terminal cells.
const maxTitleWidth = 80

func flatLines(c store.Collection, limit int) []string {
	if c.Len() == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	var out []string
	c.Each(func(i int, e *model.Entry) bool {
		if limit > 0 && i >= limit {
			out = append(out, ui.C(ui.Current().Muted, fmt.Sprintf("… %d more", c.Len()-limit)))
			return false
		}
		title := runewidth.Truncate(e.Text, maxTitleWidth, "...")
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(ui.Current().Muted, fmt.Sprintf("%4d", e.ID)), ui.Box(e.Checked), title))
		return true
	})
	return out
}

func printStats(w io.Writer, d *render.Driver) {
	st := d.Stats()
	ms := d.MemoStats()
	s := d.Scheduler()
	fmt.Fprintln(w, ui.C(ui.Current().Muted, fmt.Sprintf(
		"events %d  rendered %d  skipped %d  released %d  memo %d/%d  range %v  slots %d",
		st.Events, st.Rendered, st.Skipped, st.Released, ms.Hits, ms.Hits+ms.Misses,
		s.Range(), s.Allocated())))
}
