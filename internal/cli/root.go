package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/vtodo/internal/config"
	"github.com/idilsaglam/vtodo/internal/model"
	"github.com/idilsaglam/vtodo/internal/seed"
	"github.com/idilsaglam/vtodo/internal/store"
	"github.com/idilsaglam/vtodo/internal/tui"
	"github.com/idilsaglam/vtodo/internal/ui"
)

// Version is set at build time.
var Version = "dev"

// NewRootCmd builds the vtodo command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vtodo",
		Short: "A todo list that stays fast with tens of thousands of entries",
		Long: `vtodo shows a very large todo list in the terminal. Only the rows in view
are ever rendered, and edits redraw only the rows they change.

Without a subcommand it opens the interactive list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newWindowCmd(), newReplayCmd(), &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vtodo %s\n", Version)
		},
	})
	return root
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(cfg, log, store.WithTextPolicy(tui.TrimPolicy))
	if err != nil {
		return err
	}
	return tui.Run(st, cfg.Viewport(0), tui.Options{
		FitTerminal: cfg.ViewportSize == 0,
		Logger:      log,
	})
}

// loadConfig reads the configuration for cmd and applies its output
// settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return cfg, err
	}
	ui.SetColorForcing(cfg.Color == config.ColorAlways, cfg.Color == config.ColorNever)
	ui.SetTheme(cfg.Theme)
	return cfg, nil
}

// openStore seeds a store from the seed file, or generates entries when no
// file is configured.
func openStore(cfg config.Config, log *slog.Logger, opts ...store.Option) (*store.Store, error) {
	var entries []model.Entry
	if cfg.SeedFile != "" {
		var err error
		entries, err = seed.Load(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
	} else {
		entries = seed.Generate(cfg.SeedCount)
	}
	log.Info("seeded", "entries", len(entries), "file", cfg.SeedFile)
	return store.New(entries, append(opts, store.WithLogger(log))...)
}

// newLogger returns a logger writing to the configured log file, or to
// fallback when none is set.
func newLogger(cfg config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	w, closer := fallback, func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, func() { _ = f.Close() }
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})
	return slog.New(h), closer, nil
}
