package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/justinpbarnett/loupe/internal/config"
	"github.com/justinpbarnett/loupe/internal/filter"
	"github.com/justinpbarnett/loupe/internal/ingest"
	logstore "github.com/justinpbarnett/loupe/internal/log"
	"github.com/justinpbarnett/loupe/internal/state"
	"github.com/justinpbarnett/loupe/internal/telemetry"
	"github.com/justinpbarnett/loupe/internal/ui"
	"github.com/justinpbarnett/loupe/internal/ui/styles"
)

const repoSlug = "justinpbarnett/loupe"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			runVersion(repoSlug)
			return
		case "update":
			runUpdate(repoSlug)
			return
		}
	}

	flags := pflag.NewFlagSet("loupe", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: loupe [flags] [file]\n\nReads from stdin when no file is given.\n\nFlags:\n%s", flags.FlagUsages())
	}
	follow := flags.BoolP("follow", "f", false, "keep reading the file as it grows")
	filterPat := flags.String("filter", "", "hide lines not matching this pattern")
	rangeSpec := flags.String("range", "", "restrict match highlighting to lines N:M (1-based, inclusive)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("warning: load config: %v (using defaults)", err)
		def := config.DefaultConfig()
		cfg = &def
	}
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "follow" {
			cfg.UI.Follow = follow
		}
	})

	switch cfg.UI.Theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
	if err := styles.LoadTheme(styles.DefaultThemePath()); err != nil {
		log.Printf("warning: %v", err)
	}

	path := flags.Arg(0)
	if path == "" && stdinIsTerminal() {
		flags.Usage()
		os.Exit(2)
	}

	opt := ingest.Options{Source: ingest.SourceStdin}
	displayPath := "stdin"
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if _, err := os.Stat(abs); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		displayPath = abs
		opt = ingest.Options{
			Source: ingest.SourceFile,
			Path:   abs,
			Follow: cfg.UI.Follow != nil && *cfg.UI.Follow,
		}
	}

	lines := logstore.NewStore(displayPath)
	view := state.NewStore()

	if *filterPat != "" {
		if !filter.Valid(*filterPat) {
			fmt.Fprintf(os.Stderr, "error: invalid --filter pattern %q\n", *filterPat)
			os.Exit(2)
		}
		view.AddFilter(filter.Filter{
			Pattern:       *filterPat,
			CaseSensitive: cfg.Search.CaseSensitive != nil && *cfg.Search.CaseSensitive,
		})
	}
	if *rangeSpec != "" {
		r, err := parseRange(*rangeSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		view.SetHighlightRange(r)
	}

	if path != "" && cfg.Session.Persist != nil && *cfg.Session.Persist {
		if p, err := state.NewPersistence(); err != nil {
			log.Printf("warning: session persistence disabled: %v", err)
		} else {
			state.Rehydrate(view, p.Load(displayPath))
			p.Bind(view, displayPath)
		}
	}

	var sink telemetry.Sink = telemetry.Nop{}
	if cfg.Telemetry.Enabled == nil || *cfg.Telemetry.Enabled {
		tpath := cfg.Telemetry.Path
		if tpath == "" {
			tpath = telemetry.DefaultPath()
		}
		sink = telemetry.NewFileSink(tpath)
	}

	lineCh, errCh := ingest.Read(context.Background(), opt)

	app := ui.NewApp(cfg, lines, view, lineCh, errCh, sink)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// parseRange parses a 1-based "N:M" line range into a 0-based Range.
// "N:" leaves the range unbounded above.
func parseRange(spec string) (*state.Range, error) {
	lo, hi, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("invalid --range %q, want N:M", spec)
	}
	lower, err := strconv.Atoi(lo)
	if err != nil || lower < 1 {
		return nil, fmt.Errorf("invalid --range lower bound %q", lo)
	}
	r := &state.Range{Lower: lower - 1}
	if hi != "" {
		upper, err := strconv.Atoi(hi)
		if err != nil || upper < lower {
			return nil, fmt.Errorf("invalid --range upper bound %q", hi)
		}
		u := upper - 1
		r.Upper = &u
	}
	return r, nil
}
