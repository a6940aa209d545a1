package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/sokinpui/mdsplit.go/cli"
	"github.com/sokinpui/mdsplit.go/internal/tui"
	"github.com/sokinpui/mdsplit.go/internal/ui"
	"github.com/sokinpui/mdsplit.go/mdsplit"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := cli.ParseArgs(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		ui.Error("Error: %v", err)
		return 1
	}

	app, err := mdsplit.New(cfg)
	if err != nil {
		ui.Error("Failed to initialize application: %v", err)
		return 1
	}

	// A missing document is reported before anything else happens.
	if err := app.CheckSource(); err != nil {
		ui.Error("Error: %v", err)
		return 1
	}

	if cfg.Outline || cfg.NoAnimation || !isatty.IsTerminal(os.Stdout.Fd()) {
		return runPlain(app, cfg)
	}

	model := tui.New(app)
	p := tea.NewProgram(model)
	model.SetProgram(p)
	if _, err := p.Run(); err != nil {
		ui.Error("Error running program: %v", err)
		return 1
	}
	if err := model.Err(); err != nil {
		reportLine(err)
		return 1
	}
	return 0
}

// runPlain executes without the TUI and prints the report to stdout.
func runPlain(app *mdsplit.App, cfg *cli.Config) int {
	if !cfg.Outline {
		ui.Header("%sParsing %s...", ui.Prefix(app.Mode()), app.SourceName())
	}

	summary, err := app.Execute()
	if err != nil {
		if len(summary.Files) > 0 {
			ui.PrintSummary(os.Stdout, summary, err)
		}
		ui.Error("\nError: %v", err)
		reportLine(err)
		var detailed *mdsplit.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		return 1
	}

	if cfg.Outline {
		ui.PrintOutline(os.Stdout, app.Headings())
		ui.Info("%s", summary.Message)
		return 0
	}
	ui.PrintSummary(os.Stdout, summary, nil)
	return 0
}

// reportLine prints the last processed document line when it is known.
func reportLine(err error) {
	var runErr *mdsplit.RunError
	if errors.As(err, &runErr) && runErr.Line > 0 {
		ui.Error("   Last processed line: %d", runErr.Line)
	}
}
