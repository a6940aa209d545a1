package mdsplit

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/sokinpui/mdsplit.go/cli"
	"github.com/sokinpui/mdsplit.go/internal/fs"
	"github.com/sokinpui/mdsplit.go/internal/parser"
	"github.com/sokinpui/mdsplit.go/internal/source"
	"github.com/sokinpui/mdsplit.go/model"
)

// ErrInputNotFound is returned when the source document does not exist.
var ErrInputNotFound = source.ErrInputNotFound

// ProgressUpdate is a callback function to report progress.
type ProgressUpdate func(current, total int)

// App orchestrates the entire application logic.
type App struct {
	cfg              *cli.Config
	sourceProvider   *source.SourceProvider
	progressCallback ProgressUpdate
	headings         []parser.HeadingInfo
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// RunError is a fatal run failure annotated with the last document line
// processed before it happened. Line is 0 when parsing never started.
type RunError struct {
	Line int
	Err  error
}

func (e *RunError) Error() string {
	return e.Err.Error()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	return &App{
		cfg:            cfg,
		sourceProvider: source.New(cfg.Input, cfg.Clipboard),
	}, nil
}

// SetProgressCallback sets a function to be called for progress updates.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// Mode returns the mode the app runs in.
func (a *App) Mode() model.Mode {
	if a.cfg.Create {
		return model.ModeWrite
	}
	return model.ModePreview
}

// SourceName describes where the document is read from.
func (a *App) SourceName() string {
	return a.sourceProvider.Name()
}

// CheckSource verifies the source document exists without reading it.
func (a *App) CheckSource() error {
	if err := a.sourceProvider.Check(); err != nil {
		return &RunError{Err: err}
	}
	return nil
}

// Headings returns the outline collected by an --outline run.
func (a *App) Headings() []parser.HeadingInfo {
	return a.headings
}

// Execute reads the source document, extracts its files, and writes or
// previews them.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	if a.cfg.Outline {
		return a.outline()
	}
	return a.processContent()
}

// processContent reads and parses the whole document before anything is
// materialized.
func (a *App) processContent() (model.Summary, error) {
	summary := model.Summary{Mode: a.Mode()}

	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return summary, &RunError{Err: err}
	}

	lines := parser.SplitLines(content)
	files := parser.Filter(parser.Extract(lines), a.cfg.Extensions)
	lastLine := len(lines)

	if len(files) == 0 {
		summary.Message = "No file headings with code blocks were found. Nothing to do."
		return summary, nil
	}

	m := fs.New(a.cfg.OutputDir, a.Mode())
	if a.progressCallback != nil {
		m.SetProgressCallback(fs.ProgressUpdate(a.progressCallback))
	}
	summary, err = m.Materialize(files)
	if err != nil {
		return summary, &RunError{Line: lastLine, Err: err}
	}
	return summary, nil
}

// outline lists headings instead of extracting files.
func (a *App) outline() (model.Summary, error) {
	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return model.Summary{}, &RunError{Err: err}
	}

	headings, err := parser.Outline([]byte(content))
	if err != nil {
		return model.Summary{}, &RunError{Line: len(parser.SplitLines(content)), Err: err}
	}
	a.headings = headings

	files := 0
	for _, h := range headings {
		if h.IsFile {
			files++
		}
	}
	return model.Summary{
		Mode:    model.ModePreview,
		Message: fmt.Sprintf("Found %d headings, %d of them file markers.", len(headings), files),
	}, nil
}
