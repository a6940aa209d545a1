package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/mdsplit.go/internal/ui"
)

// Stdin is the input name that selects standard input.
const Stdin = "-"

// ErrInputNotFound is returned when the source document does not exist.
var ErrInputNotFound = errors.New("input file not found")

// SourceProvider determines and retrieves the source document.
type SourceProvider struct {
	path      string
	clipboard bool
	stdin     io.Reader
}

// New creates a SourceProvider reading from path, stdin when path is "-",
// or the clipboard when useClipboard is set.
func New(path string, useClipboard bool) *SourceProvider {
	return &SourceProvider{
		path:      path,
		clipboard: useClipboard,
		stdin:     os.Stdin,
	}
}

// Name describes where content is read from.
func (sp *SourceProvider) Name() string {
	switch {
	case sp.clipboard:
		return "clipboard"
	case sp.path == Stdin:
		return "stdin"
	default:
		return sp.path
	}
}

// Check verifies the source exists without reading it.
func (sp *SourceProvider) Check() error {
	if sp.clipboard || sp.path == Stdin {
		return nil
	}
	if _, err := os.Stat(sp.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: '%s'", ErrInputNotFound, sp.path)
		}
		return fmt.Errorf("failed to stat input file: %w", err)
	}
	return nil
}

// GetContent retrieves the whole document.
func (sp *SourceProvider) GetContent() (string, error) {
	if err := sp.Check(); err != nil {
		return "", err
	}

	switch {
	case sp.clipboard:
		content, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("failed to read from clipboard: %w", err)
		}
		if content == "" {
			ui.Warning("Clipboard is empty. Nothing to process.")
		}
		return content, nil
	case sp.path == Stdin:
		content, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	default:
		content, err := os.ReadFile(sp.path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(content), nil
	}
}
