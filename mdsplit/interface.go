package mdsplit

import (
	"github.com/sokinpui/mdsplit.go/internal/fs"
	"github.com/sokinpui/mdsplit.go/internal/parser"
	"github.com/sokinpui/mdsplit.go/model"
)

// Config for using mdsplit as a library.
type Config struct {
	// OutputDir is the root that heading paths are resolved against.
	OutputDir string
	// Write files instead of only previewing them.
	Create bool
	// Keep only files with these extensions (e.g., ".sql"). Empty keeps all.
	Extensions []string
}

// Extract returns the files described by a markdown document.
func Extract(content string, config Config) []model.ExtractedFile {
	return parser.Filter(parser.Extract(parser.SplitLines(content)), config.Extensions)
}

// Split extracts the files in content and materializes them below
// config.OutputDir.
func Split(content string, config Config) (model.Summary, error) {
	mode := model.ModePreview
	if config.Create {
		mode = model.ModeWrite
	}

	lines := parser.SplitLines(content)
	files := parser.Filter(parser.Extract(lines), config.Extensions)

	summary, err := fs.New(config.OutputDir, mode).Materialize(files)
	if err != nil {
		return summary, &RunError{Line: len(lines), Err: err}
	}
	return summary, nil
}
