package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sokinpui/mdsplit.go/model"
)

const previewLength = 100

// PathError records a failed directory creation or file write.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ProgressUpdate is called after each file is processed.
type ProgressUpdate func(current, total int)

// Materializer writes extracted files below a root directory.
type Materializer struct {
	root     string
	mode     model.Mode
	seenDirs map[string]struct{}
	progress ProgressUpdate
}

// New creates a Materializer rooted at root.
func New(root string, mode model.Mode) *Materializer {
	return &Materializer{
		root:     root,
		mode:     mode,
		seenDirs: make(map[string]struct{}),
	}
}

// SetProgressCallback sets a function to be called for progress updates.
func (m *Materializer) SetProgressCallback(cb ProgressUpdate) {
	m.progress = cb
}

// Materialize processes files in order. In preview mode nothing on disk is
// changed. The first filesystem error stops processing; the summary of the
// files handled before it is returned alongside the error.
func (m *Materializer) Materialize(files []model.ExtractedFile) (model.Summary, error) {
	summary := model.Summary{Mode: m.mode}
	total := len(files)
	if m.progress != nil {
		m.progress(0, total)
	}

	for i, f := range files {
		target := filepath.Join(m.root, f.Path)

		dir := filepath.Dir(target)
		if _, seen := m.seenDirs[dir]; !seen && dir != "." {
			if m.mode == model.ModeWrite {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return summary, &PathError{Op: "mkdir", Path: dir, Err: err}
				}
			}
			m.seenDirs[dir] = struct{}{}
			summary.Dirs = append(summary.Dirs, dir)
		}

		result := model.FileResult{
			Path:    target,
			Action:  fileAction(target),
			Size:    len(f.Content),
			Preview: Preview(f.Content),
		}

		if m.mode == model.ModeWrite {
			if err := os.WriteFile(target, []byte(f.Content), 0644); err != nil {
				return summary, &PathError{Op: "write", Path: target, Err: err}
			}
		}

		summary.Files = append(summary.Files, result)
		if m.progress != nil {
			m.progress(i+1, total)
		}
	}
	return summary, nil
}

// fileAction reports whether target would be created or overwritten.
func fileAction(target string) string {
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return model.ActionCreate
	}
	return model.ActionModify
}

// Preview returns a one-line excerpt of content with newlines escaped.
func Preview(content string) string {
	runes := []rune(content)
	truncated := len(runes) > previewLength
	if truncated {
		runes = runes[:previewLength]
	}
	preview := strings.ReplaceAll(string(runes), "\n", `\n`)
	if truncated {
		preview += "..."
	}
	return preview
}
