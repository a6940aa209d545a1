package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/sokinpui/mdsplit.go/internal/parser"
	"github.com/sokinpui/mdsplit.go/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

const dryRunPrefix = "[DRY RUN] "

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// Prefix returns the dry-run marker for preview mode.
func Prefix(mode model.Mode) string {
	if mode == model.ModePreview {
		return dryRunPrefix
	}
	return ""
}

// --- Summaries ---

// PrintSummary writes the per-directory and per-file report of a run.
// When runErr is set the summary is partial and no completion banner is
// printed.
func PrintSummary(w io.Writer, s model.Summary, runErr error) {
	HeaderColor.Fprintf(w, "\n%sProcessing %d files...\n\n", Prefix(s.Mode), len(s.Files))

	dirs := make(map[string]bool, len(s.Dirs))
	for _, d := range s.Dirs {
		dirs[d] = true
	}

	for _, f := range s.Files {
		if dir := filepath.Dir(f.Path); dirs[dir] {
			delete(dirs, dir)
			if s.Mode == model.ModePreview {
				fmt.Fprintf(w, "%sWould create directory: %s\n", dryRunPrefix, dir)
			} else {
				SuccessColor.Fprintf(w, "Created directory: %s\n", dir)
			}
		}

		if s.Mode == model.ModePreview {
			fmt.Fprintf(w, "%sWould %s file: %s\n", dryRunPrefix, f.Action, f.Path)
			fmt.Fprintf(w, "          Size: %d bytes\n", f.Size)
			fmt.Fprintf(w, "          Preview: %s\n\n", f.Preview)
		} else {
			verb := "Created"
			if f.Action == model.ActionModify {
				verb = "Overwrote"
			}
			SuccessColor.Fprintf(w, "%s file: %s (%d bytes)\n", verb, f.Path, f.Size)
		}
	}

	switch {
	case runErr != nil && s.Mode == model.ModePreview:
		WarningColor.Fprintf(w, "\nPreviewed %d files before the error.\n", len(s.Files))
	case runErr != nil:
		WarningColor.Fprintf(w, "\nWrote %d files before the error.\n", len(s.Files))
	case s.Mode == model.ModePreview:
		HeaderColor.Fprintf(w, "\n[DRY RUN COMPLETE] No files were created. Run with --create to write files.\n")
	default:
		SuccessColor.Fprintf(w, "\nSuccessfully wrote %d files!\n", len(s.Files))
	}
	if s.Message != "" {
		InfoColor.Fprintf(w, "%s\n", s.Message)
	}
}

// PrintOutline lists the headings that may carry files, marking the ones
// the extractor treats as file markers.
func PrintOutline(w io.Writer, headings []parser.HeadingInfo) {
	if len(headings) == 0 {
		fmt.Fprintln(w, "No level 2 or 3 headings found.")
		return
	}
	for _, h := range headings {
		marker := " "
		if h.IsFile {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %5d  %s %s\n", marker, h.Line, strings.Repeat("#", h.Level), h.Text)
	}
}
