package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sokinpui/mdsplit.go/model"
)

var (
	// fileHeadingRegex matches a level-2 or level-3 heading whose text is a
	// path ending in one of the recognized extensions.
	fileHeadingRegex = regexp.MustCompile(`^(#{2,3})\s+(.+\.(?:ts|tsx|js|mjs|json|sql|md|css))\s*$`)
	fence            = "```"
)

// Extensions lists the file extensions recognized in headings.
var Extensions = []string{".ts", ".tsx", ".js", ".mjs", ".json", ".sql", ".md", ".css"}

// HeadingMatch is a line recognized as a file heading.
type HeadingMatch struct {
	Depth int
	Path  string
}

// MatchHeading classifies a single line.
func MatchHeading(line string) (HeadingMatch, bool) {
	m := fileHeadingRegex.FindStringSubmatch(line)
	if m == nil {
		return HeadingMatch{}, false
	}
	return HeadingMatch{
		Depth: len(m[1]),
		Path:  strings.TrimSpace(m[2]),
	}, true
}

// IsFence reports whether line opens or closes a fenced block.
func IsFence(line string) bool {
	return strings.HasPrefix(line, fence)
}

// SplitLines splits content into lines that keep their terminators.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type captureState int

const (
	noCapture captureState = iota
	awaitingOpenFence
	insideBlock
)

// capture is the pending file for the most recent heading.
type capture struct {
	state captureState
	path  string
	lines []string
}

func (c *capture) start(path string) {
	c.state = awaitingOpenFence
	c.path = path
	c.lines = nil
}

func (c *capture) reset() {
	c.state = noCapture
	c.path = ""
	c.lines = nil
}

func (c *capture) file() model.ExtractedFile {
	return model.ExtractedFile{
		Path:    c.path,
		Content: strings.Join(c.lines, ""),
	}
}

// Extract scans lines once and returns the files they describe, in document
// order. Only the first fenced block after a heading is captured.
//
// A capture interrupted by a new heading, or by the end of input, is kept
// only if it already holds at least one line. A capture closed by its fence
// is always kept, even when empty.
func Extract(lines []string) []model.ExtractedFile {
	var files []model.ExtractedFile
	var c capture

	for _, line := range lines {
		if h, ok := MatchHeading(line); ok {
			if len(c.lines) > 0 {
				files = append(files, c.file())
			}
			c.start(h.Path)
			continue
		}

		switch c.state {
		case awaitingOpenFence:
			if IsFence(line) {
				c.state = insideBlock
			}
		case insideBlock:
			if IsFence(line) {
				files = append(files, c.file())
				c.reset()
				continue
			}
			c.lines = append(c.lines, line)
		}
	}

	if len(c.lines) > 0 {
		files = append(files, c.file())
	}
	return files
}

// Filter keeps files whose extension is in extensions. An empty list keeps
// everything.
func Filter(files []model.ExtractedFile, extensions []string) []model.ExtractedFile {
	if len(extensions) == 0 {
		return files
	}
	kept := make([]model.ExtractedFile, 0, len(files))
	for _, f := range files {
		if hasAllowedExtension(f.Path, extensions) {
			kept = append(kept, f)
		}
	}
	return kept
}

func hasAllowedExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, allowedExt := range extensions {
		if ext == allowedExt {
			return true
		}
	}
	return false
}
