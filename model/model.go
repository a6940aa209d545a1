package model

// ExtractedFile is a single file recovered from the source document.
type ExtractedFile struct {
	// Path is relative, taken verbatim from the heading.
	Path string
	// Content is the exact body of the first fenced block under the heading,
	// original line endings included.
	Content string
}

// Mode selects whether the materializer touches the filesystem.
type Mode int

const (
	// ModePreview reports what would happen without writing anything.
	ModePreview Mode = iota
	// ModeWrite creates directories and writes files.
	ModeWrite
)

func (m Mode) String() string {
	if m == ModeWrite {
		return "write"
	}
	return "preview"
}

// File actions reported in a FileResult.
const (
	ActionCreate = "create"
	ActionModify = "modify"
)

// FileResult describes what happened (or would happen) to one file.
type FileResult struct {
	Path    string
	Action  string
	Size    int
	Preview string
}

// Summary holds the results of a run for display.
type Summary struct {
	Mode    Mode
	Dirs    []string
	Files   []FileResult
	Message string
}
