package mdsplit_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sokinpui/mdsplit.go/cli"
	"github.com/sokinpui/mdsplit.go/internal/fs"
	"github.com/sokinpui/mdsplit.go/mdsplit"
	"github.com/sokinpui/mdsplit.go/model"
)

const sampleDoc = "# Chargeback app\n" +
	"\n" +
	"## a/b/c.sql\n" +
	"```sql\n" +
	"SELECT 1;\n" +
	"```\n" +
	"\n" +
	"## package.json\n" +
	"```json\n" +
	"{}\n" +
	"```\n"

// writeDoc writes content to a markdown file in a fresh temp dir.
func writeDoc(t *testing.T, content string) (docPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	docPath = filepath.Join(dir, "doc.md")
	if err := os.WriteFile(docPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
	return docPath, dir
}

func TestExecuteWrite(t *testing.T) {
	docPath, dir := writeDoc(t, sampleDoc)
	outDir := filepath.Join(dir, "out")

	app, err := mdsplit.New(&cli.Config{Input: docPath, OutputDir: outDir, Create: true})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	summary, err := app.Execute()
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if summary.Mode != model.ModeWrite {
		t.Errorf("expected write mode, got %v", summary.Mode)
	}
	if len(summary.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(summary.Files))
	}

	got, err := os.ReadFile(filepath.Join(outDir, "a", "b", "c.sql"))
	if err != nil {
		t.Fatalf("expected out/a/b/c.sql to exist: %v", err)
	}
	if string(got) != "SELECT 1;\n" {
		t.Errorf("c.sql content = %q, want %q", got, "SELECT 1;\n")
	}
}

func TestExecutePreviewWritesNothing(t *testing.T) {
	docPath, dir := writeDoc(t, sampleDoc)
	outDir := filepath.Join(dir, "out")

	app, err := mdsplit.New(&cli.Config{Input: docPath, OutputDir: outDir})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	var progress []int
	app.SetProgressCallback(func(current, total int) {
		progress = append(progress, current)
	})

	summary, err := app.Execute()
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if summary.Mode != model.ModePreview {
		t.Errorf("expected preview mode, got %v", summary.Mode)
	}
	if len(summary.Files) != 2 || len(summary.Dirs) != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Errorf("preview created the output directory")
	}
	if len(progress) != 3 {
		t.Errorf("expected 3 progress updates, got %v", progress)
	}
}

func TestExecuteExtensionFilter(t *testing.T) {
	docPath, dir := writeDoc(t, sampleDoc)

	app, err := mdsplit.New(&cli.Config{
		Input:      docPath,
		OutputDir:  filepath.Join(dir, "out"),
		Extensions: []string{".json"},
	})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	summary, err := app.Execute()
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(summary.Files) != 1 || filepath.Base(summary.Files[0].Path) != "package.json" {
		t.Errorf("unexpected files: %+v", summary.Files)
	}
}

func TestExecuteNothingToDo(t *testing.T) {
	docPath, dir := writeDoc(t, "### x.json\nno fence\n")

	app, err := mdsplit.New(&cli.Config{Input: docPath, OutputDir: filepath.Join(dir, "out"), Create: true})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	summary, err := app.Execute()
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(summary.Files) != 0 || summary.Message == "" {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Errorf("no output directory expected")
	}
}

func TestExecuteInputNotFound(t *testing.T) {
	app, err := mdsplit.New(&cli.Config{Input: filepath.Join(t.TempDir(), "missing.md")})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	_, err = app.Execute()
	if !errors.Is(err, mdsplit.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	var runErr *mdsplit.RunError
	if !errors.As(err, &runErr) || runErr.Line != 0 {
		t.Errorf("expected RunError at line 0, got %#v", err)
	}
}

func TestExecuteFilesystemFailure(t *testing.T) {
	docPath, dir := writeDoc(t, sampleDoc)
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	app, err := mdsplit.New(&cli.Config{Input: docPath, OutputDir: blocked, Create: true})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	_, err = app.Execute()
	var runErr *mdsplit.RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if runErr.Line != 11 {
		t.Errorf("Line = %d, want 11", runErr.Line)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("expected a wrapped *fs.PathError, got %T", runErr.Err)
	}
}

func TestExecuteOutline(t *testing.T) {
	docPath, _ := writeDoc(t, sampleDoc)

	app, err := mdsplit.New(&cli.Config{Input: docPath, Outline: true})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	summary, err := app.Execute()
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(app.Headings()) != 2 {
		t.Errorf("expected 2 headings, got %+v", app.Headings())
	}
	if summary.Message != "Found 2 headings, 2 of them file markers." {
		t.Errorf("unexpected message: %q", summary.Message)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := mdsplit.New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
