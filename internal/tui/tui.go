package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/mdsplit.go/mdsplit"
	"github.com/sokinpui/mdsplit.go/model"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))           // Orange
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// --- Messages ---
type summaryMsg struct {
	model.Summary
}

type errorMsg struct {
	err     error
	summary model.Summary
}

func (e errorMsg) Error() string { return e.err.Error() }

type progressMsg struct {
	current, total int
}

// --- Model ---
type Model struct {
	app     *mdsplit.App
	spinner spinner.Model
	state   state
	summary model.Summary
	current int
	total   int
	err     error
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

func New(app *mdsplit.App) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &Model{
		app:     app,
		spinner: s,
		state:   stateProcessing,
	}
}

// SetProgram lets the model forward progress updates from the app.
func (m *Model) SetProgram(p *tea.Program) {
	m.app.SetProgressCallback(func(current, total int) {
		p.Send(progressMsg{current: current, total: total})
	})
}

// Err returns the error the run ended with, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case progressMsg:
		m.current, m.total = msg.current, msg.total

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg.Summary
		return m, tea.Quit

	case errorMsg:
		m.state = stateError
		m.summary = msg.summary
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.state {
	case stateProcessing:
		if m.total > 0 {
			return fmt.Sprintf("%s Processing... [%d/%d]", m.spinner.View(), m.current, m.total)
		}
		return fmt.Sprintf("%s Processing...", m.spinner.View())
	case stateError:
		var b strings.Builder
		if len(m.summary.Files) > 0 {
			b.WriteString(m.renderSummary())
		}
		b.WriteString(errorStyle.Render("Error: ", m.err.Error()))
		b.WriteString("\n")
		return b.String()
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m *Model) renderSummary() string {
	var b strings.Builder

	if m.summary.Message != "" {
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n\n")
	}

	preview := m.summary.Mode == model.ModePreview
	if len(m.summary.Dirs) > 0 {
		label := "Created directories:"
		if preview {
			label = "Would create directories:"
		}
		b.WriteString(successStyle.Render(label))
		b.WriteString("\n")
		for _, d := range m.summary.Dirs {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(d)))
		}
	}

	if len(m.summary.Files) > 0 {
		label := "Wrote files:"
		if preview {
			label = "Would write files:"
		}
		b.WriteString(successStyle.Render(label))
		b.WriteString("\n")
		for _, f := range m.summary.Files {
			line := fmt.Sprintf("  %s %s", pathStyle.Render(f.Path), faintStyle.Render(fmt.Sprintf("(%s, %d bytes)", f.Action, f.Size)))
			b.WriteString(line + "\n")
			if preview {
				b.WriteString(faintStyle.Render("    "+f.Preview) + "\n")
			}
		}
	}

	if preview && len(m.summary.Files) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("[DRY RUN] No files were created. Run with --create to write files."))
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		b.WriteString(faintStyle.Render("Nothing to do."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) runApp() tea.Msg {
	summary, err := m.app.Execute()
	if err != nil {
		// Check for detailed error to print stack
		if e, ok := err.(*mdsplit.DetailedError); ok {
			// The TUI will exit, so we can print to stderr here for the stack trace.
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", e.Stack)
		}
		return errorMsg{err: err, summary: summary}
	}
	return summaryMsg{
		Summary: summary,
	}
}
