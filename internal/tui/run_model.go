// Package tui renders batch-run progress with Bubble Tea.
//
// The engine emits progress events from its own goroutine; the CLI layer
// forwards them into this model as messages. Cancel keys cancel the run
// context; the engine then stops cooperatively at the next file boundary.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/draycall/fbxbatch/internal/engine"
)

// FileMsg reports one completed file.
type FileMsg engine.ProgressEvent

// RunDoneMsg reports the end of the whole run.
type RunDoneMsg struct {
	Status *engine.ImportStatus
	Err    error
}

// Default dimensions for the run view.
const (
	defaultWidth     = 60
	progressBarWidth = 40
)

// Styles for the run view.
//
//nolint:gochecknoglobals // Immutable lipgloss styles, shared across renders.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	summaryStyle = lipgloss.NewStyle().MarginTop(1)
	cancelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// RunModel is the Bubble Tea model for a batch import run.
type RunModel struct {
	events <-chan tea.Msg
	cancel context.CancelFunc
	bar    progress.Model

	total      int
	index      int
	current    string
	succeeded  int
	failed     int
	cancelling bool
	width      int

	// Final outcome, populated by RunDoneMsg.
	Status *engine.ImportStatus
	Err    error
}

// NewRunModel creates a model fed by events. cancel is invoked when the
// user requests a stop; the run itself finishes at the next file
// boundary.
func NewRunModel(total int, events <-chan tea.Msg, cancel context.CancelFunc) *RunModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = progressBarWidth
	return &RunModel{
		events: events,
		cancel: cancel,
		bar:    bar,
		total:  total,
		width:  defaultWidth,
	}
}

// Init implements tea.Model.
func (m *RunModel) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks on the next engine event.
func (m *RunModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// Update implements tea.Model.
func (m *RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-2, progressBarWidth)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.cancelling {
				m.cancelling = true
				m.cancel()
			}
			return m, nil
		}

	case FileMsg:
		m.index = msg.Index
		m.current = msg.File
		m.succeeded = msg.Succeeded
		m.failed = msg.Failed
		return m, m.waitForEvent()

	case RunDoneMsg:
		m.Status = msg.Status
		m.Err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *RunModel) View() string {
	if m.Status != nil || m.Err != nil {
		return m.summaryView()
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.index) / float64(m.total)
	}

	view := titleStyle.Render("fbxbatch") + "\n\n"
	view += m.bar.ViewAs(percent) + "\n"
	view += fmt.Sprintf("%d/%d  %s %s\n",
		m.index, m.total,
		okStyle.Render(fmt.Sprintf("ok:%d", m.succeeded)),
		failStyle.Render(fmt.Sprintf("failed:%d", m.failed)))
	if m.current != "" {
		view += fileStyle.Render(truncatePath(m.current, m.width)) + "\n"
	}
	if m.cancelling {
		view += cancelStyle.Render("cancelling after current file...") + "\n"
	} else {
		view += fileStyle.Render("press q to cancel") + "\n"
	}
	return view
}

// truncatePath keeps the tail of a long path so the file name stays visible.
func truncatePath(path string, width int) string {
	if width <= 3 || len(path) <= width {
		return path
	}
	return "..." + path[len(path)-width+3:]
}

// summaryView renders the final run outcome.
func (m *RunModel) summaryView() string {
	if m.Err != nil {
		return failStyle.Render("run failed: "+m.Err.Error()) + "\n"
	}

	s := m.Status
	line := fmt.Sprintf("done: %d succeeded, %d failed of %d in %s",
		s.SuccessCount, s.FailedCount, s.TotalFiles, s.Elapsed.Round(time.Millisecond))
	if s.Cancelled {
		line = "cancelled: " + line
	}
	return summaryStyle.Render(line) + "\n"
}
