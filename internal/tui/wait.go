// internal/tui/wait.go
//
// Spinner screen shown while "autoloader wait" blocks for the manifest.
// The blocking wait runs as a tea.Cmd; its result ends the program.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WaitFunc blocks until a manifest path exists or ctx ends.
type WaitFunc func(ctx context.Context) (string, error)

type foundMsg struct{ path string }

type waitFailedMsg struct{ err error }

// WaitModel is the bubbletea model for the wait screen.
type WaitModel struct {
	spinner spinner.Model
	paths   []string
	wait    WaitFunc
	ctx     context.Context
	cancel  context.CancelFunc
	found   string
	err     error
	done    bool
}

// NewWaitModel builds the model. Cancelling ctx or pressing q/esc/ctrl+c stops the wait.
func NewWaitModel(ctx context.Context, paths []string, wait WaitFunc) WaitModel {
	ctx, cancel := context.WithCancel(ctx)
	return WaitModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))),
		),
		paths:  append([]string(nil), paths...),
		wait:   wait,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Init starts the spinner and the wait.
func (m WaitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitCmd())
}

func (m WaitModel) waitCmd() tea.Cmd {
	ctx, wait := m.ctx, m.wait
	return func() tea.Msg {
		path, err := wait(ctx)
		if err != nil {
			return waitFailedMsg{err: err}
		}
		return foundMsg{path: path}
	}
}

// Update handles key presses, spinner ticks and the wait result.
func (m WaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			m.err = context.Canceled
			m.done = true
			return m, tea.Quit
		}
	case foundMsg:
		m.cancel()
		m.found = msg.path
		m.done = true
		return m, tea.Quit
	case waitFailedMsg:
		m.cancel()
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the spinner and the watched paths.
func (m WaitModel) View() string {
	if m.done {
		switch {
		case m.found != "":
			return okStyle.Render("found "+m.found) + "\n"
		case m.err != nil:
			return missingStyle.Render(fmt.Sprintf("stopped waiting: %v", m.err)) + "\n"
		}
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s Waiting for dependencies to be installed...\n", m.spinner.View())
	for _, path := range m.paths {
		b.WriteString(shadowStyle.Render("  " + path))
		b.WriteString("\n")
	}
	b.WriteString(shadowStyle.Render("press q to give up"))
	b.WriteString("\n")
	return b.String()
}

// Found returns the manifest path once the wait succeeded.
func (m WaitModel) Found() string {
	return m.found
}

// Err returns why the wait ended without a manifest.
func (m WaitModel) Err() error {
	return m.err
}
