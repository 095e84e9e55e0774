package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Sync progress UI
// =============================================================================

// syncPhaseMsg announces a new collection phase (e.g., "Collecting reports").
type syncPhaseMsg struct {
	name string
}

// syncProgressMsg carries running totals for the current phase.
type syncProgressMsg struct {
	done, failed, total int
}

// syncFinishedMsg tells the UI the run is over.
type syncFinishedMsg struct{}

// syncModel is the bubbletea model for live sync progress.
type syncModel struct {
	phase  string
	done   int
	failed int
	total  int
	cancel context.CancelFunc
}

func (m syncModel) Init() tea.Cmd {
	return nil
}

func (m syncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case syncPhaseMsg:
		m.phase = msg.name
		m.done, m.failed, m.total = 0, 0, 0
	case syncProgressMsg:
		m.done, m.failed, m.total = msg.done, msg.failed, msg.total
	case syncFinishedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m syncModel) View() string {
	if m.phase == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.phase))
	b.WriteString("\n\n")
	b.WriteString("  " + renderBar(m.done+m.failed, m.total, 40))
	b.WriteString("\n\n")

	counts := fmt.Sprintf("  %d/%d stations", m.done+m.failed, m.total)
	if m.failed > 0 {
		counts += StyleWarning.Render(fmt.Sprintf("  %d failed", m.failed))
	}
	b.WriteString(StyleDim.Render(counts))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  q to abort"))
	b.WriteString("\n")

	return b.String()
}

// renderBar draws a fixed-width progress bar.
func renderBar(current, total, width int) string {
	if total <= 0 {
		return StyleDim.Render(strings.Repeat("░", width))
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}
	return StyleHighlight.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", width-filled))
}

// =============================================================================
// syncUI - progress dispatch
// =============================================================================

// syncUI routes progress updates either to a live bubbletea display or,
// when stdout is not a terminal, nowhere (the logger carries warnings).
type syncUI struct {
	prog *tea.Program
	done chan struct{}
}

// newSyncUI starts the progress display. cancel is invoked if the user
// aborts from the UI. Returns a UI that silently discards updates when
// plain is set or stdout is not a terminal.
func newSyncUI(plain bool, cancel context.CancelFunc) *syncUI {
	if plain || !isTerminal(os.Stdout) {
		return &syncUI{}
	}

	p := tea.NewProgram(syncModel{cancel: cancel}, tea.WithOutput(os.Stderr))
	ui := &syncUI{prog: p, done: make(chan struct{})}
	go func() {
		defer close(ui.done)
		_, _ = p.Run()
	}()
	return ui
}

// Phase announces a new collection phase and resets the totals.
func (u *syncUI) Phase(name string) {
	if u.prog != nil {
		u.prog.Send(syncPhaseMsg{name: name})
	}
}

// Progress reports running totals for the current phase.
func (u *syncUI) Progress(done, failed, total int) {
	if u.prog != nil {
		u.prog.Send(syncProgressMsg{done: done, failed: failed, total: total})
	}
}

// Close shuts the display down and waits for the terminal to be restored.
func (u *syncUI) Close() {
	if u.prog != nil {
		u.prog.Send(syncFinishedMsg{})
		<-u.done
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
