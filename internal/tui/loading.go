package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/resolution/internal/tui/theme"
)

type loadedMsg[T any] struct {
	value T
	err   error
}

// loadingModel shows a spinner while fn runs.
type loadingModel[T any] struct {
	spinner spinner.Model
	label   string
	fn      func() (T, error)
	done    bool
	value   T
	err     error
}

func newLoadingModel[T any](label string, fn func() (T, error)) loadingModel[T] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)
	return loadingModel[T]{spinner: sp, label: label, fn: fn}
}

func (m loadingModel[T]) Init() tea.Cmd {
	fn := m.fn
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		v, err := fn()
		return loadedMsg[T]{value: v, err: err}
	})
}

func (m loadingModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		m.done = true
		m.value, m.err = msg.value, msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrInterrupted
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m loadingModel[T]) View() string {
	if m.done {
		return ""
	}
	muted := lipgloss.NewStyle().Foreground(theme.Active.TextMuted)
	return fmt.Sprintf("  %s %s\n", m.spinner.View(), muted.Render(m.label))
}

// WithSpinner runs fn while drawing a spinner on out.
func WithSpinner[T any](out io.Writer, label string, fn func() (T, error)) (T, error) {
	p := tea.NewProgram(newLoadingModel(label, fn), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("spinner: %w", err)
	}
	m := final.(loadingModel[T])
	return m.value, m.err
}
