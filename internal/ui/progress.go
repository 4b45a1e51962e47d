package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows an indeterminate activity indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// NewSpinner starts a spinner writing to w. Without a terminal, or with
// NoColor, it prints the title as a plain line instead of animating.
func NewSpinner(theme *Theme, hm *HeadlessManager, w io.Writer, title string) Spinner {
	if hm.IsHeadless() || theme.NoColor || !IsTerminal(w) {
		return newHeadlessSpinner(title, w)
	}
	return newInteractiveSpinner(theme, title, w)
}

// WithSpinner runs fn while a spinner titled title is shown. fn may retitle
// the spinner as it progresses.
func WithSpinner(theme *Theme, hm *HeadlessManager, w io.Writer, title string, fn func(s Spinner) error) error {
	s := NewSpinner(theme, hm, w, title)
	defer s.Stop()
	return fn(s)
}

// --- interactiveSpinner ---

// spinnerTitleMsg is sent to update the spinner title.
type spinnerTitleMsg string

// spinnerStopMsg is sent to stop the spinner.
type spinnerStopMsg struct{}

// spinnerModel is the bubbletea Model for the animated spinner.
type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	}
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// interactiveSpinner implements Spinner with an animated bubbles spinner.
type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

// The program runs on its own goroutine until Stop.
func newInteractiveSpinner(theme *Theme, title string, w io.Writer) *interactiveSpinner {
	m := newSpinnerModel(theme, title)
	p := tea.NewProgram(m, tea.WithOutput(w), tea.WithInput(nil))

	s := &interactiveSpinner{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return s
}

// SetTitle updates the spinner title.
func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

// Stop halts the spinner.
func (s *interactiveSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

// --- headlessSpinner ---

// headlessSpinner implements Spinner with plain text log output.
type headlessSpinner struct {
	title   string
	writer  io.Writer
	stopped bool
}

// newHeadlessSpinner creates a headless spinner that prints the title.
func newHeadlessSpinner(title string, w io.Writer) *headlessSpinner {
	s := &headlessSpinner{
		title:  title,
		writer: w,
	}
	_, _ = fmt.Fprintf(w, "%s\n", title)
	return s
}

// SetTitle updates the spinner title and prints a log line.
func (s *headlessSpinner) SetTitle(title string) {
	s.title = title
	_, _ = fmt.Fprintf(s.writer, "%s\n", title)
}

// Stop halts the spinner.
func (s *headlessSpinner) Stop() {
	s.stopped = true
}
