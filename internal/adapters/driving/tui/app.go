// Package tui provides an interactive terminal client for asking the
// documentation index questions.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
)

// answerReceived carries a completed answer into the update loop.
type answerReceived struct {
	answer domain.Answer
}

// askFailed carries a query failure into the update loop.
type askFailed struct {
	err error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	answerStyle = lipgloss.NewStyle().PaddingLeft(2)
	sourceStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model for the ask loop.
type Model struct {
	ctx     context.Context
	queries driving.QueryService

	input    textinput.Model
	view     viewport.Model
	spin     spinner.Model
	asking   bool
	content  string
	lastErr  error
	ready    bool
	width    int
	height   int
	quitting bool
}

// NewModel creates the TUI model around a query service.
func NewModel(ctx context.Context, queries driving.QueryService) Model {
	input := textinput.New()
	input.Placeholder = "Ask the documentation a question..."
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		queries: queries,
		input:   input,
		spin:    spin,
		width:   80,
		height:  24,
	}
}

// Init initialises the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - 4
		}
		m.view.SetContent(m.content)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.asking {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.asking = true
			m.lastErr = nil
			return m, tea.Batch(m.spin.Tick, m.ask(question))
		}

	case answerReceived:
		m.asking = false
		m.input.Reset()
		m.content = renderAnswer(msg.answer)
		m.view.SetContent(m.content)
		m.view.GotoTop()
		return m, nil

	case askFailed:
		m.asking = false
		m.lastErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.asking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.view, cmd = m.view.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("docnav"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.asking:
		b.WriteString(m.spin.View() + " thinking...")
	case m.lastErr != nil:
		b.WriteString(errorStyle.Render("error: " + m.lastErr.Error()))
	case m.ready:
		b.WriteString(m.view.View())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: ask • esc: quit"))
	return b.String()
}

// ask runs the query off the update loop.
func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.queries.Ask(m.ctx, question, domain.DefaultTopK)
		if err != nil {
			return askFailed{err: err}
		}
		return answerReceived{answer: answer}
	}
}

func renderAnswer(answer domain.Answer) string {
	var b strings.Builder
	b.WriteString(answerStyle.Render(answer.Text))
	if len(answer.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(sourceStyle.Render(fmt.Sprintf("Sources: %s (%d fragments, %s)",
			strings.Join(answer.Sources, ", "), answer.ChunksUsed, answer.Model)))
	}
	return b.String()
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, queries driving.QueryService) error {
	program := tea.NewProgram(NewModel(ctx, queries), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
