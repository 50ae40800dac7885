package main

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// promptModel reads one line of code
type promptModel struct {
	input     textinput.Model
	submitted bool
}

func newPromptModel() promptModel {
	ti := textinput.New()
	ti.Placeholder = PromptPlaceholder
	ti.Prompt = promptStyle.Render(PromptLabel)
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted {
		return ""
	}
	return m.input.View() + FmtNewline + hintStyle.Render(PromptHint) + FmtNewline
}

// prompt runs the line editor on in and out until Enter or Esc
func prompt(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(newPromptModel(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(promptModel)
	if !ok || !m.submitted {
		return "", errors.New(ErrMsgPromptCancelled)
	}
	return m.input.Value(), nil
}
