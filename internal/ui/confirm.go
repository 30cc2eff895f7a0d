package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmKeyMap holds the bindings of the confirmation prompt.
type ConfirmKeyMap struct {
	Toggle  key.Binding
	Accept  key.Binding
	Yes     key.Binding
	Decline key.Binding
}

var DefaultConfirmKeyMap = ConfirmKeyMap{
	Toggle: key.NewBinding(
		key.WithKeys("left", "right", "tab", "h", "l"),
		key.WithHelp("←/→", "toggle"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	Decline: key.NewBinding(
		key.WithKeys("n", "N", "esc", "q", "ctrl+c"),
		key.WithHelp("n/esc", "no"),
	),
}

// ConfirmModel is a yes/no prompt. Left/right or tab move the selection,
// enter accepts it, y and n answer directly, and esc, q or ctrl+c decline.
type ConfirmModel struct {
	prompt    string
	yes       bool
	done      bool
	confirmed bool
	styles    Styles
	keys      ConfirmKeyMap
}

// NewConfirmModel creates a prompt with "no" preselected.
func NewConfirmModel(prompt string, styles Styles) ConfirmModel {
	return ConfirmModel{prompt: prompt, styles: styles, keys: DefaultConfirmKeyMap}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Toggle):
		m.yes = !m.yes
		return m, nil
	case key.Matches(keyMsg, m.keys.Accept):
		m.done = true
		m.confirmed = m.yes
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Yes):
		m.done = true
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Decline):
		m.done = true
		m.confirmed = false
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}

	yes, no := "yes", "no"
	if m.yes {
		yes = m.styles.Choice.Render("[yes]")
	} else {
		no = m.styles.Choice.Render("[no]")
	}
	return fmt.Sprintf("%s %s\n", m.styles.Prompt.Render(m.prompt), lipgloss.JoinHorizontal(lipgloss.Top, yes, " / ", no))
}

// Confirmed reports whether the user accepted.
func (m ConfirmModel) Confirmed() bool {
	return m.done && m.confirmed
}

// Confirm runs the prompt on in/out and returns the answer.
func Confirm(prompt string, in io.Reader, out io.Writer) (bool, error) {
	r := lipgloss.NewRenderer(out)
	p := tea.NewProgram(NewConfirmModel(prompt, NewStyles(r)), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return final.(ConfirmModel).Confirmed(), nil
}
