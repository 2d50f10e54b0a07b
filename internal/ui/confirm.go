package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a minimal yes/no prompt
type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "q", "esc", "ctrl+c", "enter":
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.prompt, HintStyle.Render("[y/N]"))
}

// Confirm shows a yes/no prompt and returns whether the user confirmed.
// Anything other than 'y' declines.
func Confirm(prompt string) (bool, error) {
	program := tea.NewProgram(confirmModel{prompt: prompt})

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("failed to run prompt: %w", err)
	}

	model, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}

	return model.confirmed, nil
}
