package ui

import tea "github.com/charmbracelet/bubbletea"

// Run starts the chat console and blocks until the user quits.
func Run(app *App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
