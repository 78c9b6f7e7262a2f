package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- MAIN --------------------

func main() {
	m := newModel(defaultConfigPath())
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.stopPresaleWatch()
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
