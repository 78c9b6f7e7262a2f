package main

import (
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- THEME (Lip Gloss) --------------------
// Shared styles come from the styles package

var (
	appStyle   = styles.AppStyle
	panelStyle = styles.PanelStyle

	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.CBorder).
			Padding(1, 2).
			Background(styles.CPanel)
)
