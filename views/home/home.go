// Package home renders the wallet unlock screen shown before a session exists.
package home

import (
	"strings"

	"cryptodevs-tui/styles"

	"github.com/charmbracelet/huh"
)

// TempPassword receives the keystore password typed into the form.
var TempPassword string

// CreateUnlockForm asks for the password of the keystore at path.
func CreateUnlockForm(path string) *huh.Form {
	TempPassword = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Unlock wallet").
				Description("Keystore: " + path).
				EchoMode(huh.EchoModePassword).
				Value(&TempPassword),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the unlock form, or the connect hint when there is none.
func Render(form *huh.Form, connecting bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Connect Wallet")
	if connecting {
		return h + "\n\n" + spinnerView + " connecting…"
	}
	if form != nil {
		return h + "\n\n" + form.View()
	}
	return h + "\n\n" + styles.Muted("Set PRIVATE_KEY or configure a keystore in settings, then press ") + styles.Key("w")
}

// Nav returns the navigation bar for the unlock form
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("Enter") + " unlock",
		styles.Key("Esc") + " cancel",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}
