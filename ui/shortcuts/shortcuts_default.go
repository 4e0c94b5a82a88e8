//go:build !darwin

package shortcuts

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const ControlModifier = fyne.KeyModifierControl

// SettingsShortcut is nil where preferences are bound in the keymap (ctrl+p).
var SettingsShortcut *desktop.CustomShortcut = nil
