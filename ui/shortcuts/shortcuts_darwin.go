//go:build darwin

package shortcuts

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const ControlModifier = fyne.KeyModifierSuper

var SettingsShortcut = &desktop.CustomShortcut{Modifier: fyne.KeyModifierSuper, KeyName: fyne.KeyComma}
