// Package shortcuts converts toolkit key and mouse events into
// key binding triggers.
package shortcuts

import (
	"unicode"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/reelplayer/reel/backend/keybind"
)

var modifierMap = []struct {
	fyne fyne.KeyModifier
	mod  keybind.Modifier
}{
	{fyne.KeyModifierShift, keybind.ModShift},
	{fyne.KeyModifierControl, keybind.ModCtrl},
	{fyne.KeyModifierAlt, keybind.ModAlt},
	{fyne.KeyModifierSuper, keybind.ModMeta},
}

// Modifiers converts toolkit modifiers to a binding modifier mask.
func Modifiers(m fyne.KeyModifier) keybind.Modifier {
	var mods keybind.Modifier
	for _, mm := range modifierMap {
		if m&mm.fyne != 0 {
			mods |= mm.mod
		}
	}
	return mods
}

// ToolkitModifiers is the inverse of Modifiers.
func ToolkitModifiers(m keybind.Modifier) fyne.KeyModifier {
	var mods fyne.KeyModifier
	for _, mm := range modifierMap {
		if m&mm.mod != 0 {
			mods |= mm.fyne
		}
	}
	return mods
}

// isCharKey reports whether name is a single printable character that is
// neither a letter nor a digit. Such keys are matched on the typed rune
// instead, since the rune reflects the keyboard layout and shift state.
func isCharKey(name fyne.KeyName) bool {
	r, size := utf8.DecodeRuneInString(string(name))
	if size == 0 || size != len(name) {
		return false
	}
	return unicode.IsPrint(r) && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// TriggerForKey returns the trigger for a typed key, or false if the key
// is delivered as a rune. Digits typed with shift held are also left to
// the rune, which carries the shifted character.
func TriggerForKey(name fyne.KeyName, mods fyne.KeyModifier) (keybind.KeyTrigger, bool) {
	if isCharKey(name) {
		return keybind.KeyTrigger{}, false
	}
	r, size := utf8.DecodeRuneInString(string(name))
	if size == len(name) && unicode.IsDigit(r) && mods&fyne.KeyModifierShift != 0 {
		return keybind.KeyTrigger{}, false
	}
	return keybind.KeyTrigger{Mods: Modifiers(mods), Key: name}, true
}

// TriggerForRune returns the trigger for a typed punctuation or symbol
// character. Letters, digits and space are handled as keys.
func TriggerForRune(r rune, mods fyne.KeyModifier) (keybind.KeyTrigger, bool) {
	if !unicode.IsPrint(r) || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return keybind.KeyTrigger{}, false
	}
	// shift is implied by the character itself
	return keybind.KeyTrigger{Mods: Modifiers(mods) &^ keybind.ModShift, Key: fyne.KeyName(string(r))}, true
}

// TriggerForMouse returns the trigger for a mouse button press.
func TriggerForMouse(b desktop.MouseButton, mods fyne.KeyModifier, double bool) (keybind.MouseTrigger, bool) {
	var btn int
	switch b {
	case desktop.MouseButtonPrimary:
		btn = keybind.MouseLeft
	case desktop.MouseButtonTertiary:
		btn = keybind.MouseMiddle
	case desktop.MouseButtonSecondary:
		btn = keybind.MouseRight
	default:
		return keybind.MouseTrigger{}, false
	}
	return keybind.MouseTrigger{Mods: Modifiers(mods), Button: btn, Double: double}, true
}

// TriggerForScroll returns the wheel trigger for a scroll of dy.
func TriggerForScroll(dy float32, mods fyne.KeyModifier) (keybind.MouseTrigger, bool) {
	switch {
	case dy > 0:
		return keybind.MouseTrigger{Mods: Modifiers(mods), Button: keybind.MouseWheelUp}, true
	case dy < 0:
		return keybind.MouseTrigger{Mods: Modifiers(mods), Button: keybind.MouseWheelDown}, true
	}
	return keybind.MouseTrigger{}, false
}

// CustomShortcut returns the toolkit shortcut for a key trigger held with
// ctrl, alt or meta. The toolkit delivers such key presses only to
// registered shortcuts.
func CustomShortcut(t keybind.KeyTrigger) (*desktop.CustomShortcut, bool) {
	if t.Mods&^keybind.ModShift == 0 {
		return nil, false
	}
	return &desktop.CustomShortcut{KeyName: t.Key, Modifier: ToolkitModifiers(t.Mods)}, true
}

// CurrentModifiers returns the modifier keys held down right now.
func CurrentModifiers() fyne.KeyModifier {
	if d, ok := fyne.CurrentApp().Driver().(desktop.Driver); ok {
		return d.CurrentKeyModifiers()
	}
	return 0
}
