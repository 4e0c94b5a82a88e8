// Package keybind parses input bindings written in the engine's
// input.conf format and resolves key and mouse triggers to commands.
package keybind

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
)

// Modifier is a bit mask of keyboard modifiers held during a trigger.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModMeta, "meta"},
	{ModShift, "shift"},
}

func (m Modifier) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.mod != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

// Trigger is either a KeyTrigger or a MouseTrigger.
type Trigger interface {
	fmt.Stringer
	Modifiers() Modifier
	isTrigger()
}

// KeyTrigger is a key press with modifiers held. Key is the toolkit key
// name, or the character itself for printable characters without one.
type KeyTrigger struct {
	Mods Modifier
	Key  fyne.KeyName
}

func (KeyTrigger) isTrigger() {}

func (k KeyTrigger) Modifiers() Modifier { return k.Mods }

func (k KeyTrigger) String() string {
	if k.Mods == 0 {
		return string(k.Key)
	}
	return k.Mods.String() + "+" + string(k.Key)
}

// MouseTrigger is a click of a mouse button, numbered as in MOUSE_BTNn.
type MouseTrigger struct {
	Mods   Modifier
	Button int
	Double bool
}

func (MouseTrigger) isTrigger() {}

func (m MouseTrigger) Modifiers() Modifier { return m.Mods }

func (m MouseTrigger) String() string {
	s := fmt.Sprintf("MOUSE_BTN%d", m.Button)
	if m.Double {
		s += "_DBL"
	}
	if m.Mods != 0 {
		s = m.Mods.String() + "+" + s
	}
	return s
}

const (
	MouseLeft      = 0
	MouseMiddle    = 1
	MouseRight     = 2
	MouseWheelUp   = 3
	MouseWheelDown = 4
)
