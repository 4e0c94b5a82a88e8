package shortcuts

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/reelplayer/reel/backend/keybind"
	"github.com/stretchr/testify/assert"
)

func TestTriggerForKey(t *testing.T) {
	for _, tt := range []struct {
		name fyne.KeyName
		mods fyne.KeyModifier
		want keybind.KeyTrigger
		ok   bool
	}{
		{fyne.KeySpace, 0, keybind.KeyTrigger{Key: fyne.KeySpace}, true},
		{fyne.KeyL, fyne.KeyModifierShift, keybind.KeyTrigger{Mods: keybind.ModShift, Key: "L"}, true},
		{fyne.KeyLeft, fyne.KeyModifierShift, keybind.KeyTrigger{Mods: keybind.ModShift, Key: fyne.KeyLeft}, true},
		{fyne.Key9, 0, keybind.KeyTrigger{Key: "9"}, true},
		{fyne.Key9, fyne.KeyModifierShift, keybind.KeyTrigger{}, false},
		{fyne.KeySlash, 0, keybind.KeyTrigger{}, false},
		{fyne.KeyF1, fyne.KeyModifierControl, keybind.KeyTrigger{Mods: keybind.ModCtrl, Key: "F1"}, true},
	} {
		got, ok := TriggerForKey(tt.name, tt.mods)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestTriggerForRune(t *testing.T) {
	got, ok := TriggerForRune('>', fyne.KeyModifierShift)
	assert.True(t, ok)
	assert.Equal(t, keybind.KeyTrigger{Key: ">"}, got)

	for _, r := range []rune{'a', 'A', '5', ' '} {
		_, ok := TriggerForRune(r, 0)
		assert.False(t, ok, string(r))
	}
}

func TestTriggersMatchDefaultBindings(t *testing.T) {
	km := keybind.DefaultKeymap()
	typed := func(name fyne.KeyName, mods fyne.KeyModifier) string {
		tr, ok := TriggerForKey(name, mods)
		assert.True(t, ok)
		cmd, _ := km.Lookup(tr)
		return cmd
	}
	assert.Equal(t, "cycle pause", typed(fyne.KeySpace, 0))
	assert.Equal(t, "cycle-values loop-file \"inf\" \"no\"", typed(fyne.KeyL, fyne.KeyModifierShift))
	assert.Equal(t, "ab-loop", typed(fyne.KeyL, 0))

	tr, _ := TriggerForRune('#', fyne.KeyModifierShift)
	cmd, _ := km.Lookup(tr)
	assert.Equal(t, "cycle audio", cmd)

	mt, ok := TriggerForMouse(desktop.MouseButtonPrimary, 0, true)
	assert.True(t, ok)
	cmd, _ = km.Lookup(mt)
	assert.Equal(t, "cycle fullscreen", cmd)

	wt, ok := TriggerForScroll(-1, 0)
	assert.True(t, ok)
	cmd, _ = km.Lookup(wt)
	assert.Equal(t, "add volume -2", cmd)
}

func TestCustomShortcut(t *testing.T) {
	_, ok := CustomShortcut(keybind.KeyTrigger{Mods: keybind.ModShift, Key: "L"})
	assert.False(t, ok)

	sc, ok := CustomShortcut(keybind.KeyTrigger{Mods: keybind.ModCtrl | keybind.ModShift, Key: "O"})
	assert.True(t, ok)
	assert.Equal(t, fyne.KeyModifierControl|fyne.KeyModifierShift, sc.Modifier)
	assert.Equal(t, fyne.KeyName("O"), sc.KeyName)

	assert.Equal(t, keybind.ModCtrl|keybind.ModMeta, Modifiers(ToolkitModifiers(keybind.ModCtrl|keybind.ModMeta)))
}
