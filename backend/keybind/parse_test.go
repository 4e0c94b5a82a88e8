package keybind

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrigger(t *testing.T) {
	for _, tt := range []struct {
		combo string
		want  Trigger
	}{
		{"SPACE", KeyTrigger{Key: fyne.KeySpace}},
		{"space", KeyTrigger{Key: fyne.KeySpace}},
		{"f", KeyTrigger{Key: "F"}},
		{"F", KeyTrigger{Mods: ModShift, Key: "F"}},
		{"shift+f", KeyTrigger{Mods: ModShift, Key: "F"}},
		{"Ctrl+ALT+LEFT", KeyTrigger{Mods: ModCtrl | ModAlt, Key: fyne.KeyLeft}},
		{"meta+q", KeyTrigger{Mods: ModMeta, Key: "Q"}},
		{"ctrl++", KeyTrigger{Mods: ModCtrl, Key: fyne.KeyPlus}},
		{"+", KeyTrigger{Key: fyne.KeyPlus}},
		{"PGDWN", KeyTrigger{Key: fyne.KeyPageDown}},
		{"F11", KeyTrigger{Key: "F11"}},
		{"Escape", KeyTrigger{Key: fyne.KeyEscape}},
		{">", KeyTrigger{Key: ">"}},
		{"SHARP", KeyTrigger{Key: "#"}},
		{"MOUSE_BTN0", MouseTrigger{Button: 0}},
		{"MOUSE_BTN0_DBL", MouseTrigger{Button: 0, Double: true}},
		{"ctrl+MOUSE_BTN2", MouseTrigger{Mods: ModCtrl, Button: 2}},
		{"WHEEL_UP", MouseTrigger{Button: MouseWheelUp}},
	} {
		got, err := ParseTrigger(tt.combo)
		require.NoError(t, err, tt.combo)
		assert.Equal(t, tt.want, got, tt.combo)
	}

	for _, bad := range []string{"", "ctrl", "ctrl+", "hyper+a", "NOTAKEY", "a+b", "MOUSE_BTNx", "PLAYPAUSE"} {
		_, err := ParseTrigger(bad)
		assert.ErrorIs(t, err, ErrUnknownKey, bad)
	}
}

func TestMouseTriggerDistinctFromModifiers(t *testing.T) {
	single, err := ParseTrigger("MOUSE_BTN0")
	require.NoError(t, err)
	double, err := ParseTrigger("MOUSE_BTN0_DBL")
	require.NoError(t, err)

	assert.NotEqual(t, single, double)
	assert.Equal(t, Modifier(0), double.Modifiers())
}

func TestPropertyExpansionRejected(t *testing.T) {
	_, err := ParseLine("RIGHT seek $position")
	assert.ErrorIs(t, err, ErrPropertyExpansion)

	_, err = ParseLine(`i show-text "${media-title}"`)
	assert.ErrorIs(t, err, ErrPropertyExpansion)

	b, err := ParseLine("RIGHT seek $$foo")
	require.NoError(t, err)
	assert.Equal(t, "seek $foo", b.Command)

	// a trailing '$' is literal
	b, err = ParseLine("d show-text cost$")
	require.NoError(t, err)
	assert.Equal(t, "show-text cost$", b.Command)

	_, rejected := ParseString("a cycle pause\nRIGHT seek $position\nb cycle mute\n", SourceUser)
	require.Len(t, rejected, 1)
	assert.Equal(t, 2, rejected[0].Line)
	assert.ErrorIs(t, rejected[0].Err, ErrPropertyExpansion)
}

func TestStripComment(t *testing.T) {
	withComment, err := ParseLine("f fullscreen # toggle")
	require.NoError(t, err)
	without, err := ParseLine("f fullscreen")
	require.NoError(t, err)
	assert.Equal(t, without, withComment)

	assert.Equal(t, `a show-text "#1"`, StripComment(`a show-text "#1"`))
	assert.Equal(t, `a show-text \#1 `, StripComment(`a show-text \#1 # note`))
	assert.Equal(t, "", StripComment("# only a comment"))

	b, err := ParseLine("   # indented comment")
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestParseLine(t *testing.T) {
	b, err := ParseLine("ctrl+o\tscript-message   reel-action open")
	require.NoError(t, err)
	assert.Equal(t, KeyTrigger{Mods: ModCtrl, Key: "O"}, b.Trigger)
	assert.Equal(t, "script-message   reel-action open", b.Command)

	_, err = ParseLine("SPACE")
	assert.ErrorIs(t, err, ErrMissingCommand)

	_, err = ParseLine("VOLUME_UP add volume 2")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestDefaultsParseCleanly(t *testing.T) {
	bindings, rejected := ParseString(DefaultConfig, SourceDefault)
	assert.Empty(t, rejected)
	assert.NotEmpty(t, bindings)
	for _, b := range bindings {
		assert.Equal(t, SourceDefault, b.Source)
	}
}
