package keybind

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/reelplayer/reel/backend/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserBindingsTakePriority(t *testing.T) {
	defaults, _ := ParseString("SPACE cycle pause\nm cycle mute\n", SourceDefault)
	user, _ := ParseString("SPACE cycle pause\nq quit\n", SourceUser)
	km := NewKeymap(user, defaults)

	space := KeyTrigger{Key: fyne.KeySpace}
	cmd, ok := km.Lookup(space)
	require.True(t, ok)
	assert.Equal(t, "cycle pause", cmd)

	// the user's instance is the one found first
	assert.Equal(t, SourceUser, km.list[0].Source)
	for _, b := range km.Bindings() {
		if b.Trigger == Trigger(space) {
			assert.Equal(t, SourceUser, b.Source)
		}
	}

	cmd, ok = km.Lookup(KeyTrigger{Key: "Q"})
	require.True(t, ok)
	assert.Equal(t, "quit", cmd)

	cmd, ok = km.Lookup(KeyTrigger{Key: "M"})
	require.True(t, ok)
	assert.Equal(t, "cycle mute", cmd)
}

func TestLaterBindingWinsWithinSource(t *testing.T) {
	user, _ := ParseString("f cycle fullscreen\nf set fullscreen yes\n", SourceUser)
	defaults, _ := ParseString("f show-progress\n", SourceDefault)
	km := NewKeymap(user, defaults)

	cmd, ok := km.Lookup(KeyTrigger{Key: "F"})
	require.True(t, ok)
	assert.Equal(t, "set fullscreen yes", cmd)
}

func TestLookupMatchesModifiersExactly(t *testing.T) {
	defaults, _ := ParseString("LEFT seek -5\nshift+LEFT seek -1 exact\nMOUSE_BTN0_DBL cycle fullscreen\n", SourceDefault)
	km := NewKeymap(nil, defaults)

	cmd, _ := km.Lookup(KeyTrigger{Key: fyne.KeyLeft})
	assert.Equal(t, "seek -5", cmd)
	cmd, _ = km.Lookup(KeyTrigger{Mods: ModShift, Key: fyne.KeyLeft})
	assert.Equal(t, "seek -1 exact", cmd)
	_, ok := km.Lookup(KeyTrigger{Mods: ModCtrl, Key: fyne.KeyLeft})
	assert.False(t, ok)

	cmd, ok = km.Lookup(MouseTrigger{Button: 0, Double: true})
	assert.True(t, ok)
	assert.Equal(t, "cycle fullscreen", cmd)
	_, ok = km.Lookup(MouseTrigger{Button: 0})
	assert.False(t, ok)
}

func TestBindingsAreUniquePerTrigger(t *testing.T) {
	km := DefaultKeymap()
	seen := map[string]bool{}
	for _, b := range km.Bindings() {
		s := b.Trigger.String()
		assert.False(t, seen[s], "duplicate %s", s)
		seen[s] = true
	}
	assert.True(t, seen["Space"])
}

func TestLoad(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	require.NoError(t, filesystem.API().WriteFile("/conf/input.conf", []byte("SPACE stop\nx seek ${duration}\n"), 0o644))

	km, rejected, err := Load("/conf/input.conf")
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	cmd, _ := km.Lookup(KeyTrigger{Key: fyne.KeySpace})
	assert.Equal(t, "stop", cmd)

	// a missing file falls back to the defaults
	km, _, err = Load("/conf/missing.conf")
	assert.Error(t, err)
	cmd, _ = km.Lookup(KeyTrigger{Key: fyne.KeySpace})
	assert.Equal(t, "cycle pause", cmd)
}

func TestWriteInputConf(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	require.NoError(t, filesystem.API().WriteFile("/conf/input.conf", []byte("x seek ${duration}"), 0o644))

	path, err := WriteInputConf("/tmp/reel", "/conf/input.conf")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reel/input.conf", path)

	data, err := filesystem.API().ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, DefaultConfig)
	assert.Contains(t, s, "x seek ${duration}\n")
	assert.Less(t, len(DefaultConfig), len(s))

	path, err = WriteInputConf("/tmp/reel", "")
	require.NoError(t, err)
	data, _ = filesystem.API().ReadFile(path)
	assert.Equal(t, DefaultConfig, string(data))
}
