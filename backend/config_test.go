package backend

import (
	"testing"

	"github.com/reelplayer/reel/backend/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	c := DefaultConfig("v0.1.0")
	c.Engine.ExtraOptions = "--hwdec=auto"
	c.Application.ShowPlaylist = true
	require.NoError(t, c.WriteConfigFile("/config.toml"))

	read, err := ReadConfigFile("/config.toml", "v0.1.0")
	require.NoError(t, err)
	assert.Equal(t, c, read)
}

func TestReadConfigFillsDefaults(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	toml := "[Playback]\nVolume = 180\n\n[Engine]\nInputFile = '/home/u/input.conf'\n"
	require.NoError(t, filesystem.API().WriteFile("/config.toml", []byte(toml), 0644))

	c, err := ReadConfigFile("/config.toml", "v0.1.0")
	require.NoError(t, err)
	assert.Equal(t, 100, c.Playback.Volume, "volume is clamped")
	assert.Equal(t, "/home/u/input.conf", c.Engine.InputFile)
	assert.Equal(t, 960, c.Application.WindowWidth)
	assert.Equal(t, "error", c.Engine.LogLevel)
}

func TestReadMalformedConfig(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	require.NoError(t, filesystem.API().WriteFile("/config.toml", []byte("[Playback\nVolume ="), 0644))
	_, err := ReadConfigFile("/config.toml", "v0.1.0")
	assert.Error(t, err)
}

func TestEngineOptionsChanged(t *testing.T) {
	a := DefaultConfig("")
	b := DefaultConfig("")
	assert.False(t, a.EngineOptionsChanged(b))
	b.Application.PreferDarkTheme = false
	assert.False(t, a.EngineOptionsChanged(b))
	b.Engine.ExtraOptions = "--mute"
	assert.True(t, a.EngineOptionsChanged(b))
}
