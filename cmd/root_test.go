package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocators(t *testing.T) {
	wd, err := filepath.Abs(".")
	require.NoError(t, err)

	got := Locators([]string{"clip.mkv", "https://example.com/a.mp4", "  ", "ytdl://abc"})
	assert.Equal(t, []string{
		filepath.Join(wd, "clip.mkv"),
		"https://example.com/a.mp4",
		"ytdl://abc",
	}, got)
}

func TestRootCmdPassesLocators(t *testing.T) {
	var got []string
	c := newRootCmd(func(l []string) error {
		got = l
		return nil
	})
	c.SetArgs([]string{"http://example.com/v.webm"})
	require.NoError(t, c.Execute())
	assert.Equal(t, []string{"http://example.com/v.webm"}, got)
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("rtsp://cam.local/live"))
	assert.False(t, isURL(`C://videos/a.mkv`))
	assert.False(t, isURL("/home/me/a://b.mkv"))
	assert.False(t, isURL("plain.mkv"))
}
