package backend

import (
	"testing"

	"github.com/reelplayer/reel/backend/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandLocators(t *testing.T) {
	filesystem.SetMemMapFs()
	t.Cleanup(filesystem.SetOsFs)

	fs := filesystem.API()
	for _, f := range []string{"/show/Episode 10.mkv", "/show/episode 2.mkv", "/show/Episode 1.MKV", "/show/notes.txt", "/show/extras/x.mkv"} {
		require.NoError(t, fs.WriteFile(f, nil, 0644))
	}

	got := ExpandLocators([]string{"https://example.com/a.mp4", "/show", "/missing.mkv"})
	assert.Equal(t, []string{
		"https://example.com/a.mp4",
		"/show/Episode 1.MKV",
		"/show/episode 2.mkv",
		"/show/Episode 10.mkv",
		"/missing.mkv",
	}, got)
}
