package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playlistNode(items ...map[string]any) any {
	n := make([]any, 0, len(items))
	for _, it := range items {
		n = append(n, it)
	}
	return n
}

func TestPlaylistFromNode(t *testing.T) {
	node := playlistNode(
		map[string]any{"filename": "/videos/a.mkv", "current": true, "playing": true},
		map[string]any{"filename": "https://example.com/streams/live%20show.m3u8", "title": "Live"},
		map[string]any{"filename": "/videos/a.mkv"},
	)
	entries := playlistFromNode(node, nil)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.mkv", entries[0].Name)
	assert.True(t, entries[0].Current)
	assert.Equal(t, "Live", entries[1].Name)
	assert.NotEqual(t, entries[0].ID, entries[2].ID, "duplicate URIs get their own IDs")

	// resync with the first item removed keeps IDs for the remaining ones
	node = playlistNode(
		map[string]any{"filename": "https://example.com/streams/live%20show.m3u8", "title": "Live"},
		map[string]any{"filename": "/videos/a.mkv"},
		map[string]any{"filename": "/videos/b.mkv"},
	)
	resynced := playlistFromNode(node, entries)
	require.Len(t, resynced, 3)
	assert.Equal(t, entries[1].ID, resynced[0].ID)
	assert.Equal(t, entries[0].ID, resynced[1].ID)
	assert.False(t, resynced[1].Current)

	assert.Empty(t, playlistFromNode(nil, entries))
}

func TestDisplayName(t *testing.T) {
	for _, tt := range []struct{ in, want string }{
		{"/home/user/Videos/clip.webm", "clip.webm"},
		{"file:///home/user/Videos/clip.webm", "clip.webm"},
		{"https://example.com/streams/live%20show", "live show"},
		{"https://example.com/", "example.com"},
		{"relative.mp4", "relative.mp4"},
	} {
		assert.Equal(t, tt.want, DisplayName(tt.in), tt.in)
	}
}

func TestFilterPlaylist(t *testing.T) {
	entries := []PlaylistEntry{
		{Name: "Amélie (2001).mkv"},
		{Name: "Brazil.mkv"},
		{Name: "Alien.mkv"},
	}
	assert.Equal(t, []int{0, 1, 2}, FilterPlaylist(entries, ""))
	assert.Equal(t, []int{0}, FilterPlaylist(entries, "amelie"))
	assert.Equal(t, []int{1}, FilterPlaylist(entries, "ZIL"))
	assert.Equal(t, []int{0, 2}, FilterPlaylist(entries, "ali"))
	assert.Empty(t, FilterPlaylist(entries, "casablanca"))
}
