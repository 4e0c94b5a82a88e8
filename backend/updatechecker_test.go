package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNewerVersion(t *testing.T) {
	for _, tt := range []struct {
		tag, current string
		want         bool
	}{
		{"v0.2.0", "v0.1.9", true},
		{"v0.1.10", "v0.1.9", true},
		{"v0.1.9", "v0.1.9", false},
		{"v0.1.8", "v0.1.9", false},
		{"v1.0", "v0.9.9", true},
		{"v1.0.1", "v1.0", true},
		{"v1.0.0-rc1", "v1.0.0", false},
		{"1.2.0", "v1.1.0", true},
	} {
		assert.Equal(t, tt.want, IsNewerVersion(tt.tag, tt.current), "%s vs %s", tt.tag, tt.current)
	}
}

func TestTagFromReleaseURL(t *testing.T) {
	assert.Equal(t, "v0.3.0", tagFromReleaseURL("https://github.com/reelplayer/reel/releases/tag/v0.3.0"))
	assert.Equal(t, "v0.3.0", tagFromReleaseURL("https://github.com/reelplayer/reel/releases/tag/v0.3.0/"))
	assert.Equal(t, "", tagFromReleaseURL("https://github.com/reelplayer/reel/releases/latest"))
	assert.Equal(t, "", tagFromReleaseURL("nothing"))
}
