package backend

import (
	"image"
	"image/color"
	"testing"

	"github.com/boxes-ltd/imaging"
	"github.com/reelplayer/reel/backend/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArtwork(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	red := color.NRGBA{R: 200, G: 20, B: 20, A: 255}
	img := imaging.New(1280, 720, red)

	f, err := filesystem.API().Create("/cache/frame.png")
	require.NoError(t, err)
	require.NoError(t, imaging.Encode(f, img, imaging.PNG))
	require.NoError(t, f.Close())

	art, err := LoadArtwork("/cache/frame.png", 320)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 180), art.Image.Bounds())
	assert.InDelta(t, 200, int(art.Color.R), 10)
	assert.InDelta(t, 20, int(art.Color.G), 10)

	_, err = LoadArtwork("/cache/missing.png", 320)
	assert.Error(t, err)
}

func TestArtworkCaptureFailure(t *testing.T) {
	pm, h, _ := newTestPlaybackManager()
	h.failCmds["screenshot-to-file"] = true

	am := NewArtworkManager(pm, "/cache")
	_, err := am.Capture()
	assert.Error(t, err)
	assert.Nil(t, am.Current())
}
