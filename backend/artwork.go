package backend

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sync"

	"github.com/boxes-ltd/imaging"
	"github.com/cenkalti/dominantcolor"
	"github.com/reelplayer/reel/backend/filesystem"
)

const (
	artworkThumbnailSize = 320
	frameFileName        = "frame.png"
)

// Artwork is a thumbnail of a video frame with its dominant color.
type Artwork struct {
	Image image.Image
	Color color.RGBA
}

// LoadArtwork decodes the image at path and scales it to fit within maxSize.
func LoadArtwork(path string, maxSize int) (*Artwork, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	thumb := imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	return &Artwork{Image: thumb, Color: dominantcolor.Find(thumb)}, nil
}

// The ArtworkManager captures thumbnails of the current video frame.
type ArtworkManager struct {
	pm       *PlaybackManager
	cacheDir string

	mu      sync.Mutex
	current *Artwork
}

func NewArtworkManager(pm *PlaybackManager, cacheDir string) *ArtworkManager {
	return &ArtworkManager{pm: pm, cacheDir: cacheDir}
}

// Capture grabs the current frame from the engine. It blocks while the
// engine writes the screenshot, so call it off the UI thread.
func (a *ArtworkManager) Capture() (*Artwork, error) {
	path := filepath.Join(a.cacheDir, frameFileName)
	if err := a.pm.ScreenshotToFile(path); err != nil {
		return nil, fmt.Errorf("failed to capture frame: %w", err)
	}
	art, err := LoadArtwork(path, artworkThumbnailSize)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.current = art
	a.mu.Unlock()
	return art, nil
}

// Current returns the last captured artwork, or nil.
func (a *ArtworkManager) Current() *Artwork {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *ArtworkManager) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = nil
}
