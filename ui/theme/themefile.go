package theme

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"io"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/pelletier/go-toml/v2"
	"github.com/reelplayer/reel/backend/filesystem"
)

var validThemeVersions = []string{"0.1"}

type ThemeFileHeader struct {
	Name          string
	Version       string
	SupportsDark  bool
	SupportsLight bool
}

type ThemeFile struct {
	ReelTheme ThemeFileHeader

	DarkColors  ThemeColors
	LightColors ThemeColors
}

type ThemeColors struct {
	// Reel-specific colors

	ControlsBackground string

	NowPlayingBackground string

	// Fyne colors

	Background string

	Button string

	DisabledButton string

	Disabled string

	Error string

	Focus string

	Foreground string

	Hover string

	Hyperlink string

	InputBackground string

	InputBorder string

	MenuBackground string

	OverlayBackground string

	Placeholder string

	Pressed string

	Primary string

	ScrollBar string

	Selection string

	Separator string

	Shadow string

	Success string

	Warning string
}

func ReadThemeFile(filePath string) (*ThemeFile, error) {
	f, err := filesystem.API().Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeThemeFile(f)
}

func DecodeThemeFile(reader io.Reader) (*ThemeFile, error) {
	theme := &ThemeFile{}
	if err := toml.NewDecoder(reader).Decode(theme); err != nil {
		return nil, err
	}

	if theme.ReelTheme.Name == "" || !slices.Contains(validThemeVersions, theme.ReelTheme.Version) {
		return nil, errors.New("invalid theme file name or version")
	}
	if !(theme.ReelTheme.SupportsDark || theme.ReelTheme.SupportsLight) {
		return nil, errors.New("invalid theme file: must support one or both of light/dark")
	}
	return theme, nil
}

func (t *ThemeFile) SupportsVariant(v fyne.ThemeVariant) bool {
	if v == theme.VariantDark {
		return t.ReelTheme.SupportsDark
	}
	return t.ReelTheme.SupportsLight
}

// Parses a CSS-style #RRGGBB or #RRGGBBAA string
func ColorStringToColor(colorStr string) (color.Color, error) {
	if !strings.HasPrefix(colorStr, "#") || !slices.Contains([]int{7, 9}, len(colorStr)) {
		return color.Black, errors.New("invalid color string")
	}
	colorBytes := make([]byte, 4)
	n, err := hex.Decode(colorBytes, []byte(colorStr[1:]))
	if err != nil {
		return color.Black, fmt.Errorf("invalid color string: %s", err.Error())
	}
	if n == 3 {
		colorBytes[3] = 255 // opaque alpha
	}
	return color.RGBA{R: colorBytes[0], G: colorBytes[1], B: colorBytes[2], A: colorBytes[3]}, nil
}
