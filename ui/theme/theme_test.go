package theme

import (
	"image/color"
	"strings"
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/reelplayer/reel/backend"
	"github.com/reelplayer/reel/backend/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThemeDecodes(t *testing.T) {
	th, err := DecodeThemeFile(strings.NewReader(defaultThemeFile))
	require.NoError(t, err)
	assert.True(t, th.SupportsVariant(theme.VariantDark))
	assert.True(t, th.SupportsVariant(theme.VariantLight))
}

func TestDecodeThemeFileRejectsBadHeader(t *testing.T) {
	_, err := DecodeThemeFile(strings.NewReader("[ReelTheme]\nName = \"x\"\nVersion = \"9.9\"\nSupportsDark = true\n"))
	assert.Error(t, err)
	_, err = DecodeThemeFile(strings.NewReader("[ReelTheme]\nName = \"x\"\nVersion = \"0.1\"\n"))
	assert.Error(t, err)
}

func TestColorStringToColor(t *testing.T) {
	c, err := ColorStringToColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	c, err = ColorStringToColor("#10203040")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, c)

	_, err = ColorStringToColor("102030")
	assert.Error(t, err)
	_, err = ColorStringToColor("#zz2030")
	assert.Error(t, err)
}

func TestUserThemeFile(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	filesystem.API().WriteFile("/themes/red.toml", []byte(`[ReelTheme]
Name = "Red"
Version = "0.1"
SupportsDark = true

[DarkColors]
Primary = "#ff0000"
`), 0644)

	cfg := &backend.AppConfig{PreferDarkTheme: true, ThemeFile: "/themes/red.toml"}
	m := NewMyTheme(cfg)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, m.Color(theme.ColorNamePrimary, theme.VariantDark))

	// light variant is not supported by the file, so the built-in colors apply
	cfg.PreferDarkTheme = false
	assert.Equal(t, color.RGBA{R: 0xc7, G: 0x80, B: 0x1a, A: 0xff}, m.Color(theme.ColorNamePrimary, theme.VariantLight))

	cfg.ThemeFile = "/themes/missing.toml"
	cfg.PreferDarkTheme = true
	assert.Equal(t, color.RGBA{R: 0xe8, G: 0xa2, B: 0x3a, A: 0xff}, m.Color(theme.ColorNamePrimary, theme.VariantDark))
}
