package backend

import (
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/reelplayer/reel/backend/filesystem"
)

type AppConfig struct {
	WindowWidth         int
	WindowHeight        int
	ShowPlaylist        bool
	PlaylistWidth       float64
	LastFolder          string
	LastCheckedVersion  string
	LastLaunchedVersion string
	PreferDarkTheme     bool
	// Optional TOML theme file overriding the built-in colors.
	ThemeFile           string
	EnableMPRIS         bool
	EnableMediaKeys     bool
	CheckForUpdates     bool
	MaxRecentFiles      int
	LogLevel            string
}

type PlaybackConfig struct {
	Volume         int
	LoopPlaylist   bool
	RememberVolume bool
}

type EngineConfig struct {
	// Optional engine config file loaded at initialization.
	ConfigFile   string
	UseConfig    bool
	InputFile    string
	UseInputFile bool
	// Extra options in command line form, eg "--hwdec=auto --sub-auto=fuzzy".
	ExtraOptions string
	// Minimum level of engine log messages shown to the user.
	LogLevel string
}

type Config struct {
	Application AppConfig
	Playback    PlaybackConfig
	Engine      EngineConfig
}

func DefaultConfig(appVersionTag string) *Config {
	return &Config{
		Application: AppConfig{
			WindowWidth:        960,
			WindowHeight:       640,
			ShowPlaylist:       false,
			PlaylistWidth:      0.7,
			LastCheckedVersion: appVersionTag,
			PreferDarkTheme:    true,
			EnableMPRIS:        true,
			EnableMediaKeys:    true,
			CheckForUpdates:    true,
			MaxRecentFiles:     20,
			LogLevel:           "info",
		},
		Playback: PlaybackConfig{
			Volume:         100,
			LoopPlaylist:   false,
			RememberVolume: true,
		},
		Engine: EngineConfig{
			LogLevel: "error",
		},
	}
}

func ReadConfigFile(filepath, appVersionTag string) (*Config, error) {
	f, err := filesystem.API().Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := DefaultConfig(appVersionTag)
	if err := toml.NewDecoder(f).Decode(c); err != nil {
		return nil, err
	}
	c.Playback.Volume = clamp(c.Playback.Volume, 0, 100)
	if c.Application.MaxRecentFiles < 0 {
		c.Application.MaxRecentFiles = 0
	}
	return c, nil
}

var writeLock sync.Mutex

func (c *Config) WriteConfigFile(filepath string) error {
	if !writeLock.TryLock() {
		return nil // another write in progress
	}
	defer writeLock.Unlock()

	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return filesystem.API().WriteFile(filepath, b, os.FileMode(0644))
}

// EngineOptionsChanged reports whether switching from c to other
// requires the engine to be reset.
func (c *Config) EngineOptionsChanged(other *Config) bool {
	return c.Engine != other.Engine
}

func clamp(i, min, max int) int {
	if i < min {
		i = min
	} else if i > max {
		i = max
	}
	return i
}
