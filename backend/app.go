package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/20after4/configdir"
	"github.com/reelplayer/reel/backend/engine"
	"github.com/reelplayer/reel/backend/filesystem"
	"github.com/reelplayer/reel/backend/history"
	"github.com/reelplayer/reel/backend/ipc"
	"github.com/reelplayer/reel/backend/keybind"
	"github.com/reelplayer/reel/backend/util"
	log "github.com/sirupsen/logrus"
)

const (
	configFile  = "config.toml"
	portableDir = "reel_portable"
	historyFile = "history.db"
)

var ErrAnotherInstance = ipc.ErrAnotherInstance

type App struct {
	Config          *Config
	Engine          *engine.Engine
	Dispatcher      *Dispatcher
	PlaybackManager *PlaybackManager
	Artwork         *ArtworkManager
	History         *history.Store
	UpdateChecker   UpdateChecker
	MPRISHandler    *MPRISHandler
	MediaKeys       *MediaKeys

	// UI callbacks to be set in main
	OnReactivate func()
	OnExit       func()
	// Called on the UI thread when the user input file was reloaded.
	OnKeymapChange func(*keybind.Keymap, []keybind.Rejection)

	appName        string
	displayAppName string
	appVersionTag  string
	configDir      string
	cacheDir       string
	portableMode   bool

	isFirstLaunch bool // set by config file reader
	bgrndCtx      context.Context
	cancel        context.CancelFunc
	sched         Scheduler

	state          *SharedState
	keymap         atomic.Pointer[keybind.Keymap]
	keymapRejected []keybind.Rejection
	failedOptions  int
	pendingLoad    []string

	ipcServer *http.Server
	watchTime util.Stopwatch
	watchPath string
	logCloser io.Closer

	lastWrittenCfg Config
}

func (a *App) VersionTag() string {
	return a.appVersionTag
}

// StartupApp sets up everything but the engine event loop, which begins
// with Run once the UI can receive scheduled callbacks.
// locators are media paths or URLs to play; if another instance is
// running they are handed to it and ErrAnotherInstance is returned.
func StartupApp(appName, displayAppName, appVersionTag, latestReleaseURL string, locators []string, newHandle engine.Factory, sched Scheduler) (*App, error) {
	var confDir, cacheDir string
	portableMode := false
	if p := checkPortablePath(); p != "" {
		confDir = filepath.Join(p, "config")
		cacheDir = filepath.Join(p, "cache")
		portableMode = true
		ipc.SetSocketDir(p)
	} else {
		confDir = configdir.LocalConfig(appName)
		cacheDir = configdir.LocalCache(appName)
	}
	// ensure config and cache dirs exist
	configdir.MakePath(confDir)
	configdir.MakePath(cacheDir)

	if cli, err := ipc.Connect(); err == nil {
		log.Println("Another instance is running. Reactivating it...")
		if len(locators) > 0 {
			if err := cli.Enqueue(locators, true); err != nil {
				log.Printf("failed to hand files to running instance: %v", err)
			}
		}
		cli.Show()
		return nil, ErrAnotherInstance
	}

	a := &App{
		appName:        appName,
		displayAppName: displayAppName,
		appVersionTag:  appVersionTag,
		configDir:      confDir,
		cacheDir:       cacheDir,
		portableMode:   portableMode,
		sched:          sched,
		pendingLoad:    locators,
	}
	a.bgrndCtx, a.cancel = context.WithCancel(context.Background())
	a.readConfig()
	if c, err := SetupLogging(a.Config.Application.LogLevel, filepath.Join(cacheDir, logsDir)); err != nil {
		log.Printf("failed to set up log file: %v", err)
	} else {
		a.logCloser = c
	}

	log.Printf("Starting %s...", appName)
	log.Printf("Using config dir: %s", confDir)
	log.Printf("Using cache dir: %s", cacheDir)
	a.startConfigWriter(a.bgrndCtx)

	a.Engine = engine.New(newHandle)
	observeProperties(a.Engine)
	a.state = NewSharedState()
	a.Dispatcher = NewDispatcher(a.state, sched, a.Engine)
	a.PlaybackManager = NewPlaybackManager(a.Engine, a.state, a.Dispatcher)

	a.loadKeymap()
	failed, err := a.Engine.Init(a.engineOptions())
	if err != nil {
		log.Errorf("%v\n%s", err, debug.Stack())
		return nil, err
	}
	a.failedOptions = failed
	if err := a.PlaybackManager.SetLoopPlaylist(a.Config.Playback.LoopPlaylist); err != nil {
		log.Printf("failed to set playlist looping: %v", err)
	}

	a.openHistory()
	a.Artwork = NewArtworkManager(a.PlaybackManager, cacheDir)
	a.setupHistoryRecording()
	a.PlaybackManager.OnPlaying(func() { SetSystemSleepDisabled(true) })
	a.PlaybackManager.OnPaused(func() { SetSystemSleepDisabled(false) })
	a.PlaybackManager.OnStopped(func() { SetSystemSleepDisabled(false) })
	a.startInputWatcher()

	if listener, err := ipc.Listen(); err == nil {
		a.ipcServer = ipc.NewServer(&ipcPlayback{a.PlaybackManager}, a)
		go a.ipcServer.Serve(listener)
	} else {
		log.Printf("failed to listen for IPC: %v", err)
	}

	if a.Config.Application.CheckForUpdates {
		a.UpdateChecker = NewUpdateChecker(appVersionTag, latestReleaseURL, cacheDir, &a.Config.Application.LastCheckedVersion)
		a.UpdateChecker.Start(a.bgrndCtx, 24*time.Hour)
	}

	// OS media center integrations
	if a.Config.Application.EnableMPRIS {
		a.setupMPRIS(displayAppName)
	}
	if a.Config.Application.EnableMediaKeys {
		a.MediaKeys = NewMediaKeys(displayAppName, a.PlaybackManager)
		if err := a.MediaKeys.Start(); err != nil {
			log.Printf("media keys unavailable: %v", err)
			a.MediaKeys = nil
		}
	}

	return a, nil
}

// Run starts delivering engine events to the UI and loads the
// locators given at startup.
func (a *App) Run() {
	a.Engine.Start(a.Dispatcher.Dispatch)
	if len(a.pendingLoad) > 0 {
		if err := a.PlaybackManager.Load(ExpandLocators(a.pendingLoad), Replace); err != nil {
			log.Printf("failed to load startup files: %v", err)
		}
		a.pendingLoad = nil
	}
}

func (a *App) IsFirstLaunch() bool {
	return a.isFirstLaunch
}

func (a *App) IsPortableMode() bool {
	return a.portableMode
}

func (a *App) CacheDir() string {
	return a.cacheDir
}

// FailedOptions returns how many extra engine options failed to apply
// at the last engine initialization.
func (a *App) FailedOptions() int {
	return a.failedOptions
}

// Keymap returns the active merged key bindings.
func (a *App) Keymap() *keybind.Keymap {
	return a.keymap.Load()
}

// KeymapRejections returns the user input file lines that were not
// understood when the keymap was last loaded.
func (a *App) KeymapRejections() []keybind.Rejection {
	return a.keymapRejected
}

// RecentFiles lists the most recently played files, newest first.
func (a *App) RecentFiles() []history.Entry {
	if a.History == nil {
		return nil
	}
	entries, err := a.History.Recent(a.Config.Application.MaxRecentFiles)
	if err != nil {
		log.Printf("failed to read recent files: %v", err)
	}
	return entries
}

func checkPortablePath() string {
	if p, err := os.Executable(); err == nil {
		pdirPath := filepath.Join(filepath.Dir(p), portableDir)
		if s, err := os.Stat(pdirPath); err == nil && s.IsDir() {
			return pdirPath
		}
	}
	return ""
}

func (a *App) readConfig() {
	cfgPath := a.configFilePath()
	cfgExists, _ := filesystem.API().Exists(cfgPath)
	a.isFirstLaunch = !cfgExists
	cfg, err := ReadConfigFile(cfgPath, a.appVersionTag)
	if err != nil {
		log.Printf("Error reading app config file: %v", err)
		cfg = DefaultConfig(a.appVersionTag)
		if cfgExists {
			backupCfgName := fmt.Sprintf("%s.bak", configFile)
			log.Printf("Config file may be malformed: copying to %s", backupCfgName)
			_ = util.CopyFile(cfgPath, filepath.Join(a.configDir, backupCfgName))
		}
	}
	a.Config = cfg
	a.lastWrittenCfg = *cfg
}

// periodically save config file so abnormal exit won't lose settings
func (a *App) startConfigWriter(ctx context.Context) {
	tick := time.NewTicker(2 * time.Minute)
	go func() {
		for {
			select {
			case <-ctx.Done():
				tick.Stop()
				return
			case <-tick.C:
				if !reflect.DeepEqual(&a.lastWrittenCfg, a.Config) {
					a.Config.WriteConfigFile(a.configFilePath())
					a.lastWrittenCfg = *a.Config
				}
			}
		}
	}()
}

func (a *App) callOnReactivate() {
	if a.OnReactivate != nil {
		a.OnReactivate()
	}
}

// Show and Quit implement ipc.WindowHandler.
func (a *App) Show() {
	a.sched.Schedule(a.callOnReactivate)
}

func (a *App) Quit() {
	if a.OnExit != nil {
		a.sched.Schedule(a.OnExit)
	}
}

func (a *App) userInputFile() string {
	if a.Config.Engine.UseInputFile {
		return a.Config.Engine.InputFile
	}
	return ""
}

func (a *App) loadKeymap() (*keybind.Keymap, []keybind.Rejection) {
	km, rejected, err := keybind.Load(a.userInputFile())
	if err != nil {
		log.Warnf("failed to load key bindings, using defaults: %v", err)
	}
	for _, r := range rejected {
		log.Warnf("key binding rejected: %v", r)
	}
	a.keymap.Store(km)
	a.keymapRejected = rejected
	return km, rejected
}

func (a *App) startInputWatcher() {
	path := a.userInputFile()
	if path == "" {
		return
	}
	_, err := WatchInputFile(a.bgrndCtx, path, func(km *keybind.Keymap, rejected []keybind.Rejection) {
		a.keymap.Store(km)
		a.sched.Schedule(func() {
			a.keymapRejected = rejected
			if a.OnKeymapChange != nil {
				a.OnKeymapChange(km, rejected)
			}
		})
	})
	if err != nil {
		log.Printf("failed to watch input file: %v", err)
	}
}

func (a *App) engineOptions() engine.Options {
	c := a.Config.Engine
	opts := engine.Options{
		ClientName:   a.appName,
		ExtraOptions: c.ExtraOptions,
		LogLevel:     c.LogLevel,
		Volume:       100,
	}
	if a.Config.Playback.RememberVolume {
		opts.Volume = a.Config.Playback.Volume
	}
	if c.UseConfig {
		opts.ConfigFile = c.ConfigFile
	}
	p, err := keybind.WriteInputConf(a.cacheDir, a.userInputFile())
	if err != nil {
		log.Warnf("%v: engine uses default bindings only", err)
		p, err = keybind.WriteInputConf(a.cacheDir, "")
	}
	if err == nil {
		opts.InputConfFile = p
	}
	return opts
}

// ResetEngine applies new engine settings by recreating the engine handle.
// The playlist is reloaded and the current item restarted.
// Returns the number of extra options that failed to apply.
func (a *App) ResetEngine(ctx context.Context, cfg EngineConfig) (int, error) {
	playlist := a.PlaybackManager.Playlist()
	pos := a.PlaybackManager.Status().PlaylistPos

	a.Config.Engine = cfg
	km, rejected := a.loadKeymap()
	a.sched.Schedule(func() {
		if a.OnKeymapChange != nil {
			a.OnKeymapChange(km, rejected)
		}
	})
	failed, err := a.Engine.Reset(ctx, a.engineOptions())
	if err != nil {
		if !errors.Is(err, engine.ErrResetTimeout) {
			log.Errorf("%v\n%s", err, debug.Stack())
		}
		return 0, err
	}
	a.failedOptions = failed
	if err := a.PlaybackManager.applyLoopPlaylist(a.Config.Playback.LoopPlaylist); err != nil {
		log.Printf("failed to set playlist looping: %v", err)
	}

	if len(playlist) > 0 {
		uris := make([]string, len(playlist))
		for i, e := range playlist {
			uris[i] = e.URI
		}
		if err := a.PlaybackManager.Load(uris, Append); err != nil {
			return failed, err
		}
		if pos >= 0 {
			a.PlaybackManager.PlayIndex(pos)
		}
	}
	return failed, nil
}

func (a *App) openHistory() {
	s, err := history.Open(filepath.Join(a.configDir, historyFile), a.Config.Application.MaxRecentFiles)
	if err != nil {
		log.Printf("failed to open play history, recent files won't be saved: %v", err)
		if s, err = history.Open(":memory:", a.Config.Application.MaxRecentFiles); err != nil {
			return
		}
	}
	a.History = s
}

func (a *App) setupHistoryRecording() {
	if a.History == nil {
		return
	}
	pm := a.PlaybackManager
	a.Dispatcher.OnFileLoaded(func(st PlaybackStatus) {
		if st.Path == "" {
			return
		}
		name := st.Title
		if name == "" {
			name = DisplayName(st.Path)
		}
		go func() {
			if err := a.History.Record(st.Path, name, time.Now()); err != nil {
				log.Printf("failed to record history: %v", err)
			}
		}()
	})
	pm.OnMediaChange(func(st PlaybackStatus) {
		a.flushWatchTime()
		a.watchPath = st.Path
		a.Artwork.Clear()
		if st.Loaded && !st.Paused && !st.Idle {
			a.watchTime.Start()
		}
	})
	pm.OnPlaying(a.watchTime.Start)
	pm.OnPaused(a.watchTime.Stop)
	pm.OnStopped(a.watchTime.Stop)
}

func (a *App) flushWatchTime() {
	d := a.watchTime.Elapsed()
	path := a.watchPath
	a.watchTime.Reset()
	if path == "" || d < time.Second {
		return
	}
	go func() {
		if err := a.History.AddWatched(path, d); err != nil {
			log.Printf("failed to record watch time: %v", err)
		}
	}()
}

func (a *App) setupMPRIS(mprisAppName string) {
	a.MPRISHandler = NewMPRISHandler(mprisAppName, a.PlaybackManager)
	a.MPRISHandler.ArtURLLookup = func() (string, error) {
		if a.Artwork.Current() == nil {
			return "", errors.New("no artwork")
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(a.cacheDir, frameFileName))}
		return u.String(), nil
	}
	a.MPRISHandler.OnRaise = func() error { a.Show(); return nil }
	a.MPRISHandler.OnQuit = func() error {
		if a.OnExit == nil {
			return errors.New("no quit handler registered")
		}
		go func() {
			time.Sleep(10 * time.Millisecond)
			a.Quit()
		}()
		return nil
	}
	a.MPRISHandler.Start()
}

func (a *App) Shutdown() {
	if a.MPRISHandler != nil {
		a.MPRISHandler.Shutdown()
	}
	if a.MediaKeys != nil {
		a.MediaKeys.Shutdown()
	}
	a.PlaybackManager.DisableCallbacks()
	if a.History != nil {
		a.watchTime.Stop()
		if d := a.watchTime.Elapsed(); a.watchPath != "" && d >= time.Second {
			a.History.AddWatched(a.watchPath, d)
		}
	}
	if a.Config.Playback.RememberVolume {
		a.Config.Playback.Volume = a.PlaybackManager.Volume()
	}
	a.cancel()
	if a.ipcServer != nil {
		a.ipcServer.Close()
		ipc.DestroyConn()
	}
	a.Engine.Destroy()
	SetSystemSleepDisabled(false)
	if a.History != nil {
		a.History.Close()
	}
	a.SaveConfigFile()
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

func (a *App) SaveConfigFile() {
	a.Config.WriteConfigFile(a.configFilePath())
	a.lastWrittenCfg = *a.Config
}

func (a *App) configFilePath() string {
	return filepath.Join(a.configDir, configFile)
}

// ipcPlayback serves playback requests from other instances.
type ipcPlayback struct {
	*PlaybackManager
}

func (p *ipcPlayback) Enqueue(locators []string, play bool) error {
	mode := Append
	if play {
		mode = AppendPlay
	}
	return p.Load(ExpandLocators(locators), mode)
}
