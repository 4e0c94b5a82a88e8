package ui

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/reelplayer/reel/backend"
	"github.com/reelplayer/reel/backend/history"
	"github.com/reelplayer/reel/backend/keybind"
	"github.com/reelplayer/reel/res"
	"github.com/reelplayer/reel/ui/controller"
	"github.com/reelplayer/reel/ui/shortcuts"
	"github.com/reelplayer/reel/ui/theme"
	"github.com/reelplayer/reel/ui/widgets"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// delay before grabbing a thumbnail, so the first frames
// (often black) are skipped
const artworkCaptureDelay = 1500 * time.Millisecond

type MainWindow struct {
	Window fyne.Window

	App         *backend.App
	Controller  *controller.Controller
	BottomPanel *BottomPanel
	NowPlaying  *widgets.NowPlaying
	Playlist    *widgets.PlaylistView

	theme          *theme.MyTheme
	displayAppName string
	split          *container.Split
	center         *fyne.Container

	mainMenu     *fyne.MainMenu
	recentItem   *fyne.MenuItem
	loopItem     *fyne.MenuItem
	playlistItem *fyne.MenuItem

	keymapShortcuts []fyne.Shortcut
	artworkGen      atomic.Uint64
}

func NewMainWindow(fyneApp fyne.App, displayAppName, appVersion string, app *backend.App, size fyne.Size) *MainWindow {
	m := &MainWindow{
		App:            app,
		Window:         fyneApp.NewWindow(displayAppName),
		theme:          theme.NewMyTheme(&app.Config.Application),
		displayAppName: displayAppName,
	}
	fyneApp.Settings().SetTheme(m.theme)

	m.Controller = controller.New(app, appVersion, m.Window)
	m.Controller.OnTogglePlaylist = m.togglePlaylist
	m.Controller.OnFilterPlaylist = func() {
		if !m.App.Config.Application.ShowPlaylist {
			m.togglePlaylist()
		}
		m.Playlist.FocusFilter()
	}
	m.Controller.OnThemeChanged = func() {
		fyneApp.Settings().SetTheme(m.theme)
	}
	m.Controller.OnQuit = m.Quit

	m.BottomPanel = NewBottomPanel(app.PlaybackManager, &app.Config.Playback)
	m.BottomPanel.Controls.OnTogglePlaylist = m.togglePlaylist
	m.NowPlaying = widgets.NewNowPlaying()
	m.NowPlaying.OnMouseTrigger = func(t keybind.MouseTrigger) { m.runBinding(t) }
	m.Playlist = widgets.NewPlaylistView()
	m.setupPlaylistCallbacks()

	m.split = container.NewHSplit(m.NowPlaying, m.Playlist)
	m.split.Offset = app.Config.Application.PlaylistWidth
	m.center = container.NewStack()
	m.setPlaylistVisible(app.Config.Application.ShowPlaylist)

	content := container.NewBorder(nil, m.BottomPanel, nil, nil, m.center)
	m.Window.SetContent(fynetooltip.AddWindowToolTipLayer(content, m.Window.Canvas()))
	m.Window.Resize(size)
	m.Window.SetOnDropped(m.onDropped)

	m.setupMainMenu()
	m.setupPlaybackCallbacks()
	m.addShortcuts()
	m.registerKeymapShortcuts(app.Keymap())
	app.OnKeymapChange = func(km *keybind.Keymap, rej []keybind.Rejection) {
		m.registerKeymapShortcuts(km)
		if len(rej) > 0 {
			m.Controller.ShowKeymapRejections(rej)
		}
	}

	if app.Config.Application.CheckForUpdates {
		m.App.UpdateChecker.OnUpdatedVersionFound = func() {
			fyne.Do(func() {
				m.ShowNewVersionDialog(m.App.UpdateChecker.VersionTagFound())
			})
		}
	}
	return m
}

// RunOnStartupTasks shows the dialogs that are due at startup.
func (m *MainWindow) RunOnStartupTasks() {
	m.Controller.ShowStartupWarnings()

	cfg := &m.App.Config.Application
	if l := cfg.LastLaunchedVersion; m.App.VersionTag() != l {
		if !m.App.IsFirstLaunch() {
			m.ShowWhatsNewDialog()
		}
		cfg.LastLaunchedVersion = m.App.VersionTag()
	} else if cfg.CheckForUpdates {
		if t := m.App.UpdateChecker.VersionTagFound(); t != "" && t != cfg.LastCheckedVersion {
			m.ShowNewVersionDialog(t)
		}
	}
	m.App.SaveConfigFile()
}

func (m *MainWindow) setupPlaylistCallbacks() {
	pm := m.App.PlaybackManager
	m.Playlist.OnPlayItem = func(idx int) {
		logIfErr("play playlist item", pm.PlayIndex(idx))
	}
	m.Playlist.OnRemove = func(idxs []int) {
		// remove from the end so earlier indexes stay valid
		idxs = slices.Clone(idxs)
		slices.Sort(idxs)
		for _, idx := range slices.Backward(idxs) {
			logIfErr("remove playlist item", pm.RemoveIndex(idx))
		}
	}
	m.Playlist.OnMove = func(idxs []int, insertIdx int) {
		logIfErr("move playlist items", pm.MoveItems(idxs, insertIdx))
	}
	m.Playlist.OnClear = func() { logIfErr("clear playlist", pm.ClearPlaylist()) }
	m.Playlist.OnShuffle = func() { logIfErr("shuffle playlist", pm.Shuffle()) }
}

func (m *MainWindow) setupPlaybackCallbacks() {
	pm := m.App.PlaybackManager
	d := m.App.Dispatcher

	d.OnPlaylistChange(m.Playlist.SetEntries)
	m.Playlist.SetEntries(pm.Playlist())

	pm.OnMediaChange(func(st backend.PlaybackStatus) {
		// invalidate pending captures of the previous file
		m.artworkGen.Add(1)
		m.App.Artwork.Clear()
		m.NowPlaying.SetArtwork(nil, nil)
		if st.Path == "" {
			m.NowPlaying.SetTitle("")
			m.Window.SetTitle(m.displayAppName)
		} else {
			name := st.Title
			if name == "" {
				name = backend.DisplayName(st.Path)
			}
			m.NowPlaying.SetTitle(name)
			m.Window.SetTitle(fmt.Sprintf("%s · %s", name, m.displayAppName))
		}
		m.refreshRecentMenu()
	})
	d.OnStatusChange(func(st backend.PlaybackStatus) {
		m.NowPlaying.SetStatus(statusText(st), st.Loaded)
	})
	d.OnVideoReconfig(m.scheduleArtworkCapture)
	pm.OnLoopChange(func(loop bool) {
		m.loopItem.Checked = loop
		m.mainMenu.Refresh()
	})
	d.OnShutdown(m.Quit)
}

// statusText is the line shown under the title in the now playing area.
func statusText(st backend.PlaybackStatus) string {
	if !st.Loaded || st.Idle {
		return ""
	}
	var parts []string
	if st.Paused {
		parts = append(parts, "Paused")
	}
	if st.Chapters > 1 && st.Chapter >= 0 {
		parts = append(parts, fmt.Sprintf("Chapter %d of %d", st.Chapter+1, st.Chapters))
	}
	if st.Muted {
		parts = append(parts, "Muted")
	}
	return strings.Join(parts, " · ")
}

func (m *MainWindow) scheduleArtworkCapture() {
	gen := m.artworkGen.Add(1)
	time.AfterFunc(artworkCaptureDelay, func() {
		if m.artworkGen.Load() != gen {
			return
		}
		art, err := m.App.Artwork.Capture()
		if err != nil {
			log.Debugf("no artwork: %v", err)
			return
		}
		fyne.Do(func() {
			if m.artworkGen.Load() == gen {
				m.NowPlaying.SetArtwork(art.Image, art.Color)
			}
		})
	})
}

func (m *MainWindow) onDropped(_ fyne.Position, uris []fyne.URI) {
	locators := lo.Map(uris, func(u fyne.URI, _ int) string {
		if u.Scheme() == "file" {
			return u.Path()
		}
		return u.String()
	})
	mode := backend.Replace
	if shortcuts.CurrentModifiers()&fyne.KeyModifierShift != 0 {
		mode = backend.AppendPlay
	}
	m.Controller.OpenLocators(locators, mode)
}

func (m *MainWindow) togglePlaylist() {
	m.setPlaylistVisible(!m.App.Config.Application.ShowPlaylist)
}

func (m *MainWindow) setPlaylistVisible(visible bool) {
	cfg := &m.App.Config.Application
	if cfg.ShowPlaylist && !visible {
		cfg.PlaylistWidth = m.split.Offset
	}
	cfg.ShowPlaylist = visible
	if visible {
		m.center.Objects = []fyne.CanvasObject{m.split}
		m.split.Refresh()
	} else {
		m.center.Objects = []fyne.CanvasObject{m.NowPlaying}
	}
	m.center.Refresh()
	if m.playlistItem != nil {
		m.playlistItem.Checked = visible
		m.mainMenu.Refresh()
	}
}

func (m *MainWindow) setupMainMenu() {
	pm := m.App.PlaybackManager
	c := m.Controller

	m.recentItem = fyne.NewMenuItem("Open Recent", nil)
	quit := fyne.NewMenuItem("Quit", m.Quit)
	quit.IsQuit = true
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Open File...", c.ShowOpenFileDialog),
		fyne.NewMenuItem("Open Folder...", c.ShowOpenFolderDialog),
		fyne.NewMenuItem("Open Location...", c.ShowOpenLocationDialog),
		m.recentItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", c.ShowPreferencesDialog),
		quit,
	)

	m.loopItem = fyne.NewMenuItem("Loop Playlist", func() {
		m.BottomPanel.Controls.OnLoopChanged(!m.App.Config.Playback.LoopPlaylist)
	})
	m.loopItem.Checked = m.App.Config.Playback.LoopPlaylist
	playback := fyne.NewMenu("Playback",
		fyne.NewMenuItem("Play/Pause", func() { logIfErr("play/pause", pm.PlayPause()) }),
		fyne.NewMenuItem("Stop", func() { logIfErr("stop", pm.Stop()) }),
		fyne.NewMenuItem("Previous", pm.Previous),
		fyne.NewMenuItem("Next", pm.Next),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Previous Chapter", func() { logIfErr("previous chapter", pm.PreviousChapter()) }),
		fyne.NewMenuItem("Next Chapter", func() { logIfErr("next chapter", pm.NextChapter()) }),
		fyne.NewMenuItemSeparator(),
		m.loopItem,
		fyne.NewMenuItem("Shuffle Playlist", func() { logIfErr("shuffle playlist", pm.Shuffle()) }),
	)

	m.playlistItem = fyne.NewMenuItem("Show Playlist", m.togglePlaylist)
	m.playlistItem.Checked = m.App.Config.Application.ShowPlaylist
	view := fyne.NewMenu("View",
		m.playlistItem,
		fyne.NewMenuItem("Filter Playlist", c.OnFilterPlaylist),
		fyne.NewMenuItem("Fullscreen", func() { logIfErr("fullscreen", pm.ToggleFullscreen()) }),
	)

	help := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", c.ShowShortcutsDialog),
		fyne.NewMenuItem("Check for Updates", m.checkForUpdates),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("About...", c.ShowAboutDialog),
	)

	m.mainMenu = fyne.NewMainMenu(file, playback, view, help)
	m.refreshRecentMenu()
	m.Window.SetMainMenu(m.mainMenu)
}

func (m *MainWindow) refreshRecentMenu() {
	recent := m.App.RecentFiles()
	items := lo.Map(recent, func(e history.Entry, _ int) *fyne.MenuItem {
		uri := e.URI
		return fyne.NewMenuItem(e.Name, func() {
			m.Controller.OpenLocators([]string{uri}, backend.Replace)
		})
	})
	if len(items) == 0 {
		empty := fyne.NewMenuItem("No recent files", nil)
		empty.Disabled = true
		items = append(items, empty)
	}
	m.recentItem.ChildMenu = fyne.NewMenu("", items...)
	if m.mainMenu != nil {
		m.mainMenu.Refresh()
	}
}

func (m *MainWindow) checkForUpdates() {
	checker := &m.App.UpdateChecker
	if !m.App.Config.Application.CheckForUpdates {
		c := backend.NewUpdateChecker(m.App.VersionTag(), res.LatestReleaseURL, m.App.CacheDir(),
			&m.App.Config.Application.LastCheckedVersion)
		checker = &c
	}
	go func() {
		t := checker.CheckLatestVersionTag()
		fyne.Do(func() {
			if t != "" && backend.IsNewerVersion(t, m.App.VersionTag()) {
				m.ShowNewVersionDialog(t)
			} else {
				dialog.ShowInformation("No new version found",
					"You are running the latest version of "+m.displayAppName,
					m.Window)
			}
		})
	}()
}

func (m *MainWindow) ShowNewVersionDialog(versionTag string) {
	contentStr := fmt.Sprintf("A new version of %s (%s) is available",
		m.displayAppName, versionTag)
	m.Controller.QueueShowModalFunc(func() {
		dialog.ShowCustomConfirm("A new version is available",
			"Go to release page", "Skip this version",
			widget.NewLabel(contentStr), func(show bool) {
				if show {
					if u, err := url.Parse(res.LatestReleaseURL); err == nil {
						fyne.CurrentApp().OpenURL(u)
					}
				}
				m.App.Config.Application.LastCheckedVersion = versionTag
			}, m.Window)
	})
}

func (m *MainWindow) ShowWhatsNewDialog() {
	text := widget.NewRichTextFromMarkdown(res.WhatsAdded)
	text.Wrapping = fyne.TextWrapWord
	m.Controller.QueueShowModalFunc(func() {
		dlg := dialog.NewCustom("What's new in "+res.AppVersion, "Close", container.NewVScroll(text), m.Window)
		dlg.Resize(fyne.NewSize(400, 300))
		dlg.Show()
	})
}

func (m *MainWindow) addShortcuts() {
	if shortcuts.SettingsShortcut != nil {
		m.Canvas().AddShortcut(shortcuts.SettingsShortcut, func(fyne.Shortcut) {
			if !m.Controller.HaveModal() {
				m.Controller.ShowPreferencesDialog()
			}
		})
	}

	m.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		if m.Controller.HaveModal() {
			if e.Name == fyne.KeyEscape {
				m.Controller.CloseEscapablePopUp()
			}
			return
		}
		if t, ok := shortcuts.TriggerForKey(e.Name, shortcuts.CurrentModifiers()); ok {
			m.runBinding(t)
		}
	})
	m.Canvas().SetOnTypedRune(func(r rune) {
		if m.Controller.HaveModal() {
			return
		}
		if t, ok := shortcuts.TriggerForRune(r, shortcuts.CurrentModifiers()); ok {
			m.runBinding(t)
		}
	})
}

// registerKeymapShortcuts registers the key bindings that use ctrl, alt
// or meta, replacing those of a previous keymap.
func (m *MainWindow) registerKeymapShortcuts(km *keybind.Keymap) {
	for _, sc := range m.keymapShortcuts {
		m.Canvas().RemoveShortcut(sc)
	}
	m.keymapShortcuts = m.keymapShortcuts[:0]
	for _, b := range km.Bindings() {
		kt, ok := b.Trigger.(keybind.KeyTrigger)
		if !ok {
			continue
		}
		sc, ok := shortcuts.CustomShortcut(kt)
		if !ok {
			continue
		}
		m.Canvas().AddShortcut(sc, func(fyne.Shortcut) {
			if !m.Controller.HaveModal() {
				m.runBinding(kt)
			}
		})
		m.keymapShortcuts = append(m.keymapShortcuts, sc)
	}
}

// runBinding sends the command bound to t to the engine. Bindings to
// application actions come back through the dispatcher.
func (m *MainWindow) runBinding(t keybind.Trigger) {
	cmd, ok := m.App.Keymap().Lookup(t)
	if !ok {
		return
	}
	if err := m.App.PlaybackManager.RunCommand(cmd); err != nil {
		log.Printf("binding %s: %v", t, err)
	}
}

func (m *MainWindow) Show() {
	m.Window.Show()
	m.Window.RequestFocus()
}

func (m *MainWindow) Canvas() fyne.Canvas {
	return m.Window.Canvas()
}

func (m *MainWindow) Quit() {
	m.SaveWindowSize()
	fyne.CurrentApp().Quit()
}

func (m *MainWindow) SaveWindowSize() {
	cfg := &m.App.Config.Application
	// round sizes to even to avoid Wayland issues with 2x scaling factor
	cfg.WindowHeight = int(math.RoundToEven(float64(m.Window.Canvas().Size().Height)))
	cfg.WindowWidth = int(math.RoundToEven(float64(m.Window.Canvas().Size().Width)))
	if cfg.ShowPlaylist {
		cfg.PlaylistWidth = m.split.Offset
	}
}
