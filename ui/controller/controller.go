package controller

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/reelplayer/reel/backend"
	"github.com/reelplayer/reel/backend/engine"
	"github.com/reelplayer/reel/backend/keybind"
	"github.com/reelplayer/reel/ui/dialogs"
	log "github.com/sirupsen/logrus"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const engineResetTimeout = 10 * time.Second

// Names of application actions, as used in
// "script-message reel-action <name>" bindings.
const (
	ActionOpen           = "open"
	ActionOpenFolder     = "open-folder"
	ActionOpenLocation   = "open-location"
	ActionTogglePlaylist = "toggle-playlist"
	ActionFilterPlaylist = "filter-playlist"
	ActionPreferences    = "preferences"
	ActionShortcuts      = "shortcuts"
	ActionAbout          = "about"
	ActionQuit           = "quit"
)

type Controller struct {
	AppVersion string
	MainWindow fyne.Window
	App        *backend.App

	OnTogglePlaylist func()
	OnFilterPlaylist func()
	OnThemeChanged   func()
	OnQuit           func()

	escapablePopUp   *widget.PopUp
	haveModal        bool
	runOnModalClosed []func()

	messageDlg *dialogs.MessageDialog
}

func New(app *backend.App, appVersion string, mainWindow fyne.Window) *Controller {
	c := &Controller{App: app, AppVersion: appVersion, MainWindow: mainWindow}
	app.Dispatcher.OnAction(c.DoAction)
	app.Dispatcher.OnLogLines(func(text string) {
		c.ShowMessage("Engine error", text, false)
	})
	app.Dispatcher.OnEndFileError(func(reason string) {
		c.ShowMessage("Playback error", reason, false)
	})
	return c
}

// DoAction runs a named application action. Unknown names are logged.
func (c *Controller) DoAction(name string) {
	switch name {
	case ActionOpen:
		c.ShowOpenFileDialog()
	case ActionOpenFolder:
		c.ShowOpenFolderDialog()
	case ActionOpenLocation:
		c.ShowOpenLocationDialog()
	case ActionTogglePlaylist:
		if c.OnTogglePlaylist != nil {
			c.OnTogglePlaylist()
		}
	case ActionFilterPlaylist:
		if c.OnFilterPlaylist != nil {
			c.OnFilterPlaylist()
		}
	case ActionPreferences:
		c.ShowPreferencesDialog()
	case ActionShortcuts:
		c.ShowShortcutsDialog()
	case ActionAbout:
		c.ShowAboutDialog()
	case ActionQuit:
		if c.OnQuit != nil {
			c.OnQuit()
		}
	default:
		log.Printf("unknown action %q", name)
	}
}

func (c *Controller) ClosePopUpOnEscape(pop *widget.PopUp) {
	c.escapablePopUp = pop
}

func (c *Controller) CloseEscapablePopUp() {
	if c.escapablePopUp != nil {
		c.escapablePopUp.Hide()
		c.escapablePopUp = nil
		c.doModalClosed()
	}
}

// QueueShowModalFunc runs f, which should create and show a modal
// dialog, now if no modal is visible, or else once the visible ones
// have been closed. Queued functions run in order.
func (c *Controller) QueueShowModalFunc(f func()) {
	if c.haveModal {
		c.runOnModalClosed = append(c.runOnModalClosed, f)
	} else {
		f()
	}
}

func (c *Controller) HaveModal() bool {
	return c.haveModal
}

func (c *Controller) doModalClosed() {
	c.haveModal = false
	if len(c.runOnModalClosed) > 0 {
		f := c.runOnModalClosed[0]
		c.runOnModalClosed = c.runOnModalClosed[1:]
		f()
	}
}

// showModal shows content in an escapable modal popup and returns
// the function that closes it.
func (c *Controller) showModal(content fyne.CanvasObject) func() {
	pop := widget.NewModalPopUp(content, c.MainWindow.Canvas())
	closed := false
	closeFn := func() {
		if closed {
			return
		}
		closed = true
		if c.escapablePopUp == pop {
			c.escapablePopUp = nil
		}
		pop.Hide()
		c.doModalClosed()
	}
	c.ClosePopUpOnEscape(pop)
	c.haveModal = true
	pop.Show()
	return closeFn
}

// ShowMessage shows an error or warning. While a message dialog is
// open, further messages are appended to it.
func (c *Controller) ShowMessage(title, msg string, warning bool) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	if c.messageDlg != nil {
		c.messageDlg.AppendText(msg)
		return
	}
	c.QueueShowModalFunc(func() {
		dlg := dialogs.NewMessageDialog(title, msg, warning)
		c.messageDlg = dlg
		closeFn := c.showModal(dlg)
		dlg.OnDismiss = func() {
			c.messageDlg = nil
			closeFn()
		}
	})
}

// ShowStartupWarnings reports problems from application startup.
func (c *Controller) ShowStartupWarnings() {
	if n := c.App.FailedOptions(); n > 0 {
		c.ShowMessage("Engine options",
			fmt.Sprintf("%d of the extra engine options could not be applied. Check Preferences > Engine.", n), true)
	}
	if rej := c.App.KeymapRejections(); len(rej) > 0 {
		c.ShowKeymapRejections(rej)
	}
}

// ShowKeymapRejections lists the lines of the user bindings file
// that were ignored.
func (c *Controller) ShowKeymapRejections(rej []keybind.Rejection) {
	var sb strings.Builder
	for _, r := range rej {
		sb.WriteString(r.Error())
		sb.WriteString("\n")
	}
	c.ShowMessage(fmt.Sprintf("%d key binding(s) ignored", len(rej)), sb.String(), true)
}

func (c *Controller) ShowAboutDialog() {
	c.QueueShowModalFunc(func() {
		dlg := dialogs.NewAboutDialog(c.AppVersion)
		dlg.OnDismiss = c.showModal(dlg)
	})
}

func (c *Controller) ShowShortcutsDialog() {
	c.QueueShowModalFunc(func() {
		dlg := dialogs.NewShortcutsDialog(c.App.Keymap(), c.App.KeymapRejections())
		dlg.OnDismiss = c.showModal(dlg)
	})
}

func (c *Controller) ShowPreferencesDialog() {
	c.QueueShowModalFunc(func() {
		dlg := dialogs.NewPreferencesDialog(c.App.Config)
		dlg.OnThemeChanged = c.OnThemeChanged
		dlg.OnApplyEngine = c.applyEngineConfig
		closeFn := c.showModal(dlg)
		dlg.OnDismiss = func() {
			closeFn()
			c.App.SaveConfigFile()
		}
	})
}

func (c *Controller) applyEngineConfig(cfg backend.EngineConfig) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), engineResetTimeout)
		defer cancel()
		failed, err := c.App.ResetEngine(ctx, cfg)
		fyne.Do(func() {
			switch {
			case errors.Is(err, engine.ErrResetTimeout):
				c.ShowMessage("Engine restart", "The engine did not respond in time. Restart the application to apply the new settings.", false)
			case err != nil:
				c.ShowMessage("Engine restart", err.Error(), false)
			case failed > 0:
				c.ShowMessage("Engine options",
					fmt.Sprintf("%d of the extra engine options could not be applied.", failed), true)
			}
		})
	}()
}

func (c *Controller) ShowOpenLocationDialog() {
	c.QueueShowModalFunc(func() {
		dlg := dialogs.NewOpenLocationDialog("")
		closeFn := c.showModal(dlg)
		dlg.OnDismiss = closeFn
		dlg.OnSubmit = func(loc string, appendOnly bool) {
			closeFn()
			mode := backend.Replace
			if appendOnly {
				mode = backend.AppendPlay
			}
			c.load([]string{loc}, mode)
		}
		c.MainWindow.Canvas().Focus(dlg.Entry())
	})
}

func (c *Controller) lastFolderLister() fyne.ListableURI {
	dir := c.App.Config.Application.LastFolder
	if dir == "" {
		return nil
	}
	l, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return l
}

func (c *Controller) ShowOpenFileDialog() {
	c.QueueShowModalFunc(func() {
		c.haveModal = true
		dlg := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			defer c.doModalClosed()
			if err != nil {
				log.Printf("open file dialog: %v", err)
				return
			}
			if rc == nil {
				return // cancelled
			}
			path := rc.URI().Path()
			rc.Close()
			c.App.Config.Application.LastFolder = filepath.Dir(path)
			c.load([]string{path}, backend.Replace)
		}, c.MainWindow)
		dlg.SetFilter(storage.NewExtensionFileFilter(backend.MediaExtensions))
		if l := c.lastFolderLister(); l != nil {
			dlg.SetLocation(l)
		}
		dlg.Resize(c.dialogSize())
		dlg.Show()
	})
}

func (c *Controller) ShowOpenFolderDialog() {
	c.QueueShowModalFunc(func() {
		c.haveModal = true
		dlg := dialog.NewFolderOpen(func(l fyne.ListableURI, err error) {
			defer c.doModalClosed()
			if err != nil {
				log.Printf("open folder dialog: %v", err)
				return
			}
			if l == nil {
				return
			}
			c.App.Config.Application.LastFolder = l.Path()
			c.load([]string{l.Path()}, backend.Replace)
		}, c.MainWindow)
		if l := c.lastFolderLister(); l != nil {
			dlg.SetLocation(l)
		}
		dlg.Resize(c.dialogSize())
		dlg.Show()
	})
}

func (c *Controller) dialogSize() fyne.Size {
	s := c.MainWindow.Canvas().Size()
	return fyne.NewSize(fyne.Min(s.Width*0.9, 800), fyne.Min(s.Height*0.9, 600))
}

// OpenLocators loads dropped or recently played files, replacing the playlist.
func (c *Controller) OpenLocators(locators []string, mode backend.LoadMode) {
	c.load(locators, mode)
}

func (c *Controller) load(locators []string, mode backend.LoadMode) {
	files := backend.ExpandLocators(locators)
	if len(files) == 0 {
		c.ShowMessage("Nothing to play", "No media files were found in "+strings.Join(locators, ", "), true)
		return
	}
	if err := c.App.PlaybackManager.Load(files, mode); err != nil {
		log.Printf("failed to load files: %v", err)
		c.ShowMessage("Open", err.Error(), false)
	}
}
