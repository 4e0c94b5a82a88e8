package dialogs

import (
	"strconv"

	"github.com/reelplayer/reel/backend"
	"github.com/reelplayer/reel/ui/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var boldStyle = widget.RichTextStyle{TextStyle: fyne.TextStyle{Bold: true}}

var (
	appLogLevels    = []string{"error", "warning", "info", "debug"}
	engineLogLevels = []string{"no", "fatal", "error", "warn", "info", "v", "debug"}
)

// PreferencesDialog edits the application settings in place. Engine
// settings are staged and only applied, with an engine restart, when
// the user presses Apply.
type PreferencesDialog struct {
	widget.BaseWidget

	OnThemeChanged func()
	OnApplyEngine  func(backend.EngineConfig)
	OnDismiss      func()

	config    *backend.Config
	engineCfg backend.EngineConfig

	applyBtn *widget.Button
	content  fyne.CanvasObject
}

func NewPreferencesDialog(config *backend.Config) *PreferencesDialog {
	s := &PreferencesDialog{config: config, engineCfg: config.Engine}
	s.ExtendBaseWidget(s)

	s.applyBtn = widget.NewButton("Apply", s.applyEngine)
	s.applyBtn.Importance = widget.HighImportance
	s.applyBtn.Disable()

	tabs := container.NewAppTabs(
		s.createGeneralTab(),
		s.createEngineTab(),
	)
	s.content = container.NewVBox(tabs, widget.NewSeparator(),
		container.NewHBox(layout.NewSpacer(), s.applyBtn, widget.NewButton("Close", func() {
			if s.OnDismiss != nil {
				s.OnDismiss()
			}
		})))

	return s
}

func (s *PreferencesDialog) createGeneralTab() *container.TabItem {
	app := &s.config.Application

	darkTheme := widget.NewCheckWithData("Dark theme", binding.BindBool(&app.PreferDarkTheme))
	darkTheme.OnChanged = func(bool) {
		if s.OnThemeChanged != nil {
			s.OnThemeChanged()
		}
	}
	themeFile := widget.NewEntryWithData(binding.BindString(&app.ThemeFile))
	themeFile.PlaceHolder = "Built-in"
	themeFile.OnSubmitted = func(string) {
		if s.OnThemeChanged != nil {
			s.OnThemeChanged()
		}
	}

	recent := widgets.NewNumberEntry(3)
	recent.SetText(strconv.Itoa(app.MaxRecentFiles))
	recent.OnChanged = func(string) {
		app.MaxRecentFiles = recent.Value(0)
	}

	logLevel := widget.NewSelect(appLogLevels, func(l string) { app.LogLevel = l })
	logLevel.Selected = app.LogLevel

	restartNote := widget.NewLabel("Takes effect after restarting the application.")
	restartNote.Importance = widget.LowImportance

	return container.NewTabItem("General", container.NewVBox(
		widget.NewRichText(&widget.TextSegment{Text: "Appearance", Style: boldStyle}),
		darkTheme,
		container.New(layout.NewFormLayout(), widget.NewLabel("Theme file"), themeFile),
		widget.NewSeparator(),
		widget.NewRichText(&widget.TextSegment{Text: "Integration", Style: boldStyle}),
		widget.NewCheckWithData("Desktop media controls (MPRIS)", binding.BindBool(&app.EnableMPRIS)),
		widget.NewCheckWithData("Media keys", binding.BindBool(&app.EnableMediaKeys)),
		widget.NewCheckWithData("Check for updates", binding.BindBool(&app.CheckForUpdates)),
		widget.NewCheckWithData("Remember volume", binding.BindBool(&s.config.Playback.RememberVolume)),
		restartNote,
		widget.NewSeparator(),
		container.New(layout.NewFormLayout(),
			widget.NewLabel("Recent files"), container.NewHBox(recent),
			widget.NewLabel("Log level"), logLevel,
		),
	))
}

func (s *PreferencesDialog) createEngineTab() *container.TabItem {
	cfg := &s.engineCfg

	configFile := widget.NewEntry()
	configFile.SetText(cfg.ConfigFile)
	configFile.PlaceHolder = "mpv.conf"
	configFile.OnChanged = func(t string) { cfg.ConfigFile = t; s.updateApply() }
	useConfig := widget.NewCheck("Load engine config file", func(b bool) {
		cfg.UseConfig = b
		s.updateApply()
	})
	useConfig.Checked = cfg.UseConfig

	inputFile := widget.NewEntry()
	inputFile.SetText(cfg.InputFile)
	inputFile.PlaceHolder = "input.conf"
	inputFile.OnChanged = func(t string) { cfg.InputFile = t; s.updateApply() }
	useInput := widget.NewCheck("Load key bindings file", func(b bool) {
		cfg.UseInputFile = b
		s.updateApply()
	})
	useInput.Checked = cfg.UseInputFile

	extra := widget.NewMultiLineEntry()
	extra.SetText(cfg.ExtraOptions)
	extra.PlaceHolder = "--hwdec=auto --sub-auto=fuzzy"
	extra.Wrapping = fyne.TextWrapWord
	extra.SetMinRowsVisible(3)
	extra.OnChanged = func(t string) { cfg.ExtraOptions = t; s.updateApply() }

	logLevel := widget.NewSelect(engineLogLevels, func(l string) {
		cfg.LogLevel = l
		s.updateApply()
	})
	logLevel.Selected = cfg.LogLevel

	note := widget.NewLabel("Applying engine settings restarts playback.")
	note.Importance = widget.LowImportance

	return container.NewTabItem("Engine", container.NewVBox(
		useConfig,
		container.New(layout.NewFormLayout(), widget.NewLabel("Config file"), configFile),
		useInput,
		container.New(layout.NewFormLayout(), widget.NewLabel("Bindings file"), inputFile),
		widget.NewRichText(&widget.TextSegment{Text: "Extra options", Style: boldStyle}),
		extra,
		container.New(layout.NewFormLayout(), widget.NewLabel("Error messages"), logLevel),
		note,
	))
}

func (s *PreferencesDialog) updateApply() {
	if s.engineCfg != s.config.Engine {
		s.applyBtn.Enable()
	} else {
		s.applyBtn.Disable()
	}
}

func (s *PreferencesDialog) applyEngine() {
	s.applyBtn.Disable()
	if s.OnApplyEngine != nil {
		s.OnApplyEngine(s.engineCfg)
	}
}

func (s *PreferencesDialog) MinSize() fyne.Size {
	return fyne.NewSize(480, s.BaseWidget.MinSize().Height)
}

func (s *PreferencesDialog) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}
