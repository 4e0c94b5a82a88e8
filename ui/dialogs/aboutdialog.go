package dialogs

import (
	"fmt"
	"net/url"

	"github.com/reelplayer/reel/res"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type AboutDialog struct {
	widget.BaseWidget

	OnDismiss func()

	content fyne.CanvasObject
}

func NewAboutDialog(version string) *AboutDialog {
	a := &AboutDialog{}
	a.ExtendBaseWidget(a)

	a.content = container.NewVBox(
		container.NewAppTabs(
			container.NewTabItem(res.DisplayName, a.buildMainTab(version)),
			container.NewTabItem("Credits", a.buildCreditsTab()),
		),
		widget.NewSeparator(),
		container.NewHBox(layout.NewSpacer(), widget.NewButton("Close", a.dismiss)),
	)
	return a
}

func (a *AboutDialog) dismiss() {
	if a.OnDismiss != nil {
		a.OnDismiss()
	}
}

func (a *AboutDialog) MinSize() fyne.Size {
	return fyne.NewSize(420, a.BaseWidget.MinSize().Height)
}

func (a *AboutDialog) buildMainTab(version string) fyne.CanvasObject {
	title := widget.NewRichTextWithText(res.DisplayName)
	ts := title.Segments[0].(*widget.TextSegment)
	ts.Style.TextStyle.Bold = true
	ts.Style.SizeName = theme.SizeNameSubHeadingText
	ts.Style.Alignment = fyne.TextAlignCenter
	ghURL, _ := url.Parse(res.GithubURL)

	return container.NewVBox(
		title,
		newCenterAlignLabel(fmt.Sprintf("version %s", version)),
		newCenterAlignLabel("A desktop front-end for the mpv media engine"),
		newCenterAlignLabel(res.Copyright),
		container.NewCenter(widget.NewHyperlink("Github page", ghURL)),
	)
}

func (a *AboutDialog) buildCreditsTab() fyne.CanvasObject {
	credit := func(name, link, license string) fyne.CanvasObject {
		u, _ := url.Parse(link)
		return container.NewHBox(widget.NewHyperlink(name, u), widget.NewLabel(license))
	}
	return container.NewVBox(
		widget.NewLabel("Major frameworks and modules used in this application include:"),
		credit("mpv", "https://mpv.io", "LGPL v2.1+ / GPL v2+"),
		credit("Fyne toolkit", "https://fyne.io", "BSD 3-Clause License"),
		credit("go-mpv", "https://github.com/supersonic-app/go-mpv", "MIT License"),
		credit("go-toml", "https://github.com/pelletier/go-toml", "MIT License"),
	)
}

func (a *AboutDialog) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(a.content)
}

func newCenterAlignLabel(text string) *widget.Label {
	lbl := widget.NewLabel(text)
	lbl.Alignment = fyne.TextAlignCenter
	return lbl
}
