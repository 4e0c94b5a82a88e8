package main

import (
	"errors"
	"runtime"
	"time"

	"github.com/reelplayer/reel/backend"
	"github.com/reelplayer/reel/backend/engine/libmpv"
	"github.com/reelplayer/reel/cmd"
	"github.com/reelplayer/reel/res"
	"github.com/reelplayer/reel/ui"
	log "github.com/sirupsen/logrus"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

func main() {
	cmd.Execute(run)
}

func run(locators []string) error {
	fyneApp := app.NewWithID("io.github.reelplayer.reel")

	myApp, err := backend.StartupApp(res.AppName, res.DisplayName, res.AppVersionTag, res.LatestReleaseURL,
		locators, libmpv.New, backend.SchedulerFunc(fyne.Do))
	if errors.Is(err, backend.ErrAnotherInstance) {
		return nil
	} else if err != nil {
		log.Fatalf("fatal startup error: %v", err.Error())
	}

	w := float32(myApp.Config.Application.WindowWidth)
	if w <= 1 {
		w = 960
	}
	h := float32(myApp.Config.Application.WindowHeight)
	if h <= 1 {
		h = 640
	}
	mainWindow := ui.NewMainWindow(fyneApp, res.DisplayName, res.AppVersion, myApp, fyne.NewSize(w, h))
	myApp.OnReactivate = mainWindow.Show
	myApp.OnExit = mainWindow.Quit

	go func() {
		// laying out the window before the window manager's creation
		// animation finishes can misdraw it on some Linux desktops
		if runtime.GOOS == "linux" {
			time.Sleep(250 * time.Millisecond)
		}
		fyne.Do(mainWindow.RunOnStartupTasks)
	}()

	mainWindow.Window.SetCloseIntercept(mainWindow.Quit)
	mainWindow.Show()
	myApp.Run()
	fyneApp.Run()

	log.Println("Running shutdown tasks...")
	myApp.Shutdown()
	return nil
}
