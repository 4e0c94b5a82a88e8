package backend

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/reelplayer/reel/backend/keybind"
	log "github.com/sirupsen/logrus"
)

const inputReloadDelay = 300 * time.Millisecond

// InputWatcher reloads the keymap when the user's input file changes.
type InputWatcher struct {
	path     string
	onReload func(*keybind.Keymap, []keybind.Rejection)
	watcher  *fsnotify.Watcher
}

// WatchInputFile starts watching path until ctx is done. onReload is called
// from the watcher goroutine with the freshly merged keymap.
func WatchInputFile(ctx context.Context, path string, onReload func(*keybind.Keymap, []keybind.Rejection)) (*InputWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// editors commonly replace the file, so watch its directory
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	iw := &InputWatcher{path: filepath.Clean(path), onReload: onReload, watcher: w}
	go iw.run(ctx)
	return iw, nil
}

func (iw *InputWatcher) run(ctx context.Context) {
	defer iw.watcher.Close()
	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-iw.watcher.Events:
			if !ok {
				return
			}
			if iw.relevant(ev) {
				reload = time.After(inputReloadDelay)
			}
		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("input file watcher: %v", err)
		case <-reload:
			reload = nil
			iw.reload()
		}
	}
}

func (iw *InputWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != iw.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

func (iw *InputWatcher) reload() {
	km, rejected, err := keybind.Load(iw.path)
	if err != nil {
		log.Printf("failed to reload input file %s: %v", iw.path, err)
	}
	iw.onReload(km, rejected)
}
