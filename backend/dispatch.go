package backend

import (
	"fmt"
	"strings"

	"github.com/reelplayer/reel/backend/engine"
	log "github.com/sirupsen/logrus"
)

// ActionMessage is the first argument of client messages that name
// an application action, eg "script-message reel-action open".
const ActionMessage = "reel-action"

// Scheduler runs functions on the UI thread in the order they were
// scheduled. Schedule must not block waiting for f to run.
type Scheduler interface {
	Schedule(f func())
}

// SchedulerFunc adapts a function such as fyne.Do to a Scheduler.
type SchedulerFunc func(func())

func (s SchedulerFunc) Schedule(f func()) { s(f) }

type nodeReader interface {
	GetNode(name string) (any, error)
}

var observedProperties = []struct {
	name   string
	format engine.Format
}{
	{"pause", engine.FormatFlag},
	{"time-pos", engine.FormatDouble},
	{"duration", engine.FormatDouble},
	{"volume", engine.FormatDouble},
	{"mute", engine.FormatFlag},
	{"fullscreen", engine.FormatFlag},
	{"idle-active", engine.FormatFlag},
	{"eof-reached", engine.FormatFlag},
	{"playlist-pos", engine.FormatInt64},
	{"chapter", engine.FormatInt64},
	{"chapters", engine.FormatInt64},
	{"media-title", engine.FormatString},
	{"path", engine.FormatString},
	{"playlist", engine.FormatNode},
}

// observeProperties registers every property the dispatcher handles.
func observeProperties(e *engine.Engine) {
	for _, p := range observedProperties {
		e.Observe(p.name, p.format)
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func asInt(v any, unset int) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return unset
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

var propertyUpdaters = map[string]func(*PlaybackStatus, any){
	"pause":        func(s *PlaybackStatus, v any) { s.Paused = asBool(v) },
	"time-pos":     func(s *PlaybackStatus, v any) { s.TimePos = asFloat(v) },
	"duration":     func(s *PlaybackStatus, v any) { s.Duration = asFloat(v) },
	"volume":       func(s *PlaybackStatus, v any) { s.Volume = asFloat(v) },
	"mute":         func(s *PlaybackStatus, v any) { s.Muted = asBool(v) },
	"fullscreen":   func(s *PlaybackStatus, v any) { s.Fullscreen = asBool(v) },
	"idle-active":  func(s *PlaybackStatus, v any) { s.Idle = asBool(v) },
	"eof-reached":  func(s *PlaybackStatus, v any) { s.EndOfFile = asBool(v) },
	"playlist-pos": func(s *PlaybackStatus, v any) { s.PlaylistPos = asInt(v, -1) },
	"chapter":      func(s *PlaybackStatus, v any) { s.Chapter = asInt(v, -1) },
	"chapters":     func(s *PlaybackStatus, v any) { s.Chapters = asInt(v, 0) },
	"media-title":  func(s *PlaybackStatus, v any) { s.Title = asString(v) },
	"path":         func(s *PlaybackStatus, v any) { s.Path = asString(v) },
}

// pending UI work collected while dispatching one batch
type batchResult struct {
	status       bool
	playlist     bool
	fileLoaded   bool
	seeked       bool
	videoChanged bool
	flushLog     bool
	endFileErrs  []string
	actions      []string
	shutdown     bool
}

// Dispatcher applies engine events to the shared state and schedules
// the resulting UI callbacks.
type Dispatcher struct {
	state  *SharedState
	sched  Scheduler
	reader nodeReader

	handlers map[engine.EventKind]func(engine.Event, *batchResult)

	onStatusChange   []func(PlaybackStatus)
	onPlaylistChange []func([]PlaylistEntry)
	onFileLoaded     []func(PlaybackStatus)
	onSeek           []func(PlaybackStatus)
	onVideoReconfig  []func()
	onLogLines       []func(string)
	onEndFileError   []func(string)
	onAction         []func(string)
	onShutdown       []func()
}

func NewDispatcher(state *SharedState, sched Scheduler, reader nodeReader) *Dispatcher {
	d := &Dispatcher{state: state, sched: sched, reader: reader}
	d.handlers = map[engine.EventKind]func(engine.Event, *batchResult){
		engine.EventStartFile:       d.handleStartFile,
		engine.EventFileLoaded:      d.handleFileLoaded,
		engine.EventEndFile:         d.handleEndFile,
		engine.EventIdle:            d.handleIdle,
		engine.EventLogMessage:      d.handleLogMessage,
		engine.EventPropertyChange:  d.handlePropertyChange,
		engine.EventClientMessage:   d.handleClientMessage,
		engine.EventSeek:            d.handleSeek,
		engine.EventPlaybackRestart: d.handleSeek,
		engine.EventVideoReconfig:   d.handleVideoReconfig,
		engine.EventShutdown:        d.handleShutdown,
	}
	return d
}

// Dispatch handles a batch of events on the calling goroutine and
// schedules UI callbacks once for the whole batch.
func (d *Dispatcher) Dispatch(batch []engine.Event) {
	var res batchResult
	for _, ev := range batch {
		if h, ok := d.handlers[ev.Kind]; ok {
			h(ev, &res)
		}
	}
	d.schedule(res)
}

func (d *Dispatcher) handleStartFile(_ engine.Event, res *batchResult) {
	d.state.Update(func(s *PlaybackStatus) {
		s.NewFile = true
		s.EndOfFile = false
		s.Idle = false
	})
	res.status = true
}

func (d *Dispatcher) handleFileLoaded(_ engine.Event, res *batchResult) {
	d.state.Update(func(s *PlaybackStatus) {
		s.Loaded = true
		s.NewFile = false
	})
	d.resyncPlaylist(nil, false)
	res.status = true
	res.playlist = true
	res.fileLoaded = true
}

func (d *Dispatcher) handleEndFile(ev engine.Event, res *batchResult) {
	eof := ev.EndFile != nil && ev.EndFile.Reason == engine.EndReasonEOF
	d.state.Update(func(s *PlaybackStatus) {
		s.Loaded = false
		s.EndOfFile = eof
	})
	res.status = true
	if ev.EndFile != nil && ev.EndFile.Reason == engine.EndReasonError {
		reason := "unknown error"
		if ev.EndFile.Err != nil {
			reason = ev.EndFile.Err.Error()
		}
		res.endFileErrs = append(res.endFileErrs, reason)
	}
}

func (d *Dispatcher) handleIdle(_ engine.Event, res *batchResult) {
	d.state.Update(func(s *PlaybackStatus) {
		s.Idle = true
		s.Loaded = false
	})
	res.status = true
}

func (d *Dispatcher) handleLogMessage(ev engine.Event, res *batchResult) {
	if ev.Log == nil {
		return
	}
	log.WithField("module", ev.Log.Prefix).Warn(strings.TrimRight(ev.Log.Text, "\n"))
	line := fmt.Sprintf("[%s] %s: %s", ev.Log.Prefix, ev.Log.Level, ev.Log.Text)
	if d.state.AppendLog(line) {
		res.flushLog = true
	}
}

func (d *Dispatcher) handlePropertyChange(ev engine.Event, res *batchResult) {
	p := ev.Property
	if p == nil {
		return
	}
	if p.Name == "playlist" {
		d.resyncPlaylist(p.Value, true)
		res.playlist = true
		return
	}
	if upd, ok := propertyUpdaters[p.Name]; ok {
		d.state.Update(func(s *PlaybackStatus) { upd(s, p.Value) })
		res.status = true
	}
}

func (d *Dispatcher) handleClientMessage(ev engine.Event, res *batchResult) {
	if len(ev.Args) >= 2 && ev.Args[0] == ActionMessage {
		res.actions = append(res.actions, ev.Args[1])
	}
}

func (d *Dispatcher) handleSeek(_ engine.Event, res *batchResult) {
	res.seeked = true
}

func (d *Dispatcher) handleVideoReconfig(_ engine.Event, res *batchResult) {
	res.videoChanged = true
}

func (d *Dispatcher) handleShutdown(_ engine.Event, res *batchResult) {
	res.shutdown = true
}

// resyncPlaylist replaces the playlist mirror with the engine's playlist.
// If haveNode is false the playlist is read from the engine.
func (d *Dispatcher) resyncPlaylist(node any, haveNode bool) {
	if !haveNode {
		if d.reader == nil {
			return
		}
		n, err := d.reader.GetNode("playlist")
		if err != nil {
			log.Printf("failed to read playlist: %v", err)
			return
		}
		node = n
	}
	d.state.setPlaylist(playlistFromNode(node, d.state.Playlist()))
}

func (d *Dispatcher) schedule(res batchResult) {
	if res.flushLog {
		d.sched.Schedule(func() {
			if text := d.state.TakeLog(); text != "" {
				for _, cb := range d.onLogLines {
					cb(text)
				}
			}
		})
	}
	if res.playlist {
		d.sched.Schedule(func() {
			pl := d.state.Playlist()
			for _, cb := range d.onPlaylistChange {
				cb(pl)
			}
		})
	}
	if res.status || res.fileLoaded || res.seeked {
		d.sched.Schedule(func() {
			st := d.state.Status()
			for _, cb := range d.onStatusChange {
				cb(st)
			}
			if res.fileLoaded {
				for _, cb := range d.onFileLoaded {
					cb(st)
				}
			}
			if res.seeked {
				for _, cb := range d.onSeek {
					cb(st)
				}
			}
		})
	}
	if res.videoChanged {
		d.sched.Schedule(func() {
			for _, cb := range d.onVideoReconfig {
				cb()
			}
		})
	}
	for _, reason := range res.endFileErrs {
		d.sched.Schedule(func() {
			for _, cb := range d.onEndFileError {
				cb(reason)
			}
		})
	}
	for _, action := range res.actions {
		d.sched.Schedule(func() {
			for _, cb := range d.onAction {
				cb(action)
			}
		})
	}
	if res.shutdown {
		d.sched.Schedule(func() {
			for _, cb := range d.onShutdown {
				cb()
			}
		})
	}
}

// OnStatusChange registers a callback run on the UI thread after
// playback flags or cached properties change.
func (d *Dispatcher) OnStatusChange(cb func(PlaybackStatus)) {
	d.onStatusChange = append(d.onStatusChange, cb)
}

func (d *Dispatcher) OnPlaylistChange(cb func([]PlaylistEntry)) {
	d.onPlaylistChange = append(d.onPlaylistChange, cb)
}

func (d *Dispatcher) OnFileLoaded(cb func(PlaybackStatus)) {
	d.onFileLoaded = append(d.onFileLoaded, cb)
}

func (d *Dispatcher) OnSeek(cb func(PlaybackStatus)) {
	d.onSeek = append(d.onSeek, cb)
}

func (d *Dispatcher) OnVideoReconfig(cb func()) {
	d.onVideoReconfig = append(d.onVideoReconfig, cb)
}

// OnLogLines registers a callback receiving complete lines of engine log output.
func (d *Dispatcher) OnLogLines(cb func(string)) {
	d.onLogLines = append(d.onLogLines, cb)
}

// OnEndFileError registers a callback receiving the engine's reason
// when a file stops playing because of an error.
func (d *Dispatcher) OnEndFileError(cb func(string)) {
	d.onEndFileError = append(d.onEndFileError, cb)
}

func (d *Dispatcher) OnAction(cb func(string)) {
	d.onAction = append(d.onAction, cb)
}

func (d *Dispatcher) OnShutdown(cb func()) {
	d.onShutdown = append(d.onShutdown, cb)
}
