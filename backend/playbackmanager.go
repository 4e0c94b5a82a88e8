package backend

import (
	"fmt"
	"strconv"

	"github.com/reelplayer/reel/backend/engine"
	"github.com/reelplayer/reel/sharedutil"
	log "github.com/sirupsen/logrus"
)

type LoadMode int

const (
	// Replace the playlist and start playing the first item.
	Replace LoadMode = iota
	// Append to the playlist.
	Append
	// Append to the playlist and start playing if idle.
	AppendPlay
)

// PlaybackManager issues playback commands to the engine and turns
// dispatched status changes into higher level callbacks.
// Callbacks run on the UI thread.
type PlaybackManager struct {
	engine     *engine.Engine
	state      *SharedState
	dispatcher *Dispatcher

	lastStatus        PlaybackStatus
	callbacksDisabled bool

	onMediaChange    []func(PlaybackStatus)
	onPlayTimeUpdate []func(float64, float64)
	onVolumeChange   []func(int)
	onSeek           []func()
	onPaused         []func()
	onStopped        []func()
	onPlaying        []func()
	onLoopChange     []func(bool)
}

func NewPlaybackManager(e *engine.Engine, state *SharedState, d *Dispatcher) *PlaybackManager {
	pm := &PlaybackManager{
		engine:     e,
		state:      state,
		dispatcher: d,
		lastStatus: state.Status(),
	}
	d.OnStatusChange(pm.handleStatusChange)
	d.OnSeek(func(st PlaybackStatus) {
		pm.invokeNoArgCallbacks(pm.onSeek)
		pm.invokeTimeCallbacks(st)
	})
	return pm
}

func (p *PlaybackManager) handleStatusChange(st PlaybackStatus) {
	prev := p.lastStatus
	p.lastStatus = st
	if p.callbacksDisabled {
		return
	}

	if st.Path != prev.Path || st.Title != prev.Title {
		for _, cb := range p.onMediaChange {
			cb(st)
		}
	}
	if st.TimePos != prev.TimePos || st.Duration != prev.Duration {
		p.invokeTimeCallbacks(st)
	}
	if int(st.Volume) != int(prev.Volume) {
		for _, cb := range p.onVolumeChange {
			cb(int(st.Volume))
		}
	}

	wasActive, active := prev.Loaded && !prev.Idle, st.Loaded && !st.Idle
	switch {
	case wasActive && !active:
		p.invokeNoArgCallbacks(p.onStopped)
	case active && st.Paused && (!wasActive || !prev.Paused):
		p.invokeNoArgCallbacks(p.onPaused)
	case active && !st.Paused && (!wasActive || prev.Paused):
		p.invokeNoArgCallbacks(p.onPlaying)
	}
}

func (p *PlaybackManager) invokeNoArgCallbacks(cbs []func()) {
	if p.callbacksDisabled {
		return
	}
	for _, cb := range cbs {
		cb()
	}
}

func (p *PlaybackManager) invokeTimeCallbacks(st PlaybackStatus) {
	if p.callbacksDisabled {
		return
	}
	for _, cb := range p.onPlayTimeUpdate {
		cb(st.TimePos, st.Duration)
	}
}

// Should only be called before quitting.
// Disables playback state callbacks being sent
func (p *PlaybackManager) DisableCallbacks() {
	p.callbacksDisabled = true
}

func (p *PlaybackManager) Dispatcher() *Dispatcher {
	return p.dispatcher
}

func (p *PlaybackManager) Status() PlaybackStatus {
	return p.state.Status()
}

func (p *PlaybackManager) Playlist() []PlaylistEntry {
	return p.state.Playlist()
}

// NowPlaying returns the current playlist entry, if any.
func (p *PlaybackManager) NowPlaying() (PlaylistEntry, bool) {
	for _, e := range p.state.Playlist() {
		if e.Current {
			return e, true
		}
	}
	return PlaylistEntry{}, false
}

// OnMediaChange registers a callback for when the loaded file or its title changes.
func (p *PlaybackManager) OnMediaChange(cb func(PlaybackStatus)) {
	p.onMediaChange = append(p.onMediaChange, cb)
}

// OnPlayTimeUpdate registers a callback receiving (time-pos, duration) in seconds.
func (p *PlaybackManager) OnPlayTimeUpdate(cb func(float64, float64)) {
	p.onPlayTimeUpdate = append(p.onPlayTimeUpdate, cb)
}

func (p *PlaybackManager) OnVolumeChange(cb func(int)) {
	p.onVolumeChange = append(p.onVolumeChange, cb)
}

func (p *PlaybackManager) OnSeek(cb func()) {
	p.onSeek = append(p.onSeek, cb)
}

func (p *PlaybackManager) OnPaused(cb func()) {
	p.onPaused = append(p.onPaused, cb)
}

func (p *PlaybackManager) OnStopped(cb func()) {
	p.onStopped = append(p.onStopped, cb)
}

func (p *PlaybackManager) OnPlaying(cb func()) {
	p.onPlaying = append(p.onPlaying, cb)
}

func (p *PlaybackManager) OnLoopChange(cb func(bool)) {
	p.onLoopChange = append(p.onLoopChange, cb)
}

// Load adds media locators to the playlist.
func (p *PlaybackManager) Load(uris []string, mode LoadMode) error {
	for i, uri := range uris {
		flag := "append"
		switch {
		case mode == Replace && i == 0:
			flag = "replace"
		case mode == AppendPlay:
			flag = "append-play"
		}
		if err := p.engine.Command("loadfile", uri, flag); err != nil {
			return fmt.Errorf("failed to load %s: %w", uri, err)
		}
	}
	return nil
}

func (p *PlaybackManager) PlayPause() error {
	st := p.state.Status()
	if st.Idle && !st.Loaded && len(p.state.Playlist()) > 0 {
		return p.PlayIndex(0)
	}
	return p.engine.Command("cycle", "pause")
}

func (p *PlaybackManager) Play() error {
	st := p.state.Status()
	if st.Idle && !st.Loaded && len(p.state.Playlist()) > 0 {
		return p.PlayIndex(0)
	}
	return p.engine.SetFlag("pause", false)
}

func (p *PlaybackManager) Pause() error {
	return p.engine.SetFlag("pause", true)
}

// Stop stops playback, keeping the playlist.
func (p *PlaybackManager) Stop() error {
	return p.engine.Command("stop", "keep-playlist")
}

// Next and Previous fail silently when there is no next/previous item.
func (p *PlaybackManager) Next() {
	if err := p.engine.Command("playlist-next"); err != nil {
		log.Debugf("playlist-next: %v", err)
	}
}

func (p *PlaybackManager) Previous() {
	if err := p.engine.Command("playlist-prev"); err != nil {
		log.Debugf("playlist-prev: %v", err)
	}
}

func (p *PlaybackManager) PlayIndex(idx int) error {
	return p.engine.Command("playlist-play-index", strconv.Itoa(idx))
}

func (p *PlaybackManager) SeekSeconds(secs float64) error {
	return p.engine.Command("seek", strconv.FormatFloat(secs, 'f', 3, 64), "absolute")
}

func (p *PlaybackManager) SeekBySeconds(delta float64) error {
	return p.engine.Command("seek", strconv.FormatFloat(delta, 'f', 3, 64), "relative")
}

// SeekFraction seeks to a fraction [0, 1] of the duration.
func (p *PlaybackManager) SeekFraction(frac float64) error {
	return p.engine.Command("seek", strconv.FormatFloat(frac*100, 'f', 3, 64), "absolute-percent")
}

func (p *PlaybackManager) NextChapter() error {
	return p.engine.Command("add", "chapter", "1")
}

func (p *PlaybackManager) PreviousChapter() error {
	return p.engine.Command("add", "chapter", "-1")
}

func (p *PlaybackManager) SetVolume(vol int) error {
	return p.engine.SetDouble("volume", float64(clamp(vol, 0, 100)))
}

func (p *PlaybackManager) Volume() int {
	return int(p.state.Status().Volume)
}

func (p *PlaybackManager) ToggleMute() error {
	return p.engine.Command("cycle", "mute")
}

func (p *PlaybackManager) SetFullscreen(fs bool) error {
	return p.engine.SetFlag("fullscreen", fs)
}

func (p *PlaybackManager) ToggleFullscreen() error {
	return p.engine.Command("cycle", "fullscreen")
}

func (p *PlaybackManager) SetLoopPlaylist(loop bool) error {
	if err := p.applyLoopPlaylist(loop); err != nil {
		return err
	}
	for _, cb := range p.onLoopChange {
		cb(loop)
	}
	return nil
}

// applyLoopPlaylist sets the engine property without notifying callbacks,
// so it is safe to call off the UI thread.
func (p *PlaybackManager) applyLoopPlaylist(loop bool) error {
	v := "no"
	if loop {
		v = "inf"
	}
	return p.engine.SetString("loop-playlist", v)
}

func (p *PlaybackManager) RemoveIndex(idx int) error {
	return p.engine.Command("playlist-remove", strconv.Itoa(idx))
}

// ClearPlaylist stops playback and empties the playlist.
func (p *PlaybackManager) ClearPlaylist() error {
	return p.engine.Command("stop")
}

func (p *PlaybackManager) Shuffle() error {
	return p.engine.Command("playlist-shuffle")
}

// MoveItems moves the playlist items at idxToMove so they end up,
// in the given order, before the item currently at insertIdx.
func (p *PlaybackManager) MoveItems(idxToMove []int, insertIdx int) error {
	current := p.state.Playlist()
	for _, i := range idxToMove {
		if i < 0 || i >= len(current) {
			return fmt.Errorf("playlist index %d out of range", i)
		}
	}
	target := sharedutil.ReorderItems(current, idxToMove, insertIdx)
	sameEntry := func(a, b PlaylistEntry) bool { return a.ID == b.ID }
	for _, m := range sharedutil.MovesToReorder(current, target, sameEntry) {
		if err := p.engine.Command("playlist-move", strconv.Itoa(m.From), strconv.Itoa(m.To)); err != nil {
			return err
		}
	}
	return nil
}

// ScreenshotToFile writes the current video frame without subtitles to path.
func (p *PlaybackManager) ScreenshotToFile(path string) error {
	return p.engine.Command("screenshot-to-file", path, "video")
}

// RunCommand runs a bound command string, eg from an input binding.
func (p *PlaybackManager) RunCommand(cmd string) error {
	return p.engine.CommandString(cmd)
}
