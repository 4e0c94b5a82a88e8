package backend

import (
	"errors"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

const (
	dbusTrackIDPrefix = "/org/reelplayer/Reel/Track/"
	noTrackObjectPath = "/org/mpris/MediaPlayer2/TrackList/NoTrack"
)

var (
	_ types.OrgMprisMediaPlayer2Adapter                 = (*MPRISHandler)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapter           = (*MPRISHandler)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapterLoopStatus = (*MPRISHandler)(nil)
)

var (
	errNotSupported = errors.New("not supported")
)

// mprisPlayer is the part of the PlaybackManager the MPRIS handler drives.
type mprisPlayer interface {
	Status() PlaybackStatus
	NowPlaying() (PlaylistEntry, bool)
	Load(uris []string, mode LoadMode) error
	Play() error
	Pause() error
	PlayPause() error
	Stop() error
	Next()
	Previous()
	SeekSeconds(float64) error
	Volume() int
	SetVolume(int) error
	SetLoopPlaylist(bool) error
}

type MPRISHandler struct {
	// Function called if the player is requested to quit through MPRIS.
	// Should *asynchronously* start shutdown and return immediately true if a shutdown will happen.
	OnQuit func() error

	// Function called if the player is requested to bring its UI to the front.
	OnRaise func() error

	// Returns the URL of the current frame thumbnail, if any.
	ArtURLLookup func() (string, error)

	connErr      error
	playerName   string
	curTrackPath string // empty for no track
	loop         bool
	pm           mprisPlayer
	s            *server.Server
	evt          *events.EventHandler
}

func NewMPRISHandler(playerName string, pm *PlaybackManager) *MPRISHandler {
	m := newMPRISHandler(playerName, pm)

	pm.OnSeek(func() {
		if m.connErr == nil {
			pos := secondsToMicroseconds(pm.Status().TimePos)
			m.evt.Player.OnSeek(pos)
		}
	})
	pm.OnMediaChange(func(PlaybackStatus) {
		m.updateTrackPath()
		if m.connErr == nil {
			m.evt.Player.OnTitle()
		}
	})
	pm.OnVolumeChange(func(vol int) {
		if m.connErr == nil {
			m.evt.Player.OnVolume()
		}
	})
	pm.OnLoopChange(func(loop bool) {
		m.loop = loop
	})
	emitPlayStatus := func() {
		if m.connErr == nil {
			m.evt.Player.OnPlayPause()
		}
	}
	pm.OnStopped(emitPlayStatus)
	pm.OnPlaying(emitPlayStatus)
	pm.OnPaused(emitPlayStatus)

	return m
}

func newMPRISHandler(playerName string, pm mprisPlayer) *MPRISHandler {
	m := &MPRISHandler{playerName: playerName, pm: pm, connErr: errors.New("not started")}
	m.s = server.NewServer(playerName, m, m)
	m.evt = events.NewEventHandler(m.s)
	return m
}

func (m *MPRISHandler) updateTrackPath() {
	if e, ok := m.pm.NowPlaying(); ok {
		m.curTrackPath = trackObjectPath(e)
	} else {
		m.curTrackPath = ""
	}
}

// Starts listening for MPRIS events.
func (m *MPRISHandler) Start() {
	m.connErr = nil
	go func() {
		// exits early with err if unable to establish D-Bus connection
		m.connErr = m.s.Listen()
	}()
}

// Stops listening for MPRIS events and releases any D-Bus resources.
func (m *MPRISHandler) Shutdown() {
	if m.connErr == nil {
		m.s.Stop()
		m.connErr = errors.New("stopped")
	}
}

// OrgMprisMediaPlayer2Adapter implementation

func (m *MPRISHandler) Identity() (string, error) {
	return m.playerName, nil
}

func (m *MPRISHandler) CanQuit() (bool, error) {
	return m.OnQuit != nil, nil
}

func (m *MPRISHandler) Quit() error {
	if m.OnQuit != nil {
		return m.OnQuit()
	}
	return errors.New("no quit handler added")
}

func (m *MPRISHandler) CanRaise() (bool, error) {
	return m.OnRaise != nil, nil
}

func (m *MPRISHandler) Raise() error {
	if m.OnRaise != nil {
		return m.OnRaise()
	}
	return errors.New("no raise handler added")
}

func (m *MPRISHandler) HasTrackList() (bool, error) {
	return false, nil
}

func (m *MPRISHandler) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https", "rtmp", "rtsp", "ytdl"}, nil
}

func (m *MPRISHandler) SupportedMimeTypes() ([]string, error) {
	return []string{"video/*", "audio/*", "application/x-mpegurl"}, nil
}

// OrgMprisMediaPlayer2PlayerAdapter implementation

func (m *MPRISHandler) Next() error {
	m.pm.Next()
	return nil
}

func (m *MPRISHandler) Previous() error {
	m.pm.Previous()
	return nil
}

func (m *MPRISHandler) Pause() error {
	return m.pm.Pause()
}

func (m *MPRISHandler) PlayPause() error {
	return m.pm.PlayPause()
}

func (m *MPRISHandler) Stop() error {
	return m.pm.Stop()
}

func (m *MPRISHandler) Play() error {
	return m.pm.Play()
}

func (m *MPRISHandler) Seek(offset types.Microseconds) error {
	// MPRIS seek command is relative to current position
	pos := m.pm.Status().TimePos + microsecondsToSeconds(offset)
	if pos < 0 {
		pos = 0
	}
	return m.pm.SeekSeconds(pos)
}

func (m *MPRISHandler) SetPosition(trackId string, position types.Microseconds) error {
	if m.curTrackPath != "" && m.curTrackPath == trackId {
		return m.pm.SeekSeconds(microsecondsToSeconds(position))
	}
	return nil
}

func (m *MPRISHandler) OpenUri(uri string) error {
	return m.pm.Load([]string{uri}, AppendPlay)
}

func (m *MPRISHandler) PlaybackStatus() (types.PlaybackStatus, error) {
	st := m.pm.Status()
	switch {
	case !st.Loaded || st.Idle:
		return types.PlaybackStatusStopped, nil
	case st.Paused:
		return types.PlaybackStatusPaused, nil
	}
	return types.PlaybackStatusPlaying, nil
}

func (m *MPRISHandler) LoopStatus() (types.LoopStatus, error) {
	if m.loop {
		return types.LoopStatusPlaylist, nil
	}
	return types.LoopStatusNone, nil
}

func (m *MPRISHandler) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusPlaylist:
		return m.pm.SetLoopPlaylist(true)
	case types.LoopStatusNone:
		return m.pm.SetLoopPlaylist(false)
	case types.LoopStatusTrack:
		return errNotSupported
	}
	return errors.New("unknown loop status")
}

func (m *MPRISHandler) Rate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) SetRate(float64) error {
	return errNotSupported
}

func (m *MPRISHandler) Metadata() (types.Metadata, error) {
	trackObjPath := noTrackObjectPath
	if m.curTrackPath != "" {
		trackObjPath = m.curTrackPath
	}
	st := m.pm.Status()
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(trackObjPath),
		Length:  secondsToMicroseconds(st.Duration),
	}
	if e, ok := m.pm.NowPlaying(); ok && st.Loaded {
		meta.Title = e.Name
		if st.Title != "" {
			meta.Title = st.Title
		}
		meta.Url = e.URI
	}
	if meta.Title != "" && m.ArtURLLookup != nil {
		if u, err := m.ArtURLLookup(); err == nil {
			meta.ArtUrl = u
		}
	}
	return meta, nil
}

func (m *MPRISHandler) Volume() (float64, error) {
	return float64(m.pm.Volume()) / 100, nil
}

func (m *MPRISHandler) SetVolume(v float64) error {
	return m.pm.SetVolume(int(v * 100))
}

func (m *MPRISHandler) Position() (int64, error) {
	return int64(secondsToMicroseconds(m.pm.Status().TimePos)), nil
}

func (m *MPRISHandler) MinimumRate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) MaximumRate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) CanGoNext() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) CanGoPrevious() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) CanPlay() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) CanPause() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) CanSeek() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) CanControl() (bool, error) {
	return true, nil
}

func microsecondsToSeconds(m types.Microseconds) float64 {
	return float64(m) / 1_000_000
}

func secondsToMicroseconds(s float64) types.Microseconds {
	return types.Microseconds(s * 1_000_000)
}

// D-Bus object path elements may only contain [A-Za-z0-9_].
func trackObjectPath(e PlaylistEntry) string {
	return dbusTrackIDPrefix + strings.ReplaceAll(e.ID.String(), "-", "_")
}
