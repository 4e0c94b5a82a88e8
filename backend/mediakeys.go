package backend

import (
	"errors"

	"github.com/godbus/dbus/v5"
	log "github.com/sirupsen/logrus"
)

const (
	mediaKeysBusName   = "org.gnome.SettingsDaemon.MediaKeys"
	mediaKeysPath      = "/org/gnome/SettingsDaemon/MediaKeys"
	mediaKeysInterface = "org.gnome.SettingsDaemon.MediaKeys"
)

// mediaKeyPlayer is the part of the PlaybackManager driven by media keys.
type mediaKeyPlayer interface {
	PlayPause() error
	Pause() error
	Play() error
	Stop() error
	Next()
	Previous()
	SeekBySeconds(float64) error
}

// MediaKeys grabs the desktop's media player keys through the
// GNOME settings daemon and forwards key presses to the player.
type MediaKeys struct {
	appName string
	pm      mediaKeyPlayer

	conn    *dbus.Conn
	signals chan *dbus.Signal
	done    chan struct{}
}

func NewMediaKeys(appName string, pm mediaKeyPlayer) *MediaKeys {
	return &MediaKeys{appName: appName, pm: pm}
}

// Start grabs the media keys and begins listening for presses.
func (m *MediaKeys) Start() error {
	if m.conn != nil {
		return errors.New("media keys already started")
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	obj := conn.Object(mediaKeysBusName, mediaKeysPath)
	if err := obj.Call(mediaKeysInterface+".GrabMediaPlayerKeys", 0, m.appName, uint32(0)).Err; err != nil {
		conn.Close()
		return err
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(mediaKeysPath),
		dbus.WithMatchInterface(mediaKeysInterface),
		dbus.WithMatchMember("MediaPlayerKeyPressed"),
	); err != nil {
		conn.Close()
		return err
	}
	m.conn = conn
	m.signals = make(chan *dbus.Signal, 8)
	m.done = make(chan struct{})
	conn.Signal(m.signals)
	go m.listen()
	return nil
}

func (m *MediaKeys) listen() {
	defer close(m.done)
	for sig := range m.signals {
		if len(sig.Body) < 2 {
			continue
		}
		app, _ := sig.Body[0].(string)
		key, _ := sig.Body[1].(string)
		if app != m.appName {
			continue
		}
		if err := handleMediaKey(m.pm, key); err != nil {
			log.Printf("media key %s: %v", key, err)
		}
	}
}

// Shutdown releases the grabbed keys and closes the bus connection.
func (m *MediaKeys) Shutdown() {
	if m.conn == nil {
		return
	}
	obj := m.conn.Object(mediaKeysBusName, mediaKeysPath)
	if err := obj.Call(mediaKeysInterface+".ReleaseMediaPlayerKeys", 0, m.appName).Err; err != nil {
		log.Printf("failed to release media keys: %v", err)
	}
	m.conn.RemoveSignal(m.signals)
	close(m.signals)
	<-m.done
	m.conn.Close()
	m.conn = nil
}

var errUnknownMediaKey = errors.New("unknown media key")

func handleMediaKey(pm mediaKeyPlayer, key string) error {
	switch key {
	case "Play":
		return pm.PlayPause()
	case "Pause":
		return pm.Pause()
	case "Stop":
		return pm.Stop()
	case "Next":
		pm.Next()
	case "Previous":
		pm.Previous()
	case "FastForward":
		return pm.SeekBySeconds(10)
	case "Rewind":
		return pm.SeekBySeconds(-10)
	default:
		return errUnknownMediaKey
	}
	return nil
}
