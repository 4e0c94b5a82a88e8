package ipc

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayback struct {
	enqueued []string
	play     bool
	calls    []string
	seekBy   float64
	volume   int
	failStop bool
}

func (f *fakePlayback) Enqueue(locators []string, play bool) error {
	f.enqueued = append(f.enqueued, locators...)
	f.play = play
	return nil
}
func (f *fakePlayback) Play() error      { f.calls = append(f.calls, "play"); return nil }
func (f *fakePlayback) PlayPause() error { f.calls = append(f.calls, "playpause"); return nil }
func (f *fakePlayback) Pause() error     { f.calls = append(f.calls, "pause"); return nil }
func (f *fakePlayback) Stop() error {
	if f.failStop {
		return errors.New("engine not running")
	}
	f.calls = append(f.calls, "stop")
	return nil
}
func (f *fakePlayback) Previous() { f.calls = append(f.calls, "previous") }
func (f *fakePlayback) Next()     { f.calls = append(f.calls, "next") }
func (f *fakePlayback) SeekBySeconds(s float64) error {
	f.seekBy = s
	return nil
}
func (f *fakePlayback) Volume() int           { return f.volume }
func (f *fakePlayback) SetVolume(v int) error { f.volume = v; return nil }

type fakeWindow struct{ shown bool }

func (f *fakeWindow) Show() { f.shown = true }
func (f *fakeWindow) Quit() {}

func newTestClient(t *testing.T, pb *fakePlayback, wd *fakeWindow) *Client {
	s := httptest.NewServer(NewServer(pb, wd).Handler)
	t.Cleanup(s.Close)
	addr := strings.TrimPrefix(s.URL, "http://")
	c, err := connect(func(ctx context.Context) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "tcp", addr)
	})
	require.NoError(t, err)
	return c
}

func TestEnqueue(t *testing.T) {
	pb := &fakePlayback{}
	c := newTestClient(t, pb, &fakeWindow{})

	require.NoError(t, c.Enqueue([]string{"/a.mkv", "https://example.com/b.mp4"}, true))
	assert.Equal(t, []string{"/a.mkv", "https://example.com/b.mp4"}, pb.enqueued)
	assert.True(t, pb.play)

	assert.Error(t, c.Enqueue(nil, false))
}

func TestTransport(t *testing.T) {
	pb := &fakePlayback{volume: 30}
	wd := &fakeWindow{}
	c := newTestClient(t, pb, wd)

	require.NoError(t, c.PlayPause())
	require.NoError(t, c.Next())
	require.NoError(t, c.Previous())
	require.NoError(t, c.Stop())
	assert.Equal(t, []string{"playpause", "next", "previous", "stop"}, pb.calls)

	require.NoError(t, c.SeekBy(-5))
	assert.Equal(t, -5.0, pb.seekBy)

	vol, err := c.Volume()
	require.NoError(t, err)
	assert.Equal(t, 30, vol)
	require.NoError(t, c.SetVolume(80))
	assert.Equal(t, 80, pb.volume)

	require.NoError(t, c.Show())
	assert.True(t, wd.shown)

	pb.failStop = true
	err = c.Stop()
	require.Error(t, err)
	assert.Equal(t, "engine not running", err.Error())
}
