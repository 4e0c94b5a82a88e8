package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFactory struct {
	mu      sync.Mutex
	handles []*fakeHandle
	prepare func(*fakeHandle)
}

func (f *fakeFactory) New() (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := newFakeHandle()
	if f.prepare != nil {
		f.prepare(h)
	}
	f.handles = append(f.handles, h)
	return h, nil
}

func (f *fakeFactory) last() *fakeHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handles[len(f.handles)-1]
}

func TestInit(t *testing.T) {
	ff := &fakeFactory{prepare: func(h *fakeHandle) { h.rejectOpts["nope"] = true }}
	e := New(ff.New)
	e.Observe("pause", FormatFlag)

	failed, err := e.Init(Options{
		ClientName:    "reel",
		ConfigFile:    "/tmp/mpv.conf",
		InputConfFile: "/tmp/input.conf",
		ExtraOptions:  "--nope --hwdec=auto",
		Volume:        80,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	h := ff.last()
	assert.True(t, h.initialized)
	assert.Equal(t, "auto", h.options["hwdec"])
	assert.Equal(t, "/tmp/input.conf", h.options["input-conf"])
	assert.Equal(t, "/tmp/mpv.conf", h.options["include"])
	assert.Equal(t, "80", h.options["volume"])
	assert.Equal(t, []string{"pause"}, h.observed)

	_, err = e.Init(Options{})
	assert.Error(t, err, "double init")
}

func TestInitFailure(t *testing.T) {
	ff := &fakeFactory{prepare: func(h *fakeHandle) { h.initErr = errors.New("no vo") }}
	e := New(ff.New)
	_, err := e.Init(Options{})
	require.Error(t, err)
	assert.True(t, ff.last().isDestroyed())
	assert.ErrorIs(t, e.Command("stop"), ErrUninitialized)
}

func TestDrain(t *testing.T) {
	h := newFakeHandle()
	h.events <- Event{Kind: EventSeek}
	h.events <- Event{Kind: EventPlaybackRestart}
	h.events <- Event{Kind: EventShutdown}
	h.events <- Event{Kind: EventIdle}

	batch := Drain(h, Event{Kind: EventStartFile})
	kinds := make([]EventKind, 0, len(batch))
	for _, ev := range batch {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []EventKind{EventStartFile, EventSeek, EventPlaybackRestart, EventShutdown}, kinds)
}

func TestEventLoopDeliversBatches(t *testing.T) {
	ff := &fakeFactory{}
	e := New(ff.New)
	_, err := e.Init(Options{})
	require.NoError(t, err)

	got := make(chan []Event, 4)
	e.Start(func(b []Event) { got <- b })
	defer e.Destroy()

	ff.last().events <- Event{Kind: EventFileLoaded}
	select {
	case b := <-got:
		require.NotEmpty(t, b)
		assert.Equal(t, EventFileLoaded, b[0].Kind)
	case <-time.After(3 * time.Second):
		t.Fatal("no batch delivered")
	}
}

func TestReset(t *testing.T) {
	ff := &fakeFactory{}
	e := New(ff.New)
	_, err := e.Init(Options{})
	require.NoError(t, err)
	first := ff.last()

	got := make(chan []Event, 4)
	e.Start(func(b []Event) { got <- b })
	defer e.Destroy()

	_, err = e.Reset(context.Background(), Options{ExtraOptions: "--mute"})
	require.NoError(t, err)
	assert.True(t, first.isDestroyed())

	second := ff.last()
	assert.NotSame(t, first, second)
	assert.Equal(t, "yes", second.options["mute"])

	// the loop resumed and now waits on the new handle
	second.events <- Event{Kind: EventIdle}
	select {
	case b := <-got:
		assert.Equal(t, EventIdle, b[0].Kind)
	case <-time.After(3 * time.Second):
		t.Fatal("loop did not resume after reset")
	}
}

func TestResetTimeout(t *testing.T) {
	ff := &fakeFactory{}
	e := New(ff.New)
	e.SetResetTimeout(50 * time.Millisecond)
	_, err := e.Init(Options{})
	require.NoError(t, err)

	block := make(chan struct{})
	e.Start(func([]Event) { <-block })
	defer func() {
		close(block)
		e.Destroy()
	}()

	// keep the loop busy inside the sink
	ff.last().events <- Event{Kind: EventSeek}
	time.Sleep(20 * time.Millisecond)

	_, err = e.Reset(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrResetTimeout)
	assert.False(t, ff.last().isDestroyed())
}

func TestCommandString(t *testing.T) {
	ff := &fakeFactory{}
	e := New(ff.New)
	_, err := e.Init(Options{})
	require.NoError(t, err)

	require.NoError(t, e.CommandString(`loadfile "/tmp/a b.mkv" append`))
	assert.Equal(t, [][]string{{"loadfile", "/tmp/a b.mkv", "append"}}, ff.last().commands)

	require.NoError(t, e.SetFlag("pause", true))
	paused, err := e.GetFlag("pause")
	require.NoError(t, err)
	assert.True(t, paused)

	_, err = e.GetDouble("duration")
	assert.Error(t, err)
}
