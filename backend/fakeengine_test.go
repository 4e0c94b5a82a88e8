package backend

import (
	"errors"
	"sync"
	"time"

	"github.com/reelplayer/reel/backend/engine"
)

// recordingHandle is an engine.Handle that records commands and
// stores properties in a map.
type recordingHandle struct {
	mu       sync.Mutex
	commands [][]string
	props    map[string]any
	failCmds map[string]bool
}

func (h *recordingHandle) SetOptionString(string, string) error { return nil }
func (h *recordingHandle) LoadConfigFile(string) error           { return nil }
func (h *recordingHandle) Initialize() error                     { return nil }
func (h *recordingHandle) RequestLogMessages(string) error       { return nil }
func (h *recordingHandle) TerminateDestroy()                     {}

func (h *recordingHandle) ObserveProperty(uint64, string, engine.Format) error { return nil }

func (h *recordingHandle) Command(cmd []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failCmds[cmd[0]] {
		return errors.New("error running command")
	}
	h.commands = append(h.commands, cmd)
	return nil
}

func (h *recordingHandle) GetProperty(name string, _ engine.Format) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.props[name]; ok {
		return v, nil
	}
	return nil, errors.New("property unavailable")
}

func (h *recordingHandle) SetProperty(name string, _ engine.Format, v any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.props[name] = v
	return nil
}

func (h *recordingHandle) SetPropertyString(name, v string) error {
	return h.SetProperty(name, engine.FormatString, v)
}

func (h *recordingHandle) WaitEvent(timeout time.Duration) engine.Event {
	time.Sleep(timeout)
	return engine.Event{Kind: engine.EventNone}
}

func (h *recordingHandle) recorded() [][]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][]string(nil), h.commands...)
}

func newTestEngine() (*engine.Engine, *recordingHandle) {
	h := &recordingHandle{props: map[string]any{}, failCmds: map[string]bool{}}
	e := engine.New(func() (engine.Handle, error) { return h, nil })
	if _, err := e.Init(engine.Options{}); err != nil {
		panic(err)
	}
	return e, h
}
