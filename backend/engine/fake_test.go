package engine

import (
	"errors"
	"sync"
	"time"
)

type fakeHandle struct {
	mu          sync.Mutex
	options     map[string]string
	rejectOpts  map[string]bool
	initErr     error
	initialized bool
	destroyed   bool
	commands    [][]string
	props       map[string]any
	observed    []string
	events      chan Event
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{
		options:    make(map[string]string),
		rejectOpts: make(map[string]bool),
		props:      make(map[string]any),
		events:     make(chan Event, 64),
	}
}

func (f *fakeHandle) SetOptionString(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rejectOpts[name] {
		return errors.New("option not found")
	}
	f.options[name] = value
	return nil
}

func (f *fakeHandle) LoadConfigFile(path string) error {
	return f.SetOptionString("include", path)
}

func (f *fakeHandle) Initialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initErr != nil {
		return f.initErr
	}
	f.initialized = true
	return nil
}

func (f *fakeHandle) Command(cmd []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	return nil
}

func (f *fakeHandle) GetProperty(name string, _ Format) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.props[name]
	if !ok {
		return nil, errors.New("property unavailable")
	}
	return v, nil
}

func (f *fakeHandle) SetProperty(name string, _ Format, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[name] = value
	return nil
}

func (f *fakeHandle) SetPropertyString(name, value string) error {
	return f.SetProperty(name, FormatString, value)
}

func (f *fakeHandle) ObserveProperty(_ uint64, name string, _ Format) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observed = append(f.observed, name)
	return nil
}

func (f *fakeHandle) RequestLogMessages(string) error { return nil }

func (f *fakeHandle) WaitEvent(timeout time.Duration) Event {
	if timeout == 0 {
		select {
		case ev := <-f.events:
			return ev
		default:
			return Event{Kind: EventNone}
		}
	}
	select {
	case ev := <-f.events:
		return ev
	case <-time.After(timeout):
		return Event{Kind: EventNone}
	}
}

func (f *fakeHandle) TerminateDestroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
}

func (f *fakeHandle) isDestroyed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed
}
