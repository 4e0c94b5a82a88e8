package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrUninitialized = errors.New("engine not initialized")
	ErrResetTimeout  = errors.New("timed out waiting for engine event loop")
)

const (
	defaultWaitTimeout  = 1 * time.Second
	defaultResetTimeout = 5 * time.Second

	// upper bound on events delivered in one batch
	maxBatchSize = 256
)

// Options configures a newly created engine handle.
type Options struct {
	ClientName    string
	ConfigFile    string
	InputConfFile string
	ExtraOptions  string
	// Minimum level of engine log messages forwarded as events, eg "error".
	LogLevel string
	Volume   int
}

type observedProperty struct {
	name   string
	format Format
}

type resetRequest struct {
	parked chan struct{}
	resume chan struct{}
}

// Engine owns the engine handle and runs the event loop goroutine.
type Engine struct {
	newHandle Factory

	mu       sync.RWMutex
	h        Handle
	observed []observedProperty

	waitTimeout  time.Duration
	resetTimeout time.Duration

	resetReq chan *resetRequest
	runMu    sync.Mutex
	cancel   context.CancelFunc
	loopDone chan struct{}
}

func New(factory Factory) *Engine {
	return &Engine{
		newHandle:    factory,
		waitTimeout:  defaultWaitTimeout,
		resetTimeout: defaultResetTimeout,
		resetReq:     make(chan *resetRequest),
	}
}

// SetResetTimeout sets how long Reset waits for the event loop to park.
func (e *Engine) SetResetTimeout(d time.Duration) {
	e.resetTimeout = d
}

// Observe registers a property to observe on every handle this engine creates.
// Must be called before Init.
func (e *Engine) Observe(name string, format Format) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observed = append(e.observed, observedProperty{name: name, format: format})
}

// Init creates and initializes a new handle with the given options.
// Returns the number of extra options that failed to apply;
// those failures are not fatal.
func (e *Engine) Init(opts Options) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.h != nil {
		return 0, errors.New("engine already initialized")
	}

	h, err := e.newHandle()
	if err != nil {
		return 0, fmt.Errorf("failed to create engine handle: %w", err)
	}

	baseOptions := []Option{
		{Name: "config", Value: "yes"},
		{Name: "idle", Value: "yes"},
		{Name: "force-window", Value: "yes"},
		{Name: "keep-open", Value: "no"},
		{Name: "input-default-bindings", Value: "no"},
		{Name: "input-vo-keyboard", Value: "yes"},
		{Name: "osc", Value: "yes"},
		{Name: "terminal", Value: "no"},
		{Name: "audio-display", Value: "no"},
		{Name: "volume", Value: fmt.Sprint(opts.Volume)},
	}
	if opts.ClientName != "" {
		baseOptions = append(baseOptions,
			Option{Name: "audio-client-name", Value: opts.ClientName},
			Option{Name: "title", Value: opts.ClientName},
		)
	}
	if opts.InputConfFile != "" {
		baseOptions = append(baseOptions, Option{Name: "input-conf", Value: opts.InputConfFile})
	}
	for _, o := range baseOptions {
		if err := h.SetOptionString(o.Name, o.Value); err != nil {
			log.WithError(err).Warnf("failed to set engine option %s", o.Name)
		}
	}

	if opts.ConfigFile != "" {
		if err := h.LoadConfigFile(opts.ConfigFile); err != nil {
			log.WithError(err).Warnf("failed to load engine config file %s", opts.ConfigFile)
		}
	}
	failed := ApplyOptions(h, opts.ExtraOptions)

	if err := h.Initialize(); err != nil {
		h.TerminateDestroy()
		return failed, fmt.Errorf("failed to initialize engine: %w", err)
	}

	if opts.LogLevel != "" {
		if err := h.RequestLogMessages(opts.LogLevel); err != nil {
			log.WithError(err).Warn("failed to request engine log messages")
		}
	}
	for i, p := range e.observed {
		if err := h.ObserveProperty(uint64(i+1), p.name, p.format); err != nil {
			log.WithError(err).Warnf("failed to observe property %s", p.name)
		}
	}

	e.h = h
	return failed, nil
}

// Handle returns the current engine handle, or nil if there is none.
func (e *Engine) Handle() Handle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.h
}

// Start runs the event loop in a new goroutine. Each batch of events
// drained from the engine is passed to sink on the loop goroutine.
func (e *Engine) Start(sink func([]Event)) {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if e.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.loopDone = make(chan struct{})
	go e.eventLoop(ctx, sink)
}

func (e *Engine) running() bool {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	return e.cancel != nil
}

func (e *Engine) eventLoop(ctx context.Context, sink func([]Event)) {
	defer close(e.loopDone)
	shutdownSeen := false
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-e.resetReq:
			close(req.parked)
			select {
			case <-req.resume:
			case <-ctx.Done():
				return
			}
			shutdownSeen = false
			continue
		default:
		}

		h := e.Handle()
		if h == nil || shutdownSeen {
			// nothing to wait on until a reset or shutdown
			select {
			case <-ctx.Done():
				return
			case req := <-e.resetReq:
				close(req.parked)
				select {
				case <-req.resume:
				case <-ctx.Done():
					return
				}
				shutdownSeen = false
			}
			continue
		}

		ev := h.WaitEvent(e.waitTimeout)
		if ev.Kind == EventNone {
			continue
		}
		batch := Drain(h, ev)
		for _, ev := range batch {
			if ev.Kind == EventShutdown {
				shutdownSeen = true
			}
		}
		sink(batch)
	}
}

// Drain returns first followed by every event still queued in h,
// stopping at the first EventNone.
func Drain(h Handle, first Event) []Event {
	batch := []Event{first}
	if first.Kind == EventShutdown {
		return batch
	}
	for len(batch) < maxBatchSize {
		ev := h.WaitEvent(0)
		if ev.Kind == EventNone {
			break
		}
		batch = append(batch, ev)
		if ev.Kind == EventShutdown {
			break
		}
	}
	return batch
}

// Reset parks the event loop, destroys the current handle and creates
// a new one with opts. The loop resumes once the new handle exists,
// whether or not initialization succeeded.
func (e *Engine) Reset(ctx context.Context, opts Options) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, e.resetTimeout)
	defer cancel()

	if e.running() {
		req := &resetRequest{parked: make(chan struct{}), resume: make(chan struct{})}
		select {
		case e.resetReq <- req:
		case <-ctx.Done():
			return 0, ErrResetTimeout
		}
		// the loop now waits on resume no matter how we leave
		defer close(req.resume)
		select {
		case <-req.parked:
		case <-ctx.Done():
			return 0, ErrResetTimeout
		}
	}

	e.mu.Lock()
	old := e.h
	e.h = nil
	e.mu.Unlock()
	if old != nil {
		old.TerminateDestroy()
	}
	return e.Init(opts)
}

// Destroy stops the event loop and destroys the handle.
func (e *Engine) Destroy() {
	e.runMu.Lock()
	cancel, done := e.cancel, e.loopDone
	e.cancel = nil
	e.runMu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.h != nil {
		e.h.TerminateDestroy()
		e.h = nil
	}
}

func (e *Engine) handleOrErr() (Handle, error) {
	h := e.Handle()
	if h == nil {
		return nil, ErrUninitialized
	}
	return h, nil
}

// Command runs an engine command given as separate arguments.
func (e *Engine) Command(args ...string) error {
	h, err := e.handleOrErr()
	if err != nil {
		return err
	}
	return h.Command(args)
}

// CommandString runs an engine command written as in an input file.
func (e *Engine) CommandString(cmd string) error {
	args, err := SplitCommand(cmd)
	if err != nil {
		return err
	}
	return e.Command(args...)
}

func (e *Engine) SetFlag(name string, v bool) error {
	h, err := e.handleOrErr()
	if err != nil {
		return err
	}
	return h.SetProperty(name, FormatFlag, v)
}

func (e *Engine) SetInt64(name string, v int64) error {
	h, err := e.handleOrErr()
	if err != nil {
		return err
	}
	return h.SetProperty(name, FormatInt64, v)
}

func (e *Engine) SetDouble(name string, v float64) error {
	h, err := e.handleOrErr()
	if err != nil {
		return err
	}
	return h.SetProperty(name, FormatDouble, v)
}

func (e *Engine) SetString(name, v string) error {
	h, err := e.handleOrErr()
	if err != nil {
		return err
	}
	return h.SetPropertyString(name, v)
}

func (e *Engine) GetFlag(name string) (bool, error) {
	v, err := e.get(name, FormatFlag)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: unexpected type %T", name, v)
	}
	return b, nil
}

func (e *Engine) GetInt64(name string) (int64, error) {
	v, err := e.get(name, FormatInt64)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("property %s: unexpected type %T", name, v)
	}
	return i, nil
}

func (e *Engine) GetDouble(name string) (float64, error) {
	v, err := e.get(name, FormatDouble)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: unexpected type %T", name, v)
	}
	return f, nil
}

func (e *Engine) GetString(name string) (string, error) {
	v, err := e.get(name, FormatString)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("property %s: unexpected type %T", name, v)
	}
	return s, nil
}

// GetNode reads a property as a tree of []any, map[string]any and scalars.
func (e *Engine) GetNode(name string) (any, error) {
	return e.get(name, FormatNode)
}

func (e *Engine) get(name string, f Format) (any, error) {
	h, err := e.handleOrErr()
	if err != nil {
		return nil, err
	}
	return h.GetProperty(name, f)
}
