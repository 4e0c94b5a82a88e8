// Package libmpv implements engine.Handle on top of the libmpv client API.
package libmpv

/*
#include <mpv/client.h>
#include <stdlib.h>
#cgo LDFLAGS: -lmpv

static char* node_string(mpv_node* n) { return n->u.string; }
static int node_flag(mpv_node* n) { return n->u.flag; }
static int64_t node_int64(mpv_node* n) { return n->u.int64; }
static double node_double(mpv_node* n) { return n->u.double_; }
static mpv_node_list* node_list(mpv_node* n) { return n->u.list; }
static mpv_node* list_value(mpv_node_list* l, int i) { return &l->values[i]; }
static char* list_key(mpv_node_list* l, int i) { return l->keys[i]; }
static char* client_message_arg(mpv_event_client_message* m, int i) { return (char*)m->args[i]; }
*/
import "C"

import (
	"errors"
	"time"
	"unsafe"

	"github.com/reelplayer/reel/backend/engine"
	"github.com/supersonic-app/go-mpv"
)

var eventKinds = map[int]engine.EventKind{
	C.MPV_EVENT_NONE:             engine.EventNone,
	C.MPV_EVENT_SHUTDOWN:         engine.EventShutdown,
	C.MPV_EVENT_LOG_MESSAGE:      engine.EventLogMessage,
	C.MPV_EVENT_START_FILE:       engine.EventStartFile,
	C.MPV_EVENT_END_FILE:         engine.EventEndFile,
	C.MPV_EVENT_FILE_LOADED:      engine.EventFileLoaded,
	C.MPV_EVENT_IDLE:             engine.EventIdle,
	C.MPV_EVENT_CLIENT_MESSAGE:   engine.EventClientMessage,
	C.MPV_EVENT_VIDEO_RECONFIG:   engine.EventVideoReconfig,
	C.MPV_EVENT_AUDIO_RECONFIG:   engine.EventAudioReconfig,
	C.MPV_EVENT_SEEK:             engine.EventSeek,
	C.MPV_EVENT_PLAYBACK_RESTART: engine.EventPlaybackRestart,
	C.MPV_EVENT_PROPERTY_CHANGE:  engine.EventPropertyChange,
}

var endReasons = map[int]engine.EndReason{
	C.MPV_END_FILE_REASON_EOF:      engine.EndReasonEOF,
	C.MPV_END_FILE_REASON_STOP:     engine.EndReasonStop,
	C.MPV_END_FILE_REASON_QUIT:     engine.EndReasonQuit,
	C.MPV_END_FILE_REASON_ERROR:    engine.EndReasonError,
	C.MPV_END_FILE_REASON_REDIRECT: engine.EndReasonRedirect,
}

type handle struct {
	m *mpv.Mpv
}

var _ engine.Handle = (*handle)(nil)

// New creates an uninitialized libmpv handle. It satisfies engine.Factory.
func New() (engine.Handle, error) {
	m := mpv.Create()
	if m == nil {
		return nil, errors.New("failed to create libmpv handle")
	}
	return &handle{m: m}, nil
}

func mpvFormat(f engine.Format) mpv.Format {
	switch f {
	case engine.FormatString:
		return mpv.FORMAT_STRING
	case engine.FormatFlag:
		return mpv.FORMAT_FLAG
	case engine.FormatInt64:
		return mpv.FORMAT_INT64
	case engine.FormatDouble:
		return mpv.FORMAT_DOUBLE
	case engine.FormatNode:
		return mpv.FORMAT_NODE
	}
	return mpv.FORMAT_NONE
}

func (h *handle) SetOptionString(name, value string) error {
	return h.m.SetOptionString(name, value)
}

// LoadConfigFile parses a config file as if it were passed with --include.
func (h *handle) LoadConfigFile(path string) error {
	return h.m.SetOptionString("include", path)
}

func (h *handle) Initialize() error {
	return h.m.Initialize()
}

func (h *handle) Command(cmd []string) error {
	return h.m.Command(cmd)
}

func (h *handle) GetProperty(name string, format engine.Format) (any, error) {
	v, err := h.m.GetProperty(name, mpvFormat(format))
	if err != nil {
		return nil, err
	}
	if n, ok := v.(*mpv.Node); ok {
		return fromNode(n), nil
	}
	return v, nil
}

func (h *handle) SetProperty(name string, format engine.Format, value any) error {
	return h.m.SetProperty(name, mpvFormat(format), value)
}

func (h *handle) SetPropertyString(name, value string) error {
	return h.m.SetPropertyString(name, value)
}

func (h *handle) ObserveProperty(id uint64, name string, format engine.Format) error {
	return h.m.ObserveProperty(id, name, mpvFormat(format))
}

func (h *handle) RequestLogMessages(level string) error {
	return h.m.RequestLogMessages(level)
}

func (h *handle) WaitEvent(timeout time.Duration) engine.Event {
	e := h.m.WaitEvent(float32(timeout.Seconds()))
	kind, ok := eventKinds[int(e.Event_Id)]
	if !ok {
		// an event we don't handle; report it as a no-op
		return engine.Event{Kind: engine.EventNone}
	}
	ev := engine.Event{Kind: kind, ReplyUserdata: uint64(e.Reply_Userdata)}
	if e.Data == nil {
		return ev
	}

	switch kind {
	case engine.EventLogMessage:
		msg := (*C.mpv_event_log_message)(e.Data)
		ev.Log = &engine.LogMessage{
			Prefix: C.GoString(msg.prefix),
			Level:  C.GoString(msg.level),
			Text:   C.GoString(msg.text),
		}
	case engine.EventEndFile:
		ef := (*C.mpv_event_end_file)(e.Data)
		ev.EndFile = &engine.EndFile{Reason: endReasons[int(ef.reason)]}
		if ef.error < 0 {
			ev.EndFile.Err = errors.New(C.GoString(C.mpv_error_string(ef.error)))
		}
	case engine.EventPropertyChange:
		prop := (*C.mpv_event_property)(e.Data)
		ev.Property = &engine.PropertyChange{Name: C.GoString(prop.name)}
		ev.Property.Format, ev.Property.Value = propertyValue(prop.format, prop.data)
	case engine.EventClientMessage:
		cm := (*C.mpv_event_client_message)(e.Data)
		for i := 0; i < int(cm.num_args); i++ {
			ev.Args = append(ev.Args, C.GoString(C.client_message_arg(cm, C.int(i))))
		}
	}
	return ev
}

func (h *handle) TerminateDestroy() {
	h.m.TerminateDestroy()
}

func propertyValue(format C.mpv_format, data unsafe.Pointer) (engine.Format, any) {
	if data == nil {
		return engine.FormatNone, nil
	}
	switch format {
	case C.MPV_FORMAT_STRING:
		return engine.FormatString, C.GoString(*(**C.char)(data))
	case C.MPV_FORMAT_FLAG:
		return engine.FormatFlag, *(*C.int)(data) != 0
	case C.MPV_FORMAT_INT64:
		return engine.FormatInt64, int64(*(*C.int64_t)(data))
	case C.MPV_FORMAT_DOUBLE:
		return engine.FormatDouble, float64(*(*C.double)(data))
	case C.MPV_FORMAT_NODE:
		return engine.FormatNode, cNodeValue((*C.mpv_node)(data))
	}
	return engine.FormatNone, nil
}

func cNodeValue(n *C.mpv_node) any {
	switch n.format {
	case C.MPV_FORMAT_STRING:
		return C.GoString(C.node_string(n))
	case C.MPV_FORMAT_FLAG:
		return C.node_flag(n) != 0
	case C.MPV_FORMAT_INT64:
		return int64(C.node_int64(n))
	case C.MPV_FORMAT_DOUBLE:
		return float64(C.node_double(n))
	case C.MPV_FORMAT_NODE_ARRAY:
		l := C.node_list(n)
		arr := make([]any, 0, int(l.num))
		for i := 0; i < int(l.num); i++ {
			arr = append(arr, cNodeValue(C.list_value(l, C.int(i))))
		}
		return arr
	case C.MPV_FORMAT_NODE_MAP:
		l := C.node_list(n)
		m := make(map[string]any, int(l.num))
		for i := 0; i < int(l.num); i++ {
			m[C.GoString(C.list_key(l, C.int(i)))] = cNodeValue(C.list_value(l, C.int(i)))
		}
		return m
	}
	return nil
}

// fromNode converts a go-mpv node tree into plain Go values.
func fromNode(n *mpv.Node) any {
	if n == nil {
		return nil
	}
	switch d := n.Data.(type) {
	case []*mpv.Node:
		arr := make([]any, 0, len(d))
		for _, v := range d {
			arr = append(arr, fromNode(v))
		}
		return arr
	case map[string]*mpv.Node:
		m := make(map[string]any, len(d))
		for k, v := range d {
			m[k] = fromNode(v)
		}
		return m
	default:
		return d
	}
}
