package engine

import "fmt"

type EventKind int

const (
	EventNone EventKind = iota
	EventShutdown
	EventLogMessage
	EventStartFile
	EventEndFile
	EventFileLoaded
	EventIdle
	EventClientMessage
	EventVideoReconfig
	EventAudioReconfig
	EventSeek
	EventPlaybackRestart
	EventPropertyChange
)

var eventNames = map[EventKind]string{
	EventNone:            "none",
	EventShutdown:        "shutdown",
	EventLogMessage:      "log-message",
	EventStartFile:       "start-file",
	EventEndFile:         "end-file",
	EventFileLoaded:      "file-loaded",
	EventIdle:            "idle",
	EventClientMessage:   "client-message",
	EventVideoReconfig:   "video-reconfig",
	EventAudioReconfig:   "audio-reconfig",
	EventSeek:            "seek",
	EventPlaybackRestart: "playback-restart",
	EventPropertyChange:  "property-change",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// EndReason is why the engine stopped playing a file.
type EndReason int

const (
	EndReasonEOF EndReason = iota
	EndReasonStop
	EndReasonQuit
	EndReasonError
	EndReasonRedirect
)

func (r EndReason) String() string {
	switch r {
	case EndReasonEOF:
		return "eof"
	case EndReasonStop:
		return "stop"
	case EndReasonQuit:
		return "quit"
	case EndReasonError:
		return "error"
	case EndReasonRedirect:
		return "redirect"
	}
	return "unknown"
}

type LogMessage struct {
	Prefix string
	Level  string
	Text   string
}

type EndFile struct {
	Reason EndReason
	// Set when Reason is EndReasonError.
	Err error
}

type PropertyChange struct {
	Name   string
	Format Format
	// nil if the property is currently unavailable
	Value any
}

// An Event received from the engine. At most one of the
// payload pointers is set, depending on Kind.
type Event struct {
	Kind          EventKind
	ReplyUserdata uint64

	Log      *LogMessage
	EndFile  *EndFile
	Property *PropertyChange
	// Arguments of a client message ("script-message" command).
	Args []string
}
