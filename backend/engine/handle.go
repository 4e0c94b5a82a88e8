package engine

import "time"

// Format is the data format used to read or write an engine property.
type Format int

const (
	FormatNone Format = iota
	FormatString
	FormatFlag
	FormatInt64
	FormatDouble
	FormatNode
)

// Handle is the subset of the libmpv client API the application uses.
// Implementations must be safe for concurrent use, as libmpv itself is.
//
// Property values are plain Go values: string, bool, int64, float64,
// or for FormatNode a tree of []any, map[string]any and the scalar types.
type Handle interface {
	SetOptionString(name, value string) error
	LoadConfigFile(path string) error
	Initialize() error

	Command(cmd []string) error
	GetProperty(name string, format Format) (any, error)
	SetProperty(name string, format Format, value any) error
	SetPropertyString(name, value string) error
	ObserveProperty(id uint64, name string, format Format) error
	RequestLogMessages(level string) error

	// WaitEvent blocks for at most timeout and returns the next event,
	// or an event of kind EventNone if the queue stayed empty.
	WaitEvent(timeout time.Duration) Event

	TerminateDestroy()
}

// Factory creates a new, uninitialized Handle.
type Factory func() (Handle, error)
