package backend

import (
	"strings"
	"sync"
)

// PlaybackStatus is a snapshot of the playback flags and cached properties.
type PlaybackStatus struct {
	Paused     bool
	Loaded     bool
	NewFile    bool
	EndOfFile  bool
	Idle       bool
	Fullscreen bool
	Muted      bool

	TimePos     float64
	Duration    float64
	Volume      float64
	PlaylistPos int
	Chapter     int
	Chapters    int
	Title       string
	Path        string
}

// SharedState holds everything touched by both the engine event
// goroutine and the UI thread. All access goes through its methods.
type SharedState struct {
	mu       sync.Mutex
	status   PlaybackStatus
	log      strings.Builder
	playlist []PlaylistEntry
}

func NewSharedState() *SharedState {
	return &SharedState{status: PlaybackStatus{Paused: true, Idle: true, PlaylistPos: -1}}
}

func (s *SharedState) Status() PlaybackStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Update applies f to the status under the lock. f must not block.
func (s *SharedState) Update(f func(*PlaybackStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.status)
}

// AppendLog appends text to the log buffer and reports whether the
// buffer now ends with a complete line.
func (s *SharedState) AppendLog(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.WriteString(text)
	return strings.HasSuffix(text, "\n")
}

// TakeLog returns the complete lines in the log buffer and removes them,
// leaving any partial trailing line in place.
func (s *SharedState) TakeLog() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := s.log.String()
	i := strings.LastIndexByte(buf, '\n')
	if i < 0 {
		return ""
	}
	rest := buf[i+1:]
	s.log.Reset()
	s.log.WriteString(rest)
	return buf[:i+1]
}

func (s *SharedState) Playlist() []PlaylistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PlaylistEntry(nil), s.playlist...)
}

func (s *SharedState) setPlaylist(p []PlaylistEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist = p
}
