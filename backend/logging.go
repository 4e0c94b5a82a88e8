package backend

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/reelplayer/reel/backend/filesystem"
	log "github.com/sirupsen/logrus"
)

const logsDir = "logs"

// SetupLogging sets the global log level and mirrors log output into a
// daily file under dir. An unknown level falls back to info.
// The returned closer releases the log file.
func SetupLogging(level, dir string) (io.Closer, error) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if dir == "" {
		return io.NopCloser(nil), nil
	}
	if err := filesystem.API().MkdirAll(dir, 0755); err != nil {
		return io.NopCloser(nil), fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return io.NopCloser(nil), fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}
