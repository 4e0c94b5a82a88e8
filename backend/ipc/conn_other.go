//go:build !windows

package ipc

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
)

// socketPath follows platform conventions:
//   - macOS: ~/Library/Caches/reel/reel.sock
//   - Linux/Unix: $XDG_RUNTIME_DIR/reel.sock
//
// with /tmp/reel-{uid}.sock as the fallback.
var socketPath = "/tmp/reel.sock"

func init() {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			socketPath = filepath.Join(home, "Library", "Caches", "reel", "reel.sock")
			return
		}
	} else if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		socketPath = filepath.Join(dir, "reel.sock")
		return
	}
	if user, err := user.Current(); err == nil {
		socketPath = fmt.Sprintf("/tmp/reel-%s.sock", user.Uid)
	}
}

// SetSocketDir places the socket in dir. Used in portable mode so that
// separate portable installs don't talk to each other.
func SetSocketDir(dir string) {
	socketPath = filepath.Join(dir, "reel.sock")
}

// Dial establishes a connection to the IPC socket.
func Dial() (net.Conn, error) {
	return net.Dial("unix", socketPath)
}

// Listen creates a Unix domain socket listener at the configured path.
// A stale socket file left by a crashed instance is removed first;
// callers must have already failed to Connect.
func Listen() (net.Listener, error) {
	if _, err := os.Stat(socketPath); err == nil {
		os.Remove(socketPath)
	}
	os.MkdirAll(filepath.Dir(socketPath), 0755)
	return net.Listen("unix", socketPath)
}

// DestroyConn removes the Unix socket file from the filesystem.
func DestroyConn() error {
	return os.Remove(socketPath)
}
