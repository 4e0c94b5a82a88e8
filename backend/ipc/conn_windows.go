//go:build windows

package ipc

import (
	"crypto/sha1"
	"encoding/hex"
	"net"
	"os/user"
	"regexp"

	"github.com/Microsoft/go-winio"
)

var pipeName = `\\.\pipe\reel`

func init() {
	if user, err := user.Current(); err == nil {
		pipeName += regexp.MustCompile(`[^a-zA-Z0-9]+`).ReplaceAllString(user.Name, "")
	}
}

// SetSocketDir derives a pipe name unique to dir for portable mode.
func SetSocketDir(dir string) {
	sum := sha1.Sum([]byte(dir))
	pipeName = `\\.\pipe\reel-` + hex.EncodeToString(sum[:8])
}

func Dial() (net.Conn, error) {
	return winio.DialPipe(pipeName, nil)
}

func Listen() (net.Listener, error) {
	return winio.ListenPipe(pipeName, nil)
}

func DestroyConn() error {
	// Windows named pipes automatically clean up
	return nil
}
