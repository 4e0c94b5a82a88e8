package keybind

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reelplayer/reel/backend/filesystem"
)

const InputConfFileName = "input.conf"

// WriteInputConf writes the input file handed to the engine into dir:
// the compiled-in defaults followed by the user file at userPath verbatim,
// so that the engine gives the user bindings priority and evaluates
// property expansions itself. Returns the path of the written file.
func WriteInputConf(dir, userPath string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(DefaultConfig)

	if userPath != "" {
		user, err := filesystem.API().ReadFile(userPath)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		fmt.Fprintf(&buf, "\n# %s\n", userPath)
		buf.Write(user)
		if len(user) > 0 && user[len(user)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	if err := filesystem.API().MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, InputConfFileName)
	if err := filesystem.API().WriteFile(path, buf.Bytes(), os.FileMode(0o644)); err != nil {
		return "", fmt.Errorf("failed to write input file: %w", err)
	}
	return path, nil
}
