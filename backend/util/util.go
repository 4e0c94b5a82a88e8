package util

import (
	"io"
	"os"

	"github.com/reelplayer/reel/backend/filesystem"
)

// CopyFile copies srcPath to dstPath, replacing dstPath if it exists.
func CopyFile(srcPath, dstPath string) error {
	fin, err := filesystem.API().Open(srcPath)
	if err != nil {
		return err
	}
	defer fin.Close()

	fout, err := filesystem.API().OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fout, fin); err != nil {
		fout.Close()
		return err
	}
	return fout.Close()
}
