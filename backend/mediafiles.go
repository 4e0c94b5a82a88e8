package backend

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/reelplayer/reel/backend/filesystem"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MediaExtensions lists file extensions picked up when a folder is opened.
var MediaExtensions = []string{
	".mkv", ".mp4", ".m4v", ".webm", ".avi", ".mov", ".wmv", ".flv", ".ogv", ".mpg", ".mpeg", ".ts", ".m2ts",
	".mp3", ".flac", ".ogg", ".opus", ".m4a", ".wav", ".aac", ".wma",
	".m3u", ".m3u8", ".pls",
}

func isMediaFile(name string) bool {
	return slices.Contains(MediaExtensions, strings.ToLower(filepath.Ext(name)))
}

// ExpandLocators replaces each folder in locators with the media files
// directly inside it, ordered by name for the user's reading order.
// Files, URLs and paths that cannot be read are passed through.
func ExpandLocators(locators []string) []string {
	var out []string
	for _, l := range locators {
		if strings.Contains(l, "://") {
			out = append(out, l)
			continue
		}
		if ok, _ := filesystem.API().IsDir(l); !ok {
			out = append(out, l)
			continue
		}
		infos, err := filesystem.API().ReadDir(l)
		if err != nil {
			continue
		}
		var names []string
		for _, fi := range infos {
			if !fi.IsDir() && isMediaFile(fi.Name()) {
				names = append(names, fi.Name())
			}
		}
		c := collate.New(language.Und, collate.Loose, collate.Numeric)
		c.SortStrings(names)
		for _, n := range names {
			out = append(out, filepath.Join(l, n))
		}
	}
	return out
}
