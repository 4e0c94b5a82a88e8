package backend

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/deluan/sanitize"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// PlaylistEntry mirrors one item of the engine's playlist.
type PlaylistEntry struct {
	ID      uuid.UUID
	Name    string
	URI     string
	Current bool
}

// playlistFromNode converts the engine's "playlist" property into entries,
// reusing IDs from old for items with the same URI in the same relative order.
func playlistFromNode(node any, old []PlaylistEntry) []PlaylistEntry {
	items, _ := node.([]any)

	prevIDs := make(map[string][]uuid.UUID, len(old))
	for _, e := range old {
		prevIDs[e.URI] = append(prevIDs[e.URI], e.ID)
	}

	entries := make([]PlaylistEntry, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		uri, _ := m["filename"].(string)
		title, _ := m["title"].(string)
		current, _ := m["current"].(bool)

		e := PlaylistEntry{URI: uri, Name: title, Current: current}
		if e.Name == "" {
			e.Name = DisplayName(uri)
		}
		if ids := prevIDs[uri]; len(ids) > 0 {
			e.ID = ids[0]
			prevIDs[uri] = ids[1:]
		} else {
			e.ID = uuid.New()
		}
		entries = append(entries, e)
	}
	return entries
}

// DisplayName returns a human readable name for a media locator:
// the base name of a file path or of a URL's path.
func DisplayName(uri string) string {
	if u, err := url.Parse(uri); err == nil && len(u.Scheme) > 1 && u.Scheme != "file" {
		if p := strings.TrimSuffix(u.Path, "/"); p != "" {
			if name, err := url.PathUnescape(path.Base(p)); err == nil {
				return name
			}
			return path.Base(p)
		}
		return u.Host
	}
	uri = strings.TrimPrefix(uri, "file://")
	return filepath.Base(uri)
}

// FilterPlaylist returns the indexes of entries whose name fuzzily
// matches query, ignoring case and accents. An empty query matches all.
func FilterPlaylist(entries []PlaylistEntry, query string) []int {
	q := sanitize.Accents(strings.ToLower(strings.TrimSpace(query)))
	idx := make([]int, 0, len(entries))
	for i, e := range entries {
		if q == "" || fuzzy.Match(q, sanitize.Accents(strings.ToLower(e.Name))) {
			idx = append(idx, i)
		}
	}
	return idx
}
