package ui

import (
	"testing"

	"github.com/reelplayer/reel/backend"
	"github.com/stretchr/testify/assert"
)

func TestStatusText(t *testing.T) {
	for _, tt := range []struct {
		name string
		st   backend.PlaybackStatus
		want string
	}{
		{"nothing loaded", backend.PlaybackStatus{Paused: true}, ""},
		{"idle", backend.PlaybackStatus{Loaded: true, Idle: true}, ""},
		{"playing", backend.PlaybackStatus{Loaded: true, Chapter: -1}, ""},
		{"paused", backend.PlaybackStatus{Loaded: true, Paused: true, Chapter: -1}, "Paused"},
		{"chapters", backend.PlaybackStatus{Loaded: true, Chapter: 1, Chapters: 4}, "Chapter 2 of 4"},
		{"single chapter", backend.PlaybackStatus{Loaded: true, Chapter: 0, Chapters: 1}, ""},
		{"paused and muted", backend.PlaybackStatus{Loaded: true, Paused: true, Muted: true, Chapter: -1}, "Paused · Muted"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusText(tt.st))
		})
	}
}
