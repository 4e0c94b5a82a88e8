package util

import (
	"fmt"
	"math"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// SecondsToTimeString formats a playback time as m:ss, or h:mm:ss
// for an hour or more.
func SecondsToTimeString(s float64) string {
	if s < 0 || math.IsNaN(s) {
		s = 0
	}
	sec := int(math.Round(s))
	hr := sec / 3600
	sec -= hr * 3600
	min := sec / 60
	sec -= min * 60

	if hr > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hr, min, sec)
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}

// WrapMessage word-wraps engine log text for display in a dialog.
// Trailing blank lines are dropped.
func WrapMessage(msg string, width int) string {
	return strings.TrimRight(wordwrap.String(msg, width), "\n ")
}
