package ipc

import "fmt"

const (
	PingPath      = "/ping"
	EnqueuePath   = "/playlist/enqueue" // body: Enqueue
	PlayPath      = "/transport/play"
	PlayPausePath = "/transport/playpause"
	PausePath     = "/transport/pause"
	StopPath      = "/transport/stop"
	PreviousPath  = "/transport/previous"
	NextPath      = "/transport/next"
	SeekByPath    = "/transport/seek-by" // ?s=<+/- seconds>
	VolumePath    = "/volume"            // body: Volume
	ShowPath      = "/window/show"
	QuitPath      = "/window/quit"
)

type Response struct {
	Error string `json:"error"`
}

// Enqueue is the request body of EnqueuePath.
type Enqueue struct {
	Locators []string `json:"locators"`
	// Play starts the first enqueued locator immediately.
	Play bool `json:"play"`
}

type Volume struct {
	Volume int `json:"volume"`
}

func SeekBySecondsPath(secs float64) string {
	return fmt.Sprintf("%s?s=%0.2f", SeekByPath, secs)
}
