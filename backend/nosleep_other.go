//go:build !windows

package backend

// SetSystemSleepDisabled is a no-op here; the engine's stop-screensaver
// option covers X11, Wayland and macOS.
func SetSystemSleepDisabled(bool) {}
