//go:build windows

package backend

import (
	"sync/atomic"

	"golang.org/x/sys/windows"
)

const (
	esContinuous      uintptr = 0x80000000
	esSystemRequired  uintptr = 0x00000001
	esDisplayRequired uintptr = 0x00000002
)

var (
	sleepDisabled  atomic.Bool
	executionState = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadExecutionState")
)

// SetSystemSleepDisabled keeps the system and display awake while disable is true.
func SetSystemSleepDisabled(disable bool) {
	if old := sleepDisabled.Swap(disable); old == disable {
		return
	}
	state := esContinuous
	if disable {
		state |= esSystemRequired | esDisplayRequired
	}
	executionState.Call(state)
}
