//go:build windows

package main

import (
	"log"

	"golang.org/x/sys/windows"
)

// dpiAwarenessContextPerMonitorAwareV2 is DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2.
const dpiAwarenessContextPerMonitorAwareV2 = ^uintptr(3)

// enableDPIAwareness opts the process into per-monitor scaling before the
// first window is created. Failure leaves the system default in place.
func enableDPIAwareness() {
	proc := windows.NewLazySystemDLL("user32.dll").NewProc("SetProcessDpiAwarenessContext")
	if err := proc.Find(); err != nil {
		log.Printf("DPI: SetProcessDpiAwarenessContext unavailable: %v", err)
		return
	}
	if ret, _, err := proc.Call(dpiAwarenessContextPerMonitorAwareV2); ret == 0 {
		log.Printf("DPI: per-monitor awareness not set: %v", err)
	}
}
