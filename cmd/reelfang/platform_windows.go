//go:build windows

package main

import (
	"os"
	"os/signal"

	"golang.org/x/sys/windows"
)

// enableANSI puts the attached console into virtual terminal mode so the
// color codes render. Redirected streams have no console mode and are skipped.
func enableANSI() {
	for _, std := range []uint32{windows.STD_OUTPUT_HANDLE, windows.STD_ERROR_HANDLE} {
		h, err := windows.GetStdHandle(std)
		if err != nil {
			continue
		}
		var mode uint32
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			continue
		}
		_ = windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
	}
}

func registerSignals(ch chan<- os.Signal) {
	// Ctrl+C and Ctrl+Break both arrive as os.Interrupt.
	signal.Notify(ch, os.Interrupt)
}
