//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

func enableANSI() {
	// Unix terminals render ANSI colors natively.
}

// registerSignals routes interrupt and termination to ch.
func registerSignals(ch chan<- os.Signal) {
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
}
