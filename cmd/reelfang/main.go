package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/ramkansal/reelfang/internal/config"
	"github.com/sirupsen/logrus"
)

var version = "1.0.0"

var (
	v       = config.New()
	log     = logrus.New()
	noColor bool
)

// errFailures makes the process exit non-zero without printing again.
var errFailures = errors.New("some addresses could not be resolved")

func main() {
	enableANSI()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailures) {
			fatal("%v", err)
		}
		os.Exit(1)
	}
}

// signalContext is cancelled on the first interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	registerSignals(sig)
	go func() {
		select {
		case <-sig:
			fmt.Fprintf(os.Stderr, "\n\n%s Interrupt received, stopping...\n", clr("yellow", "!"))
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sig)
		cancel()
	}
}

// ---------- Help / banner ----------

func printBanner() {
	fang := `
  ██████╗ ███████╗███████╗██╗     ███████╗ █████╗ ███╗   ██╗ ██████╗
  ██╔══██╗██╔════╝██╔════╝██║     ██╔════╝██╔══██╗████╗  ██║██╔════╝
  ██████╔╝█████╗  █████╗  ██║     █████╗  ███████║██╔██╗ ██║██║  ███╗
  ██╔══██╗██╔══╝  ██╔══╝  ██║     ██╔══╝  ██╔══██║██║╚██╗██║██║   ██║
  ██║  ██║███████╗███████╗███████╗██║     ██║  ██║██║ ╚████║╚██████╔╝
  ╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝`
	fmt.Println(clr("cyan", fang))
	fmt.Printf("  %s  %s\n", clr("dim", "Direct video links from shared pages"), clr("dim", "v"+version))
	fmt.Printf("  %s\n", clr("dim", strings.Repeat("─", 58)))
}

// ---------- Utilities ----------

func clr(color, text string) string {
	if noColor {
		return text
	}
	codes := map[string]string{
		"red":    "\033[31m",
		"green":  "\033[32m",
		"yellow": "\033[33m",
		"cyan":   "\033[36m",
		"dim":    "\033[2m",
		"bold":   "\033[1m",
		"reset":  "\033[0m",
	}
	c, ok := codes[color]
	if !ok {
		return text
	}
	return c + text + codes["reset"]
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\n  %s %s\n\n", clr("red", "ERROR:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}
