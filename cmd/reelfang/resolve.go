package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramkansal/reelfang/internal/config"
	"github.com/ramkansal/reelfang/internal/output"
	"github.com/ramkansal/reelfang/internal/resolver"
	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/spf13/cobra"
)

var (
	jsonOut    bool
	outputPath string
	silent     bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>...",
	Short: "Resolve one or more shared video page addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func addResolveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&jsonOut, "json", "j", false, "print results as JSON")
	f.StringVarP(&outputPath, "output", "o", "", "save results to file (.json for JSON, anything else for text)")
	f.BoolVarP(&silent, "silent", "s", false, "print only the best link per address")
}

func runResolve(_ *cobra.Command, args []string) error {
	cfg, err := config.Resolver(v)
	if err != nil {
		return err
	}

	f, err := cfg.NewFetcher()
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := resolver.New(cfg, f, resolver.LogObserver(log))
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	interactive := !jsonOut && !silent
	if interactive {
		printBanner()
		fmt.Printf("\n  %s %d  %s %d  %s %s\n\n",
			clr("dim", "Links:"), len(args),
			clr("dim", "Channels:"), len(cfg.Channels),
			clr("dim", "Fetcher:"), string(cfg.FetcherMode),
		)
	}

	outcomes, summary, err := r.Batch(ctx, args, outputWriter())
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	for _, o := range outcomes {
		switch {
		case jsonOut:
		case silent:
			if o.Err == nil {
				fmt.Println(o.Result.Best())
			}
		default:
			printOutcome(o)
		}
	}

	if interactive {
		printSummary(summary)
	}
	if summary.Failed > 0 {
		return errFailures
	}
	return nil
}

// outputWriter combines the requested writers, or returns nil.
func outputWriter() plugin.OutputWriter {
	var ws []plugin.OutputWriter
	if jsonOut {
		ws = append(ws, output.NewJSONStreamWriter(os.Stdout))
	}
	if outputPath != "" {
		if strings.EqualFold(filepath.Ext(outputPath), ".json") {
			ws = append(ws, output.NewJSONWriter(outputPath))
		} else {
			ws = append(ws, output.NewTextWriter(outputPath, "v"+version))
		}
	}
	if len(ws) == 0 {
		return nil
	}
	return output.Multi(ws...)
}

func printOutcome(o *plugin.Outcome) {
	dur := clr("dim", "("+output.FmtDur(o.Duration)+")")
	if o.Err != nil {
		fmt.Printf("  %s %s %s\n", clr("red", "✗"), o.Address, dur)
		fmt.Printf("      %s %s\n", clr("dim", "└─ error:"), o.Err)
		return
	}

	fmt.Printf("  %s %s %s\n", clr("green", "●"), o.Address, dur)
	for _, f := range output.Fields(o.Result) {
		val := f.Value
		if f.Key == "hd" || f.Key == "sd" {
			val = clr("cyan", val)
		}
		fmt.Printf("      %s %s\n", clr("dim", "├─ "+f.Key+":"), val)
	}
}

func printSummary(s *plugin.Summary) {
	fmt.Println()
	fmt.Printf("  %s\n", strings.Repeat("─", 50))
	fmt.Printf("  %s Resolution complete\n", clr("green", "✓"))
	fmt.Printf("    Links:  %s resolved, %s failed in %s\n",
		clr("cyan", fmt.Sprintf("%d", s.Resolved)),
		clr("red", fmt.Sprintf("%d", s.Failed)),
		output.FmtDur(s.Duration),
	)
	if outputPath != "" {
		fmt.Printf("    Output: %s\n", clr("green", outputPath))
	}
	fmt.Println()
}
