package main

import (
	"os"

	"github.com/ramkansal/reelfang/internal/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "reelfang [flags] <url>...",
	Short: "Resolve shared video page links into direct media URLs",
	Long: `reelfang resolves a shared video page address into direct, downloadable
media links. It races retrieval attempts across address variants and relay
channels, then extracts the HD/SD links, thumbnail and title.`,
	Example: `  reelfang https://www.facebook.com/watch/?v=123456789
  reelfang resolve --json -o links.json <url> <url>
  reelfang serve --addr :8080`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runResolve(cmd, args)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to a YAML configuration file")
	pf.BoolVarP(&noColor, "no-color", "n", false, "disable colored output")

	pf.BoolP("verbose", "v", false, "log every retrieval attempt")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	lo.Must0(v.BindPFlag(config.LogLevel, pf.Lookup("log-level")))
	pf.Bool("log-json", false, "emit logs as JSON")
	lo.Must0(v.BindPFlag(config.LogJSON, pf.Lookup("log-json")))

	// Request
	pf.StringP("fetcher", "f", "http", "fetcher mode: http, browser")
	lo.Must0(v.BindPFlag(config.FetchMode, pf.Lookup("fetcher")))
	pf.DurationP("timeout", "t", 0, "per-attempt timeout (e.g. 15s)")
	lo.Must0(v.BindPFlag(config.FetchTimeout, pf.Lookup("timeout")))
	pf.String("user-agent", "", "custom user-agent string")
	lo.Must0(v.BindPFlag(config.FetchUserAgent, pf.Lookup("user-agent")))
	pf.String("proxy", "", "http/socks5 proxy to use")
	lo.Must0(v.BindPFlag(config.FetchProxy, pf.Lookup("proxy")))
	pf.StringArrayP("header", "H", nil, `custom header in "Key: Value" format (repeatable)`)
	lo.Must0(v.BindPFlag(config.FetchHeaders, pf.Lookup("header")))
	pf.IntP("concurrency", "c", 0, "number of addresses resolved at once")
	lo.Must0(v.BindPFlag(config.BatchParallelism, pf.Lookup("concurrency")))

	addResolveFlags(rootCmd)
	addResolveFlags(resolveCmd)
	rootCmd.AddCommand(resolveCmd, serveCmd, channelsCmd, versionCmd)
}

// setup reads the config file and configures the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(v, configFile); err != nil {
		return err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		v.Set(config.LogLevel, "debug")
	}
	log = config.NewLogger(v, os.Stderr)
	return nil
}
