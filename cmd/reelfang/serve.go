package main

import (
	"github.com/ramkansal/reelfang/internal/config"
	"github.com/ramkansal/reelfang/internal/metrics"
	"github.com/ramkansal/reelfang/internal/resolver"
	"github.com/ramkansal/reelfang/internal/server"
	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolver over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":8080", "listen address")
	lo.Must0(v.BindPFlag(config.ServerAddr, f.Lookup("addr")))
	f.Duration("request-timeout", 0, "upper bound on one resolve request")
	lo.Must0(v.BindPFlag(config.ServerRequestTimeout, f.Lookup("request-timeout")))
	f.Bool("metrics", true, "expose Prometheus metrics on /metrics")
	lo.Must0(v.BindPFlag(config.ServerMetrics, f.Lookup("metrics")))
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Resolver(v)
	if err != nil {
		return err
	}
	sc := config.HTTPServer(v)

	f, err := cfg.NewFetcher()
	if err != nil {
		return err
	}
	defer f.Close()

	observers := []plugin.Observer{resolver.LogObserver(log)}
	opts := server.Options{Addr: sc.Addr, RequestTimeout: sc.RequestTimeout}
	if sc.Metrics {
		rec := metrics.NewRecorder(true)
		observers = append(observers, rec.Observe)
		opts.Metrics = rec.Handler()
	}

	r, err := resolver.New(cfg, f, observers...)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	log.WithFields(logrus.Fields{
		"channels": len(cfg.Channels),
		"fetcher":  string(cfg.FetcherMode),
		"metrics":  sc.Metrics,
	}).Info("reelfang " + version)

	return server.ListenAndServe(ctx, server.NewRouter(r, log, opts), opts, log)
}
