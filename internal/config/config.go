// Package config loads resolver and server settings from defaults, an
// optional YAML file, REELFANG_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ramkansal/reelfang/internal/channel"
	"github.com/ramkansal/reelfang/internal/resolver"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "reelfang"

// EnvKeyReplacer normalizes configuration keys into environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Server holds the HTTP endpoint settings.
type Server struct {
	Addr           string
	RequestTimeout time.Duration
	Metrics        bool
}

// Defaults returns every key with its default value.
func Defaults() map[string]any {
	rc := resolver.DefaultConfig()
	return map[string]any{
		PlatformDomain:   rc.Platform.Domain,
		PlatformLiteHost: rc.Platform.LiteHost,
		PlatformFullHost: rc.Platform.FullHost,

		Channels: rc.Channels,

		FetchMode:             string(rc.FetcherMode),
		FetchUserAgent:        rc.UserAgent,
		FetchTimeout:          rc.AttemptTimeout,
		FetchMaxResponseSize:  rc.MaxResponseSize,
		FetchProxy:            "",
		FetchHeaders:          []string{},
		FetchDisableRedirects: false,

		ValidateMinBodyLength: rc.MinBodyLength,

		ExtractMediaHosts:      rc.MediaHosts,
		ExtractMediaExtensions: rc.MediaExtensions,

		BatchParallelism: rc.Parallelism,

		BrowserBin:         "",
		BrowserTimeout:     rc.BrowserTimeout,
		BrowserPageTimeout: rc.PageTimeout,

		ServerAddr:           ":8080",
		ServerRequestTimeout: 60 * time.Second,
		ServerMetrics:        true,

		LogLevel: "info",
		LogJSON:  false,
	}
}

// New returns a viper instance with defaults and environment bindings set.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}
	return v
}

// ReadFile merges the YAML file at path into v. When path is empty the
// standard locations are searched and a missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(EnvPrefix)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/reelfang")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Resolver builds a resolver configuration from v.
func Resolver(v *viper.Viper) (*resolver.Config, error) {
	cfg := resolver.DefaultConfig()

	cfg.Platform = channel.Platform{
		Domain:   v.GetString(PlatformDomain),
		LiteHost: v.GetString(PlatformLiteHost),
		FullHost: v.GetString(PlatformFullHost),
	}

	var chs []channel.Channel
	if err := v.UnmarshalKey(Channels, &chs); err != nil {
		return nil, fmt.Errorf("%s: %w", Channels, err)
	}
	cfg.Channels = chs

	cfg.FetcherMode = resolver.FetcherMode(strings.ToLower(v.GetString(FetchMode)))
	cfg.UserAgent = v.GetString(FetchUserAgent)
	cfg.AttemptTimeout = v.GetDuration(FetchTimeout)
	cfg.MaxResponseSize = v.GetInt(FetchMaxResponseSize)
	cfg.Proxy = v.GetString(FetchProxy)
	if h := v.GetStringSlice(FetchHeaders); len(h) > 0 {
		cfg.CustomHeaders = h
	}
	cfg.DisableRedirects = v.GetBool(FetchDisableRedirects)

	cfg.MinBodyLength = v.GetInt(ValidateMinBodyLength)
	cfg.MediaHosts = v.GetStringSlice(ExtractMediaHosts)
	cfg.MediaExtensions = v.GetStringSlice(ExtractMediaExtensions)

	cfg.Parallelism = v.GetInt(BatchParallelism)

	cfg.BrowserBin = v.GetString(BrowserBin)
	cfg.BrowserTimeout = v.GetDuration(BrowserTimeout)
	cfg.PageTimeout = v.GetDuration(BrowserPageTimeout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, c := range cfg.Channels {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// HTTPServer builds the HTTP endpoint settings from v.
func HTTPServer(v *viper.Viper) Server {
	return Server{
		Addr:           v.GetString(ServerAddr),
		RequestTimeout: v.GetDuration(ServerRequestTimeout),
		Metrics:        v.GetBool(ServerMetrics),
	}
}
