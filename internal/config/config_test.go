package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ramkansal/reelfang/internal/channel"
	"github.com/ramkansal/reelfang/internal/resolver"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchResolver(t *testing.T) {
	cfg, err := Resolver(New())
	require.NoError(t, err)
	assert.Equal(t, resolver.DefaultConfig(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("REELFANG_FETCH_TIMEOUT", "3s")
	t.Setenv("REELFANG_BATCH_PARALLELISM", "9")
	t.Setenv("REELFANG_FETCH_MODE", "BROWSER")
	t.Setenv("REELFANG_EXTRACT_MEDIA_HOSTS", "cdn.one.net cdn.two.net")
	t.Setenv("REELFANG_SERVER_ADDR", "127.0.0.1:9000")

	v := New()
	cfg, err := Resolver(v)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.AttemptTimeout)
	assert.Equal(t, 9, cfg.Parallelism)
	assert.Equal(t, resolver.FetcherBrowser, cfg.FetcherMode)
	assert.Equal(t, []string{"cdn.one.net", "cdn.two.net"}, cfg.MediaHosts)
	assert.Equal(t, "127.0.0.1:9000", HTTPServer(v).Addr)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelfang.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
platform:
  domain: example-platform.com
  lite_host: m
channels:
  - name: direct
    template: "{raw}"
  - name: mirror
    template: "https://mirror.example/get?u={url}"
fetch:
  timeout: 5s
  headers:
    - "Cookie: locale=en_US"
validate:
  min_body_length: 2048
server:
  metrics: false
`), 0o644))

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Resolver(v)
	require.NoError(t, err)

	assert.Equal(t, channel.Platform{Domain: "example-platform.com", LiteHost: "m", FullHost: "www"}, cfg.Platform)
	assert.Equal(t, []channel.Channel{
		{Name: "direct", Template: "{raw}"},
		{Name: "mirror", Template: "https://mirror.example/get?u={url}"},
	}, cfg.Channels)
	assert.Equal(t, 5*time.Second, cfg.AttemptTimeout)
	assert.Equal(t, []string{"Cookie: locale=en_US"}, cfg.CustomHeaders)
	assert.Equal(t, 2048, cfg.MinBodyLength)
	assert.False(t, HTTPServer(v).Metrics)
}

func TestReadFileMissing(t *testing.T) {
	v := New()
	assert.Error(t, ReadFile(v, filepath.Join(t.TempDir(), "nope.yaml")))

	t.Chdir(t.TempDir())
	assert.NoError(t, ReadFile(New(), ""))
}

func TestResolverRejectsBadChannels(t *testing.T) {
	v := New()
	v.Set(Channels, []map[string]any{{"name": "broken", "template": "no placeholder"}})
	_, err := Resolver(v)
	assert.Error(t, err)

	v = New()
	v.Set(Channels, []map[string]any{})
	_, err = Resolver(v)
	assert.ErrorIs(t, err, channel.ErrNoChannels)
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "fetch_max_response_size", EnvKeyReplacer.Replace(FetchMaxResponseSize))
}

func TestNewLogger(t *testing.T) {
	v := New()
	v.Set(LogLevel, "debug")
	v.Set(LogJSON, true)

	var buf bytes.Buffer
	log := NewLogger(v, &buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("channel", "direct").Debug("attempt")
	assert.Contains(t, buf.String(), `"channel":"direct"`)

	v.Set(LogLevel, "chatty")
	assert.Equal(t, logrus.InfoLevel, NewLogger(v, &buf).GetLevel())
}
