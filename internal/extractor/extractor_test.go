package extractor

import (
	"strings"
	"testing"

	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(body string) *plugin.Document { return plugin.NewDocument(body) }

func TestStructuredStrategy(t *testing.T) {
	s := NewStructuredStrategy()

	t.Run("both tiers", func(t *testing.T) {
		c := s.Extract(doc(`{"sd_src":"https:\/\/video.fbcdn.net\/sd.mp4","hd_src":"https:\/\/video.fbcdn.net\/hd.mp4"}`))
		assert.Equal(t, "https://video.fbcdn.net/hd.mp4", c.HD)
		assert.Equal(t, "https://video.fbcdn.net/sd.mp4", c.SD)
	})

	t.Run("earlier alias wins per tier", func(t *testing.T) {
		body := `"playable_url_quality_hd":"https:\/\/v.fbcdn.net\/late-hd.mp4",` +
			`"browser_native_hd_url":"https:\/\/v.fbcdn.net\/native-hd.mp4",` +
			`"playable_url":"https:\/\/v.fbcdn.net\/late-sd.mp4"`
		c := s.Extract(doc(body))
		assert.Equal(t, "https://v.fbcdn.net/native-hd.mp4", c.HD)
		assert.Equal(t, "https://v.fbcdn.net/late-sd.mp4", c.SD)
	})

	t.Run("tiers are independent", func(t *testing.T) {
		c := s.Extract(doc(`"hd_src":"https:\/\/v.fbcdn.net\/hd.mp4","sd_src":null`))
		assert.Equal(t, "https://v.fbcdn.net/hd.mp4", c.HD)
		assert.Empty(t, c.SD)
	})

	t.Run("playable_url does not match the hd alias", func(t *testing.T) {
		c := s.Extract(doc(`"playable_url_quality_hd":"https:\/\/v.fbcdn.net\/hd.mp4"`))
		assert.Equal(t, "https://v.fbcdn.net/hd.mp4", c.HD)
		assert.Empty(t, c.SD)
	})

	t.Run("unusable value skipped", func(t *testing.T) {
		c := s.Extract(doc(`"hd_src":"not a url","browser_native_hd_url":"https:\/\/v.fbcdn.net\/b.mp4"`))
		assert.Equal(t, "https://v.fbcdn.net/b.mp4", c.HD)
	})

	t.Run("nothing", func(t *testing.T) {
		assert.True(t, s.Extract(doc("<html></html>")).Empty())
	})
}

func TestRedirectStrategy(t *testing.T) {
	s := NewRedirectStrategy()
	body := `<a href="/video_redirect/?src=https%3A%2F%2Fvideo.fbcdn.net%2Fv%2Fclip.mp4%3Foh%3D1%26oe%3D2&amp;source=media">play</a>`
	c := s.Extract(doc(body))
	want := "https://video.fbcdn.net/v/clip.mp4?oh=1&oe=2&source=media"
	assert.Equal(t, want, c.HD)
	assert.Equal(t, want, c.SD)

	assert.True(t, s.Extract(doc(`<a href="/video/?src=x">`)).Empty())
}

func TestDataBlobStrategy(t *testing.T) {
	s := NewDataBlobStrategy()

	t.Run("src key", func(t *testing.T) {
		body := `<div data-sigil="inlineVideo" data-store="{&quot;videoID&quot;:&quot;1&quot;,&quot;src&quot;:&quot;https:\/\/video.fbcdn.net\/blob.mp4?a=1&amp;b=2&quot;}"></div>`
		c := s.Extract(doc(body))
		assert.Equal(t, "https://video.fbcdn.net/blob.mp4?a=1&b=2", c.SD)
		assert.Empty(t, c.HD)
	})

	t.Run("hd key", func(t *testing.T) {
		body := `<div data-store='{"hd_src":"https://video.fbcdn.net/hd.mp4","videoURL":"https://video.fbcdn.net/sd.mp4"}'></div>`
		c := s.Extract(doc(body))
		assert.Equal(t, "https://video.fbcdn.net/hd.mp4", c.HD)
		assert.Equal(t, "https://video.fbcdn.net/sd.mp4", c.SD)
	})

	t.Run("skips blobs without a source", func(t *testing.T) {
		body := `<div data-store='{"nav":"x"}'></div><div data-store='not json'></div>` +
			`<div data-store='{"src":"https://video.fbcdn.net/second.mp4"}'></div>`
		c := s.Extract(doc(body))
		assert.Equal(t, "https://video.fbcdn.net/second.mp4", c.SD)
	})

	t.Run("no blob", func(t *testing.T) {
		assert.True(t, s.Extract(doc(`<div class="x"></div>`)).Empty())
	})
}

func TestOpenGraphStrategy(t *testing.T) {
	s := NewOpenGraphStrategy()

	body := `<head>
<meta property="og:video" content="https://video.fbcdn.net/og.mp4?x=1&amp;y=2">
<meta property="og:video:secure_url" content="https://video.fbcdn.net/secure.mp4">
</head>`
	c := s.Extract(doc(body))
	assert.Equal(t, "https://video.fbcdn.net/secure.mp4", c.SD)
	assert.Empty(t, c.HD, "open graph never yields HD")

	c = s.Extract(doc(`<meta content="https://video.fbcdn.net/og.mp4?x=1&amp;y=2" property="og:video">`))
	assert.Equal(t, "https://video.fbcdn.net/og.mp4?x=1&y=2", c.SD)

	c = s.Extract(doc(`<meta name="twitter:player:stream" content="https://video.fbcdn.net/tw.mp4">`))
	assert.Equal(t, "https://video.fbcdn.net/tw.mp4", c.SD)

	assert.True(t, s.Extract(doc(`<meta property="og:video" content="/relative.mp4">`)).Empty())
}

func TestMediaScanLongestMatch(t *testing.T) {
	s := NewMediaScanStrategy([]string{"fbcdn.net"}, []string{".mp4"})
	short := "https://video.xx.fbcdn.net/v/t42/clip.mp4?efg=abc"
	long := short + "&oh=00_AfTOKEN&oe=65F00000"

	body := `<script>var a="` + strings.ReplaceAll(short, "/", `\/`) + `";</script>` +
		`<video src="` + strings.ReplaceAll(long, "&", "&amp;") + `"></video>` +
		`<img src="https://scontent.fbcdn.net/x.jpg">` +
		`<a href="https://evil.example/clip.mp4?very=long&padding=aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa">`

	c := s.Extract(doc(body))
	assert.Equal(t, long, c.SD)
	assert.Empty(t, c.HD)

	assert.ElementsMatch(t, []string{short, long}, s.Candidates(body))
}

func TestMediaScanHostAndExtension(t *testing.T) {
	s := NewMediaScanStrategy([]string{".cdn.example.net"}, []string{".MP4", ".m3u8"})

	assert.Equal(t, []string{"https://video.cdn.example.net/a.m3u8"},
		s.Candidates(`x https://video.cdn.example.net/a.m3u8 y https://video.cdn.example.net/a.gif`))
	assert.Empty(t, s.Candidates(`https://cdn.example.net.evil.com/a.mp4`))
	assert.True(t, s.Extract(doc("no urls here")).Empty())
}

func TestMediaScanStopsAtEscapedQuotes(t *testing.T) {
	s := NewMediaScanStrategy([]string{"fbcdn.net"}, []string{".mp4"})
	want := "https://video.fbcdn.net/v/a.mp4?oh=1"

	tests := []struct {
		name string
		body string
	}{
		{
			name: "entity escaped attribute",
			body: `<div data-x="{&quot;u&quot;:&quot;https:\/\/video.fbcdn.net\/v\/a.mp4?oh=1&quot;,&quot;w&quot;:640}"></div>`,
		},
		{
			name: "numeric entity",
			body: `<div data-x="{&#34;u&#34;:&#34;https:\/\/video.fbcdn.net\/v\/a.mp4?oh=1&#34;,&#34;w&#34;:640}"></div>`,
		},
		{
			name: "unicode escaped quote",
			body: `<script>var j="{\u0022u\u0022:\u0022https:\/\/video.fbcdn.net\/v\/a.mp4?oh=1\u0022,\u0022w\u0022:640}";</script>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A clean copy of the same link sits next to the escaped one.
			body := tt.body + `<script>var u="https:\/\/video.fbcdn.net\/v\/a.mp4?oh=1";</script>`
			assert.Equal(t, []string{want}, s.Candidates(body))
			assert.Equal(t, want, s.Extract(doc(body)).SD)
		})
	}
}

func TestMediaScanRejectsMarkupInURL(t *testing.T) {
	s := NewMediaScanStrategy([]string{"fbcdn.net"}, []string{".mp4"})
	assert.Empty(t, s.Candidates(`https://video.fbcdn.net/v/a.mp4?q=%3Cb%3E`))
	assert.Empty(t, s.Candidates(`https://video.fbcdn.net/v/a.mp4?q=%22x`))
}

func TestPipelineOrderStructuredBeatsOpenGraph(t *testing.T) {
	body := `<html><head><meta property="og:video" content="https://video.fbcdn.net/og.mp4"></head>` +
		`<script>{"hd_src":"https:\/\/video.fbcdn.net\/structured.mp4"}</script></html>`

	c, name, ok := NewPipeline(DefaultOptions()).Run(doc(body))
	require.True(t, ok)
	assert.Equal(t, "structured", name)
	assert.Equal(t, "https://video.fbcdn.net/structured.mp4", c.HD)
	assert.Empty(t, c.SD)
}

func TestPipelineFallsThrough(t *testing.T) {
	p := NewPipeline(DefaultOptions())
	assert.Equal(t, []string{"structured", "redirect", "data_blob", "open_graph", "media_scan"}, p.Names())

	c, name, ok := p.Run(doc(`<meta property="og:video" content="https://video.fbcdn.net/og.mp4">`))
	require.True(t, ok)
	assert.Equal(t, "open_graph", name)
	assert.Equal(t, "https://video.fbcdn.net/og.mp4", c.SD)

	c, name, ok = p.Run(doc(`<p>https://video.fbcdn.net/scan.mp4</p>`))
	require.True(t, ok)
	assert.Equal(t, "media_scan", name)
	assert.Equal(t, "https://video.fbcdn.net/scan.mp4", c.SD)

	_, name, ok = p.Run(doc(`<p>nothing to see</p>`))
	assert.False(t, ok)
	assert.Empty(t, name)
}

type fixedStrategy struct {
	name string
	c    plugin.Candidate
}

func (f fixedStrategy) Name() string { return f.name }
func (f fixedStrategy) Extract(*plugin.Document) plugin.Candidate { return f.c }

func TestPipelineRegister(t *testing.T) {
	p := NewPipelineWith(fixedStrategy{name: "empty"})
	p.Register(fixedStrategy{name: "custom", c: plugin.Candidate{SD: "https://x.example/a.mp4"}})

	c, name, ok := p.Run(doc(""))
	require.True(t, ok)
	assert.Equal(t, "custom", name)
	assert.Equal(t, "https://x.example/a.mp4", c.SD)
}

func TestMetadataExtractor(t *testing.T) {
	e := NewMetadataExtractor()

	md := e.Extract(doc(`<html><head><title>Fallback | Site</title>
<meta property="og:title" content="  My   Clip ">
<meta property="og:image" content="https://scontent.fbcdn.net/thumb.jpg?a=1&amp;b=2">
</head></html>`))
	assert.Equal(t, "My Clip", md.Title)
	assert.Equal(t, "https://scontent.fbcdn.net/thumb.jpg?a=1&b=2", md.Thumbnail)

	md = e.Extract(doc(`<html><head><title>Only &amp; Title</title></head></html>`))
	assert.Equal(t, "Only & Title", md.Title)
	assert.Empty(t, md.Thumbnail)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "...", truncate("é", 1))
}
