package channel

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Platform describes the target domain family and its serving conventions.
type Platform struct {
	// Domain is the registrable domain, e.g. "facebook.com".
	Domain string `mapstructure:"domain"`
	// LiteHost is the subdomain serving lightweight static markup.
	LiteHost string `mapstructure:"lite_host"`
	// FullHost is the subdomain serving the full application markup.
	FullHost string `mapstructure:"full_host"`
}

// DefaultPlatform returns the facebook.com conventions.
func DefaultPlatform() Platform {
	return Platform{
		Domain:   "facebook.com",
		LiteHost: "mbasic",
		FullHost: "www",
	}
}

// Matches reports whether host belongs to the platform's domain family.
func (p Platform) Matches(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	d := strings.ToLower(p.Domain)
	return d != "" && (host == d || strings.HasSuffix(host, "."+d))
}

// Variants derives the structurally equivalent addresses to try for addr.
// For an address in the domain family it returns the lite variant, the full
// variant, and the original when it differs from both. Anything else comes
// back unmodified as the only element.
func (p Platform) Variants(addr string) []string {
	u, ok := p.parse(addr)
	if !ok {
		return []string{addr}
	}

	withHost := func(sub string) string {
		v := *u
		v.Host = sub + "." + p.Domain
		return v.String()
	}

	return lo.Uniq([]string{
		withHost(p.LiteHost),
		withHost(p.FullHost),
		u.String(),
	})
}

func (p Platform) parse(addr string) (*url.URL, bool) {
	s := strings.TrimSpace(addr)
	if s == "" {
		return nil, false
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Port() != "" || !p.Matches(u.Hostname()) {
		return nil, false
	}
	return u, true
}
