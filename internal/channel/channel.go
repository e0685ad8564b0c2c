// Package channel turns an input address into the set of retrieval attempts
// to race: address variants crossed with indirect relay channels.
package channel

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	placeholderEscaped = "{url}"
	placeholderRaw     = "{raw}"
)

// Channel is an indirect retrieval path. Template contains {url} for the
// query-escaped target address or {raw} for the address verbatim.
type Channel struct {
	Name     string `mapstructure:"name"`
	Template string `mapstructure:"template"`
}

// Wrap returns the address to fetch in order to retrieve target through c.
func (c Channel) Wrap(target string) string {
	r := strings.NewReplacer(
		placeholderEscaped, url.QueryEscape(target),
		placeholderRaw, target,
	)
	return r.Replace(c.Template)
}

// Validate checks that the template can produce an absolute address.
func (c Channel) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("channel has no name")
	}
	if !strings.Contains(c.Template, placeholderEscaped) && !strings.Contains(c.Template, placeholderRaw) {
		return fmt.Errorf("channel %q: template must contain %s or %s", c.Name, placeholderEscaped, placeholderRaw)
	}
	probe := c.Wrap("https://example.com/")
	u, err := url.Parse(probe)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("channel %q: template does not yield an absolute http(s) address", c.Name)
	}
	return nil
}

// DefaultChannels is the built-in relay pool, tried in this order.
func DefaultChannels() []Channel {
	return []Channel{
		{Name: "direct", Template: "{raw}"},
		{Name: "corsproxy", Template: "https://corsproxy.io/?{url}"},
		{Name: "allorigins", Template: "https://api.allorigins.win/raw?url={url}"},
		{Name: "codetabs", Template: "https://api.codetabs.com/v1/proxy?quest={url}"},
		{Name: "thingproxy", Template: "https://thingproxy.freeboard.io/fetch/{raw}"},
	}
}
