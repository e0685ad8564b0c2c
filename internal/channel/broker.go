package channel

import (
	"errors"

	"github.com/samber/lo"
)

// Attempt pairs one variant with one channel.
type Attempt struct {
	Index   int
	Variant string
	Channel Channel
	URL     string
}

// Broker combines variants with the configured channel pool.
type Broker struct {
	platform Platform
	channels []Channel
}

// ErrNoChannels is returned when a broker is built with an empty pool.
var ErrNoChannels = errors.New("channel pool is empty")

// NewBroker validates the pool and returns a broker.
func NewBroker(platform Platform, channels []Channel) (*Broker, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	for _, c := range channels {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return &Broker{platform: platform, channels: append([]Channel(nil), channels...)}, nil
}

// Channels returns a copy of the configured pool.
func (b *Broker) Channels() []Channel {
	return append([]Channel(nil), b.channels...)
}

// Variants exposes the broker's variant generator.
func (b *Broker) Variants(addr string) []string {
	return b.platform.Variants(addr)
}

// Attempts returns the full variant × channel cross product for addr,
// variant-major and channel-minor.
func (b *Broker) Attempts(addr string) []Attempt {
	attempts := lo.FlatMap(b.Variants(addr), func(v string, _ int) []Attempt {
		return lo.Map(b.channels, func(c Channel, _ int) Attempt {
			return Attempt{Variant: v, Channel: c, URL: c.Wrap(v)}
		})
	})
	for i := range attempts {
		attempts[i].Index = i
	}
	return attempts
}
