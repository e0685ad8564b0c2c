// Package resolver turns a shared video page address into direct media links
// by racing retrieval attempts across address variants and relay channels,
// then running the extraction pipeline on the first valid body.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ramkansal/reelfang/internal/channel"
	"github.com/ramkansal/reelfang/internal/extractor"
	"github.com/ramkansal/reelfang/internal/fetcher"
	"github.com/ramkansal/reelfang/internal/race"
	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/samber/lo"
)

// Resolver is the core engine that orchestrates variants, channels,
// fetching, validation and extraction.
type Resolver struct {
	config    *Config
	broker    *channel.Broker
	fetch     plugin.Fetcher
	validator fetcher.Validator
	pipeline  *extractor.Pipeline
	metadata  *extractor.MetadataExtractor
	observers []plugin.Observer
}

// New creates a resolver. The fetcher is owned by the caller.
func New(config *Config, f plugin.Fetcher, observers ...plugin.Observer) (*Resolver, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if f == nil {
		return nil, errors.New("nil fetcher")
	}
	broker, err := channel.NewBroker(config.Platform, config.Channels)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		config:    config,
		broker:    broker,
		fetch:     f,
		validator: fetcher.NewValidator(config.MinBodyLength),
		pipeline: extractor.NewPipeline(extractor.Options{
			MediaHosts:      config.MediaHosts,
			MediaExtensions: config.MediaExtensions,
		}),
		metadata:  extractor.NewMetadataExtractor(),
		observers: lo.Filter(observers, func(o plugin.Observer, _ int) bool { return o != nil }),
	}, nil
}

// Pipeline exposes the extraction pipeline so callers can register
// additional strategies.
func (r *Resolver) Pipeline() *extractor.Pipeline { return r.pipeline }

// Channels returns the configured relay pool.
func (r *Resolver) Channels() []channel.Channel { return r.broker.Channels() }

// Resolve returns the media links for addr. On failure the error is always
// a *plugin.ResolutionError; no partial result is returned.
func (r *Resolver) Resolve(ctx context.Context, addr string) (*plugin.Result, error) {
	id := uuid.NewString()
	start := time.Now()

	attempts := r.broker.Attempts(addr)
	r.emit(plugin.Event{
		Type:       plugin.EventResolveStarted,
		Resolution: id,
		Address:    addr,
		Message:    fmt.Sprintf("racing %d attempts", len(attempts)),
	})

	res, err := r.resolve(ctx, id, addr, attempts)

	ev := plugin.Event{
		Type:       plugin.EventResolveFinished,
		Resolution: id,
		Address:    addr,
		Duration:   time.Since(start),
		Error:      err,
	}
	if err != nil {
		// Caller cancellation is not a resolution outcome; report it as-is.
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			r.emit(ev)
			return nil, err
		}
		var rerr *plugin.ResolutionError
		if !errors.As(err, &rerr) {
			err = plugin.NewResolutionError(err)
		}
		ev.Error = err
		r.emit(ev)
		return nil, err
	}
	r.emit(ev)
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, id, addr string, attempts []channel.Attempt) (*plugin.Result, error) {
	fns := lo.Map(attempts, func(a channel.Attempt, _ int) race.Func[string] {
		return func(ctx context.Context) (string, error) {
			return r.attempt(ctx, id, a)
		}
	})

	body, winner, err := race.First(ctx, fns)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.emit(plugin.Event{
			Type:       plugin.EventRaceExhausted,
			Resolution: id,
			Address:    addr,
			Error:      err,
		})
		return nil, plugin.NewResolutionError(fmt.Errorf("%w: %w", plugin.ErrExhausted, err))
	}

	w := attempts[winner]
	r.emit(plugin.Event{
		Type:       plugin.EventRaceWon,
		Resolution: id,
		Address:    addr,
		Attempt:    w.Index,
		Variant:    w.Variant,
		Channel:    w.Channel.Name,
		URL:        w.URL,
	})

	doc := plugin.NewDocument(body)
	cand, strategy, ok := r.pipeline.Run(doc)
	if !ok {
		r.emit(plugin.Event{Type: plugin.EventNoMatch, Resolution: id, Address: addr, Channel: w.Channel.Name})
		return Assemble(cand, extractor.Metadata{})
	}
	r.emit(plugin.Event{
		Type:       plugin.EventStrategyMatched,
		Resolution: id,
		Address:    addr,
		Channel:    w.Channel.Name,
		Strategy:   strategy,
	})

	return Assemble(cand, r.metadata.Extract(doc))
}

// attempt performs one retrieval and validates the body. Its error is only
// ever seen by observers and the race.
func (r *Resolver) attempt(ctx context.Context, id string, a channel.Attempt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.AttemptTimeout)
	defer cancel()

	ev := plugin.Event{
		Resolution: id,
		Attempt:    a.Index,
		Variant:    a.Variant,
		Channel:    a.Channel.Name,
		URL:        a.URL,
	}
	ev.Type = plugin.EventAttemptStarted
	r.emit(ev)

	start := time.Now()
	page, err := r.fetch.Fetch(ctx, a.URL)
	ev.Duration = time.Since(start)
	if err != nil {
		ev.Type = plugin.EventAttemptTransportFailed
		ev.Error = err
		r.emit(ev)
		return "", err
	}

	if err := r.validator.Validate(page.Body); err != nil {
		ev.Type = plugin.EventAttemptRejected
		ev.Error = err
		r.emit(ev)
		return "", err
	}

	ev.Type = plugin.EventAttemptSucceeded
	r.emit(ev)
	return page.Body, nil
}

func (r *Resolver) emit(ev plugin.Event) {
	for _, o := range r.observers {
		o(ev)
	}
}
