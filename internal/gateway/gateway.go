package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hutchinsdata/site/internal/cache"
	"github.com/hutchinsdata/site/internal/config"
	"github.com/hutchinsdata/site/internal/content"
	"github.com/hutchinsdata/site/internal/retry"
	"github.com/hutchinsdata/site/internal/sanity"
	"github.com/hutchinsdata/site/pkg/logger"
	"github.com/hutchinsdata/site/pkg/metrics"
)

// DefaultTag covers every cached query unless a request names its own tags.
const DefaultTag = "sanity"

// ErrNotConfigured is returned by Query when no content store is wired.
var ErrNotConfigured = errors.New("gateway: content store not configured")

// Querier runs GROQ queries against the content store.
type Querier interface {
	Query(ctx context.Context, query string, params map[string]any, opts sanity.QueryOptions) (json.RawMessage, error)
}

// Request describes one fetch.
type Request struct {
	Query  string
	Params map[string]any
	Tags   []string
	// Preview reads drafts and skips the cache for this request only.
	Preview bool
	// TTL overrides the gateway's cache lifetime when positive.
	TTL time.Duration
}

type Options struct {
	Mode    string
	TTL     time.Duration
	Timeout time.Duration
	Retry   retry.Policy
}

// OptionsFromConfig maps content settings onto gateway options.
func OptionsFromConfig(c config.ContentConfig) Options {
	return Options{
		Mode:    c.Mode,
		TTL:     c.Revalidate,
		Timeout: c.Timeout,
		Retry:   retry.NewPolicy(c.RetryDelay, c.MaxRetries),
	}
}

// Gateway is the single read path to the content store. It never fails: on
// any error it logs a warning and yields the zero value of the requested shape.
type Gateway struct {
	q     Querier
	store cache.Store
	opts  Options

	// gens counts invalidations per tag; a fetch only writes back to the
	// cache when none of its tags moved while it was in flight.
	mu   sync.Mutex
	gens map[string]uint64

	// OnRevalidate, when set, is called after a successful local invalidation
	// so peers can be told to drop the same tag.
	OnRevalidate func(ctx context.Context, tag string)
}

// New creates a gateway. A nil Querier yields zero values for every fetch;
// a nil Store disables caching.
func New(q Querier, store cache.Store, opts Options) *Gateway {
	if opts.TTL <= 0 {
		opts.TTL = 60 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Mode != config.ModeDevelopment {
		opts.Mode = config.ModeProduction
	}
	return &Gateway{q: q, store: store, opts: opts, gens: map[string]uint64{}}
}

// Development reports whether the gateway reads drafts without caching.
func (g *Gateway) Development() bool { return g.opts.Mode == config.ModeDevelopment }

// Configured reports whether a content store is wired.
func (g *Gateway) Configured() bool { return g.q != nil }

func (g *Gateway) draftMode(req Request) bool { return req.Preview || g.Development() }

func tagsOf(req Request) []string {
	if len(req.Tags) == 0 {
		return []string{DefaultTag}
	}
	return req.Tags
}

// Fetch runs req and decodes the result into T. It is fail-open.
func Fetch[T any](ctx context.Context, g *Gateway, req Request) T {
	var out T
	_, err := g.load(ctx, req, func(raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode content: %w", err)
		}
		out = v
		return nil
	})
	if err != nil {
		metrics.ContentFetches.WithLabelValues("error").Inc()
		logger.Warnf("content fetch failed, serving empty data: %v", err)
		var zero T
		return zero
	}
	return out
}

// FetchPage loads every page section in one round trip. The result is never
// nil. A section that does not decode is left nil, so it renders its fallback
// while the rest of the page keeps its content.
func (g *Gateway) FetchPage(ctx context.Context, preview bool) *content.PageData {
	var page content.PageData
	req := Request{Query: content.AllSectionsQuery, Tags: []string{DefaultTag}, Preview: preview}
	_, err := g.load(ctx, req, func(raw json.RawMessage) error {
		p, bad, err := content.DecodePage(raw)
		if err != nil {
			return err
		}
		for _, se := range bad {
			logger.Warnf("content section %q unreadable, using fallback: %v", se.Section, se.Err)
		}
		page = p
		return nil
	})
	if err != nil {
		metrics.ContentFetches.WithLabelValues("error").Inc()
		logger.Warnf("content fetch failed, serving empty data: %v", err)
		return &content.PageData{}
	}
	return &page
}

// Query runs req through the cache like Fetch, but reports failures.
func (g *Gateway) Query(ctx context.Context, req Request) (json.RawMessage, error) {
	return g.load(ctx, req, func(raw json.RawMessage) error {
		if !json.Valid(raw) {
			return errors.New("invalid JSON result")
		}
		return nil
	})
}

// load serves req from the cache or the content store. decode must accept the
// raw result before it is cached; failures are never cached.
func (g *Gateway) load(ctx context.Context, req Request, decode func(json.RawMessage) error) (json.RawMessage, error) {
	if g == nil || g.q == nil {
		return nil, ErrNotConfigured
	}
	draft := g.draftMode(req)
	opts := sanity.QueryOptions{Perspective: sanity.Published}
	if draft {
		opts = sanity.QueryOptions{Perspective: sanity.PreviewDrafts, NoCDN: true}
	}
	tags := tagsOf(req)

	var key string
	var gen uint64
	useCache := !draft && g.store != nil
	if useCache {
		k, err := cache.Key(string(opts.Perspective), req.Query, req.Params, tags)
		if err != nil {
			return nil, err
		}
		key = k
		gen = g.generation(tags)
		if b, ok, err := g.store.Get(ctx, key); err != nil {
			logger.Warnf("content cache read failed: %v", err)
		} else if ok {
			if err := decode(b); err == nil {
				metrics.ContentFetches.WithLabelValues("hit").Inc()
				return b, nil
			}
		}
	}

	raw, err := g.roundTrip(ctx, req, opts)
	if err != nil {
		return nil, err
	}
	if err := decode(raw); err != nil {
		return nil, err
	}
	if !useCache {
		metrics.ContentFetches.WithLabelValues("bypass").Inc()
		return raw, nil
	}
	metrics.ContentFetches.WithLabelValues("miss").Inc()
	ttl := g.opts.TTL
	if req.TTL > 0 {
		ttl = req.TTL
	}
	if g.generation(tags) != gen {
		logger.Debugf("cache invalidated during fetch, not storing %s", key)
		return raw, nil
	}
	if err := g.store.Set(ctx, key, raw, ttl, tags); err != nil {
		logger.Warnf("content cache write failed: %v", err)
	}
	return raw, nil
}

func (g *Gateway) roundTrip(ctx context.Context, req Request, opts sanity.QueryOptions) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()
	start := time.Now()
	defer func() { metrics.ContentFetchDuration.Observe(time.Since(start).Seconds()) }()

	var raw json.RawMessage
	err := g.opts.Retry.Do(ctx, func(ctx context.Context) error {
		res, err := g.q.Query(ctx, req.Query, req.Params, opts)
		if err != nil {
			var apiErr *sanity.APIError
			if errors.As(err, &apiErr) && !apiErr.Temporary() {
				return retry.Permanent(err)
			}
			return err
		}
		raw = res
		return nil
	})
	return raw, err
}

func (g *Gateway) generation(tags []string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var n uint64
	for _, t := range tags {
		n += g.gens[t]
	}
	return n
}

// Invalidate drops every cached entry carrying tag on this replica only.
// Fetches already in flight for tag will not write their result back.
func (g *Gateway) Invalidate(ctx context.Context, tag string) error {
	g.mu.Lock()
	g.gens[tag]++
	g.mu.Unlock()
	if g.store == nil {
		return nil
	}
	return g.store.InvalidateTag(ctx, tag)
}

// Revalidate invalidates tag and notifies peers. Calling it repeatedly is harmless.
func (g *Gateway) Revalidate(ctx context.Context, tag string) error {
	if tag == "" {
		tag = DefaultTag
	}
	if err := g.Invalidate(ctx, tag); err != nil {
		return fmt.Errorf("invalidate %q: %w", tag, err)
	}
	logger.Infof("content cache invalidated for tag %q", tag)
	if g.OnRevalidate != nil {
		g.OnRevalidate(ctx, tag)
	}
	return nil
}
