package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hutchinsdata/site/internal/cache"
	"github.com/hutchinsdata/site/internal/config"
	"github.com/hutchinsdata/site/internal/content"
	"github.com/hutchinsdata/site/internal/retry"
	"github.com/hutchinsdata/site/internal/sanity"
	"github.com/hutchinsdata/site/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	mu      sync.Mutex
	calls   int
	last    sanity.QueryOptions
	results []any // json.RawMessage or error, consumed in order; the last one repeats
}

func (f *fakeQuerier) Query(_ context.Context, _ string, _ map[string]any, opts sanity.QueryOptions) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = opts
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	if err, ok := r.(error); ok {
		return nil, err
	}
	return r.(json.RawMessage), nil
}

func (f *fakeQuerier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const heroJSON = `{"hero":{"headline":"Decisions you can defend."}}`

func ok(s string) json.RawMessage { return json.RawMessage(s) }

func TestFetchPage_ProductionCachesUntilRevalidated(t *testing.T) {
	q := &fakeQuerier{results: []any{ok(heroJSON)}}
	g := New(q, cache.NewMemoryStore(), Options{Mode: config.ModeProduction})
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.ContentFetches.WithLabelValues("hit"))
	p1 := g.FetchPage(ctx, false)
	p2 := g.FetchPage(ctx, false)
	require.Equal(t, "Decisions you can defend.", p1.Hero.Headline)
	require.Equal(t, p1, p2)
	require.Equal(t, 1, q.Calls())
	require.Equal(t, sanity.Published, q.last.Perspective)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.ContentFetches.WithLabelValues("hit")))

	var notified []string
	g.OnRevalidate = func(_ context.Context, tag string) { notified = append(notified, tag) }
	require.NoError(t, g.Revalidate(ctx, "sanity"))
	require.NoError(t, g.Revalidate(ctx, "sanity"))
	require.Equal(t, []string{"sanity", "sanity"}, notified)

	g.FetchPage(ctx, false)
	require.Equal(t, 2, q.Calls())
}

func TestFetch_DevelopmentBypassesCacheAndReadsDrafts(t *testing.T) {
	q := &fakeQuerier{results: []any{ok(heroJSON)}}
	store := cache.NewMemoryStore()
	g := New(q, store, Options{Mode: config.ModeDevelopment})
	require.True(t, g.Development())

	g.FetchPage(context.Background(), false)
	g.FetchPage(context.Background(), false)
	require.Equal(t, 2, q.Calls())
	require.Equal(t, sanity.PreviewDrafts, q.last.Perspective)
	require.True(t, q.last.NoCDN)
	require.Equal(t, 0, store.Len())
}

func TestFetch_PreviewRequestSkipsCache(t *testing.T) {
	q := &fakeQuerier{results: []any{ok(heroJSON)}}
	store := cache.NewMemoryStore()
	g := New(q, store, Options{})

	g.FetchPage(context.Background(), true)
	require.Equal(t, sanity.PreviewDrafts, q.last.Perspective)
	require.Equal(t, 0, store.Len())

	g.FetchPage(context.Background(), false)
	require.Equal(t, sanity.Published, q.last.Perspective)
	require.Equal(t, 1, store.Len())
}

func TestFetch_FailOpenAndFailuresNotCached(t *testing.T) {
	q := &fakeQuerier{results: []any{errors.New("connection refused"), ok(heroJSON)}}
	store := cache.NewMemoryStore()
	g := New(q, store, Options{})

	p := g.FetchPage(context.Background(), false)
	require.NotNil(t, p)
	require.Nil(t, p.Hero)
	require.Equal(t, 0, store.Len())

	p = g.FetchPage(context.Background(), false)
	require.NotNil(t, p.Hero)
	require.Equal(t, 2, q.Calls())
}

func TestFetchPage_BrokenSectionIsIsolatedAndCached(t *testing.T) {
	q := &fakeQuerier{results: []any{ok(`{"hero":{"headline":"Decisions you can defend."},"proof":{"items":[{"_key":"a","text":"x"}]}}`)}}
	store := cache.NewMemoryStore()
	g := New(q, store, Options{})

	p := g.FetchPage(context.Background(), false)
	require.NotNil(t, p.Hero)
	require.Equal(t, "Decisions you can defend.", p.Hero.Headline)
	require.Nil(t, p.Proof)
	require.Equal(t, 1, store.Len())

	p = g.FetchPage(context.Background(), false)
	require.NotNil(t, p.Hero)
	require.Equal(t, 1, q.Calls())
}

func TestFetchPage_NonObjectResultIsAFailure(t *testing.T) {
	q := &fakeQuerier{results: []any{ok(`["not","a","page"]`)}}
	store := cache.NewMemoryStore()
	g := New(q, store, Options{})

	p := g.FetchPage(context.Background(), false)
	require.Equal(t, &content.PageData{}, p)
	require.Equal(t, 0, store.Len())
}

func TestFetch_ShapeMismatchIsAFailure(t *testing.T) {
	q := &fakeQuerier{results: []any{ok(`{"headline":7}`)}}
	store := cache.NewMemoryStore()
	g := New(q, store, Options{})

	hero := Fetch[*content.HeroData](context.Background(), g, Request{Query: "hero"})
	require.Nil(t, hero)
	require.Equal(t, 0, store.Len())
}

// blockingQuerier holds every query until release is closed.
type blockingQuerier struct {
	started chan struct{}
	release chan struct{}
	result  json.RawMessage
}

func (b *blockingQuerier) Query(ctx context.Context, _ string, _ map[string]any, _ sanity.QueryOptions) (json.RawMessage, error) {
	b.started <- struct{}{}
	select {
	case <-b.release:
		return b.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestFetch_InvalidationDuringFetchSkipsWriteBack(t *testing.T) {
	q := &blockingQuerier{started: make(chan struct{}, 1), release: make(chan struct{}), result: ok(heroJSON)}
	store := cache.NewMemoryStore()
	g := New(q, store, Options{})
	ctx := context.Background()

	done := make(chan *content.PageData)
	go func() { done <- g.FetchPage(ctx, false) }()
	<-q.started

	require.NoError(t, g.Revalidate(ctx, DefaultTag))
	close(q.release)
	p := <-done

	require.NotNil(t, p.Hero)
	require.Equal(t, 0, store.Len())

	go func() { done <- g.FetchPage(ctx, false) }()
	<-q.started
	<-done
	require.Equal(t, 1, store.Len())
}

func TestFetch_NotConfigured(t *testing.T) {
	g := New(nil, cache.NewMemoryStore(), Options{})
	require.False(t, g.Configured())
	require.NotNil(t, g.FetchPage(context.Background(), false))

	hero := Fetch[*content.HeroData](context.Background(), g, Request{Query: "*"})
	require.Nil(t, hero)

	_, err := g.Query(context.Background(), Request{Query: "*"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestFetch_UnreachableStore(t *testing.T) {
	c, err := sanity.New(sanity.Config{ProjectID: "p", BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	require.NoError(t, err)
	g := New(c, nil, Options{Timeout: time.Second})

	p := g.FetchPage(context.Background(), false)
	require.NotNil(t, p)
	require.Nil(t, p.SiteSettings)
}

func TestFetch_RetriesTemporaryButNotClientErrors(t *testing.T) {
	q := &fakeQuerier{results: []any{&sanity.APIError{Status: 503}, ok(heroJSON)}}
	g := New(q, nil, Options{Retry: retry.Policy{Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 2}})
	p := g.FetchPage(context.Background(), false)
	require.NotNil(t, p.Hero)
	require.Equal(t, 2, q.Calls())

	q = &fakeQuerier{results: []any{&sanity.APIError{Status: 400}, ok(heroJSON)}}
	g = New(q, nil, Options{Retry: retry.Policy{Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 2}})
	p = g.FetchPage(context.Background(), false)
	require.Nil(t, p.Hero)
	require.Equal(t, 1, q.Calls())
}

func TestFetch_ParamOrderSharesCacheEntry(t *testing.T) {
	q := &fakeQuerier{results: []any{ok(`"x"`)}}
	g := New(q, cache.NewMemoryStore(), Options{})
	ctx := context.Background()

	a := Fetch[string](ctx, g, Request{Query: "q", Params: map[string]any{"a": 1, "b": 2}})
	b := Fetch[string](ctx, g, Request{Query: "q", Params: map[string]any{"b": 2, "a": 1}})
	require.Equal(t, "x", a)
	require.Equal(t, a, b)
	require.Equal(t, 1, q.Calls())
}

func TestFetch_CustomTagInvalidation(t *testing.T) {
	q := &fakeQuerier{results: []any{ok(`"x"`)}}
	store := cache.NewMemoryStore()
	g := New(q, store, Options{})
	ctx := context.Background()

	Fetch[string](ctx, g, Request{Query: "q", Tags: []string{"hero"}})
	require.NoError(t, g.Revalidate(ctx, "sanity"))
	Fetch[string](ctx, g, Request{Query: "q", Tags: []string{"hero"}})
	require.Equal(t, 1, q.Calls())

	require.NoError(t, g.Invalidate(ctx, "hero"))
	Fetch[string](ctx, g, Request{Query: "q", Tags: []string{"hero"}})
	require.Equal(t, 2, q.Calls())
}

func TestOptionsFromConfig(t *testing.T) {
	o := OptionsFromConfig(config.ContentConfig{Mode: config.ModeDevelopment, Revalidate: time.Minute, Timeout: 5 * time.Second, MaxRetries: 2, RetryDelay: 100 * time.Millisecond})
	require.Equal(t, time.Minute, o.TTL)
	require.Equal(t, 2, o.Retry.MaxRetries)
	require.Equal(t, 100*time.Millisecond, o.Retry.Initial)
}
