package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/hutchinsdata/site/internal/contact"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

// loopback delivers published messages synchronously to its subscribers.
type loopback struct {
	mu        sync.Mutex
	subs      map[string][]nats.MsgHandler
	published map[string][][]byte
	fail      error
}

func newLoopback() *loopback {
	return &loopback{subs: map[string][]nats.MsgHandler{}, published: map[string][][]byte{}}
}

func (l *loopback) Publish(subj string, data []byte) error {
	if l.fail != nil {
		return l.fail
	}
	l.mu.Lock()
	l.published[subj] = append(l.published[subj], data)
	handlers := append([]nats.MsgHandler(nil), l.subs[subj]...)
	l.mu.Unlock()
	for _, h := range handlers {
		h(&nats.Msg{Subject: subj, Data: data})
	}
	return nil
}

func (l *loopback) Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs[subj] = append(l.subs[subj], cb)
	return &nats.Subscription{Subject: subj}, nil
}

func (l *loopback) Drain() error { return nil }

func TestRevalidation_ReachesPeersButNotSelf(t *testing.T) {
	nc := newLoopback()
	a := newBus(nc, "")
	b := newBus(nc, "")

	var gotA, gotB []string
	_, err := a.SubscribeRevalidations(func(_ context.Context, tag string) error { gotA = append(gotA, tag); return nil })
	require.NoError(t, err)
	_, err = b.SubscribeRevalidations(func(_ context.Context, tag string) error { gotB = append(gotB, tag); return nil })
	require.NoError(t, err)

	require.NoError(t, a.PublishRevalidation(context.Background(), "sanity"))
	require.Empty(t, gotA)
	require.Equal(t, []string{"sanity"}, gotB)

	var ev Revalidation
	require.NoError(t, json.Unmarshal(nc.published["site.revalidate"][0], &ev))
	require.Equal(t, a.origin, ev.Origin)
}

func TestRevalidation_IgnoresMalformedAndEmpty(t *testing.T) {
	nc := newLoopback()
	b := newBus(nc, "custom.subject")
	calls := 0
	_, err := b.SubscribeRevalidations(func(context.Context, string) error { calls++; return nil })
	require.NoError(t, err)

	require.NoError(t, nc.Publish("custom.subject", []byte("{")))
	require.NoError(t, nc.Publish("custom.subject", []byte(`{"tag":"","origin":"other"}`)))
	require.Equal(t, 0, calls)
}

func TestBroadcast_LogsPublishFailure(t *testing.T) {
	nc := newLoopback()
	nc.fail = errors.New("connection closed")
	b := newBus(nc, "")
	require.Error(t, b.PublishRevalidation(context.Background(), "sanity"))
	b.Broadcast(context.Background(), "sanity")
}

func TestNotify_PublishesSubmission(t *testing.T) {
	nc := newLoopback()
	b := newBus(nc, "")
	require.NoError(t, b.Notify(context.Background(), &contact.Submission{ID: "s1", Email: "a@b.com"}))
	require.Len(t, nc.published[ContactSubject], 1)
	require.Contains(t, string(nc.published[ContactSubject][0]), `"email":"a@b.com"`)
}
