package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hutchinsdata/site/internal/config"
	"github.com/hutchinsdata/site/internal/contact"
	"github.com/hutchinsdata/site/pkg/logger"
	"github.com/nats-io/nats.go"
)

// ContactSubject carries accepted contact submissions.
const ContactSubject = "site.contact"

// Revalidation tells peers to drop a cache tag.
type Revalidation struct {
	Tag    string    `json:"tag"`
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// conn is the part of *nats.Conn the bus uses.
type conn interface {
	Publish(subj string, data []byte) error
	Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error)
	Drain() error
}

// Bus fans cache invalidations out to every replica over core NATS
// (at-most-once; a missed message is covered by the cache TTL).
type Bus struct {
	nc      conn
	subject string
	origin  string
}

// Connect dials NATS. Each Bus gets a unique origin id so it can ignore its
// own broadcasts.
func Connect(cfg config.NATSConfig) (*Bus, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name("hutchins-site"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warnf("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) { logger.Infof("nats reconnected to %s", c.ConnectedUrl()) }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Infow("NATS event bus connected", "url", cfg.URL, "subject", cfg.Subject)
	return newBus(nc, cfg.Subject), nil
}

func newBus(nc conn, subject string) *Bus {
	if subject == "" {
		subject = "site.revalidate"
	}
	return &Bus{nc: nc, subject: subject, origin: uuid.NewString()}
}

// PublishRevalidation broadcasts tag to peers.
func (b *Bus) PublishRevalidation(_ context.Context, tag string) error {
	data, err := json.Marshal(Revalidation{Tag: tag, Origin: b.origin, At: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.nc.Publish(b.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	logger.Debugf("published revalidation for tag %q", tag)
	return nil
}

// Broadcast is PublishRevalidation with errors logged, shaped for
// gateway.Gateway.OnRevalidate.
func (b *Bus) Broadcast(ctx context.Context, tag string) {
	if err := b.PublishRevalidation(ctx, tag); err != nil {
		logger.Warnf("revalidation broadcast failed: %v", err)
	}
}

// SubscribeRevalidations calls invalidate for every tag announced by a peer.
func (b *Bus) SubscribeRevalidations(invalidate func(ctx context.Context, tag string) error) (*nats.Subscription, error) {
	return b.nc.Subscribe(b.subject, func(m *nats.Msg) {
		var ev Revalidation
		if err := json.Unmarshal(m.Data, &ev); err != nil {
			logger.Warnf("dropping malformed revalidation event: %v", err)
			return
		}
		if ev.Origin == b.origin || ev.Tag == "" {
			return
		}
		if err := invalidate(context.Background(), ev.Tag); err != nil {
			logger.Warnf("peer revalidation of %q failed: %v", ev.Tag, err)
			return
		}
		logger.Infof("cache tag %q invalidated by peer %s", ev.Tag, ev.Origin)
	})
}

// Notify publishes an accepted contact submission. It satisfies the contact
// service's Notifier.
func (b *Bus) Notify(_ context.Context, s *contact.Submission) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.nc.Publish(ContactSubject, data)
}

// Close drains pending messages and closes the connection.
func (b *Bus) Close() error {
	return b.nc.Drain()
}
