package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hutchinsdata/site/internal/config"
	"github.com/hutchinsdata/site/internal/retry"
	"github.com/hutchinsdata/site/pkg/logger"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// StartupPolicy tolerates the database coming up after the service.
var StartupPolicy = retry.Policy{Initial: time.Second, Max: 16 * time.Second, MaxRetries: 4}

// Connect dials MongoDB with retries and returns the client together with
// the configured database.
func Connect(ctx context.Context, cfg config.MongoDBConfig, p retry.Policy) (*mongo.Client, *mongo.Database, error) {
	var client *mongo.Client
	attempt := 0
	err := p.Do(ctx, func(ctx context.Context) error {
		attempt++
		c, err := ConnectMongo(ctx, cfg.URI, cfg.Timeout)
		if err != nil {
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, p.MaxRetries+1, err)
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return client, client.Database(cfg.Database), nil
}
