package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/happythoughts/apiserver/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultPingTimeout    = 5 * time.Second
	defaultMaxPoolSize    = 25
	defaultMinPoolSize    = 2
	defaultMaxConnIdle    = 2 * time.Minute
)

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return nil, errors.New("mongo url is required")
	}

	opts := options.Client().
		ApplyURI(cfg.Database.URL).
		SetConnectTimeout(defaultConnectTimeout).
		SetMaxPoolSize(defaultMaxPoolSize).
		SetMinPoolSize(defaultMinPoolSize).
		SetMaxConnIdleTime(defaultMaxConnIdle)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// Database returns the configured database handle.
func Database(client *mongo.Client, cfg config.Config) *mongo.Database {
	return client.Database(cfg.Database.DBName)
}
