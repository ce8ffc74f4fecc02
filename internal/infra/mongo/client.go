package mongo

import (
	"context"
	"time"

	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewClient connects to MongoDB and verifies the connection with a ping
// bounded by timeout. Startup is fail-fast: callers treat any error here
// as fatal rather than serving traffic without a store.
func NewClient(uri string, timeout time.Duration) (*mongod.Client, error) {
	client, err := mongod.Connect(options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
