package catalog

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// FeedChannel is the pub/sub channel the catalog backend publishes the full
// product list on after every change.
const FeedChannel = "catalog:products"

// RedisFeed subscribes to the product feed channel and keeps a Catalog
// current. Malformed messages are logged and skipped; the previous snapshot
// stays in place.
type RedisFeed struct {
	client  *redis.Client
	catalog *Catalog
}

func NewRedisFeed(client *redis.Client, catalog *Catalog) *RedisFeed {
	return &RedisFeed{client: client, catalog: catalog}
}

// Run blocks consuming feed messages until the context is cancelled.
func (f *RedisFeed) Run(ctx context.Context) {
	sub := f.client.Subscribe(ctx, FeedChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			f.apply(msg.Payload)
		case <-ctx.Done():
			return
		}
	}
}

func (f *RedisFeed) apply(payload string) {
	var products []domain.Product
	if err := json.Unmarshal([]byte(payload), &products); err != nil {
		log.Printf("catalog: parse feed message: %v", err)
		return
	}
	f.catalog.Replace(products)
}
