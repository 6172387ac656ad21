package hbapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream KV cache backend. It lets
// multiple processes share one listing cache, for example a fleet of workers
// managing the same account.
type NATSKVConfig struct {
	// URL is the NATS server URL. Defaults to nats.DefaultURL.
	URL string

	// Bucket is the KV bucket name. Defaults to "hbapi-cache".
	Bucket string

	// TTL applies bucket-wide when the bucket is created by this client.
	TTL time.Duration

	// Conn reuses an existing connection instead of dialing URL.
	Conn *nats.Conn
}

// NATSKVCache stores cache entries in a NATS JetStream key-value bucket.
type NATSKVCache struct {
	kv    nats.KeyValue
	conn  *nats.Conn
	owned bool
}

// NewNATSKVCache connects to NATS and binds (or creates) the KV bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	conn := config.Conn
	owned := false

	if conn == nil {
		url := config.URL
		if url == "" {
			url = nats.DefaultURL
		}

		var err error

		conn, err = nats.Connect(url)
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		owned = true
	}

	js, err := conn.JetStream()
	if err != nil {
		if owned {
			conn.Close()
		}

		return nil, fmt.Errorf("obtaining JetStream context: %w", err)
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = "hbapi-cache"
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		if owned {
			conn.Close()
		}

		return nil, fmt.Errorf("binding KV bucket %q: %w", bucket, err)
	}

	return &NATSKVCache{kv: kv, conn: conn, owned: owned}, nil
}

// Get retrieves an entry from the bucket.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kve, err := c.kv.Get(key)
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("getting key %q: %w", key, err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kve.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry %q: %w", key, err)
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores an entry in the bucket.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", key, err)
	}

	_, err = c.kv.Put(key, data)
	if err != nil {
		return fmt.Errorf("putting key %q: %w", key, err)
	}

	return nil
}

// Delete removes an entry from the bucket.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(key)
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}

	return nil
}

// Clear removes all entries from the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing keys: %w", err)
	}

	for _, key := range keys {
		err := c.kv.Delete(key)
		if err != nil {
			return fmt.Errorf("deleting key %q: %w", key, err)
		}
	}

	return nil
}

// Has checks whether a live entry exists for key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the NATS connection when this cache owns it.
func (c *NATSKVCache) Close() {
	if c.owned && c.conn != nil {
		c.conn.Close()
	}
}
