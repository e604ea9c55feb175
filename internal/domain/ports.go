package domain

import (
	"context"
	"time"
)

// DocumentStore is the narrow interface to the external search service.
// Implementations: internal/infra/elastic/store.go
type DocumentStore interface {
	// Search executes a structured query against one or more indices and
	// returns hits, aggregation buckets and total-count metadata.
	Search(ctx context.Context, req *SearchRequest) (*RawSearchResponse, error)

	// Get is a point lookup by index and id. A missing document returns
	// ErrNotFound, never a generic store error.
	Get(ctx context.Context, index, id string) (Document, error)

	// OpenScroll starts a paged bulk export and returns the first page
	// together with a cursor token.
	OpenScroll(ctx context.Context, req *SearchRequest, keepAlive time.Duration) (*RawSearchResponse, error)

	// ContinueScroll fetches the next page for a cursor token.
	ContinueScroll(ctx context.Context, scrollID string, keepAlive time.Duration) (*RawSearchResponse, error)
}

// Cache defines the interface for caching search envelopes.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error
}
