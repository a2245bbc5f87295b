// Package cache stores pipeline results so repeated requests for the same
// input skip decoding, wiring and rendering.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared storage for the HTTP API
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer], which hashes the input together with every
// option that changes the result. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	// GridTTL is how long decoded box sets are kept.
	GridTTL = 24 * time.Hour

	// SchematicTTL is how long reconstructed schematics are kept.
	SchematicTTL = 7 * 24 * time.Hour

	// ArtifactTTL is how long rendered artifacts are kept.
	ArtifactTTL = 7 * 24 * time.Hour
)
