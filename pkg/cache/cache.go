// Package cache provides result caching for the visualization pipeline.
//
// Binning a multi-million-segment graph and computing a paths×paths
// distance matrix are the two expensive phases of a run; both depend
// only on the graph content and a small set of options. This package
// memoizes their serialized results so repeated renders of the same
// graph (e.g. while tuning colors or layout flags) skip recomputation.
//
// Two implementations are provided:
//   - FileCache: persistent, for CLI usage (~/.cache/gfalook)
//   - NullCache: no-op, for tests and --no-cache runs
package cache

import (
	"context"
	"time"
)

// Cache is the interface for pipeline result caching.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Cache durations per result kind. Both are keyed by the graph
// checksum, so stale entries can only come from disk churn, not from
// input changes.
const (
	TTLProfiles  = 7 * 24 * time.Hour
	TTLDistances = 7 * 24 * time.Hour
)

// ProfileKeyOpts are the options that affect a bin-profile matrix.
type ProfileKeyOpts struct {
	Bins     int     `json:"bins"`
	BinWidth float64 `json:"bin_width"`
	Range    string  `json:"range,omitempty"`
	// Paths are the displayed path names in row order.
	Paths []string `json:"paths"`
	// Highlights are the marked segment ids, sorted.
	Highlights []int `json:"highlights,omitempty"`
}

// DistanceKeyOpts are the options that affect a distance matrix.
type DistanceKeyOpts struct {
	AllNodes bool     `json:"all_nodes"`
	Paths    []string `json:"paths"`
}

// ProfileKey generates a cache key for a bin-profile matrix.
// graphHash is the content hash of the loaded graph.
func ProfileKey(graphHash string, opts ProfileKeyOpts) string {
	return hashKey("profiles", graphHash, opts)
}

// DistanceKey generates a cache key for a path distance matrix.
func DistanceKey(graphHash string, opts DistanceKeyOpts) string {
	return hashKey("distances", graphHash, opts)
}
