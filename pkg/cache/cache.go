// Package cache provides content-addressed caching for engine outputs.
//
// The layout and flow-grouping engines are pure, so their outputs are
// perfectly cacheable: the key is a hash of the input snapshot plus the
// options that shaped the computation. The surrounding application
// re-invokes the engine on unrelated state changes, which makes even a
// local file cache worthwhile for large histories.
//
// Four backends implement the [Cache] interface: file (CLI default), null
// (caching disabled), Redis and Mongo (shared deployments behind the HTTP
// API).
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact class. Engine outputs never go stale for a given
// input hash, so these only bound storage growth.
const (
	// TTLLayout is the lifetime of cached graph layouts.
	TTLLayout = 7 * 24 * time.Hour

	// TTLFlows is the lifetime of cached flow groupings.
	TTLFlows = 7 * 24 * time.Hour
)

// Cache is the storage interface for computed engine outputs.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live. A non-positive ttl
	// stores the value without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the option fields that shape a layout computation and
// therefore participate in its cache key.
type LayoutKeyOpts struct {
	RowHeight   float64
	LaneWidth   float64
	LanePadding float64
	NodeRadius  float64
	MaxWidth    float64
}

// FlowKeyOpts are the option fields that shape a flow grouping and
// therefore participate in its cache key.
type FlowKeyOpts struct {
	FallbackLabel string
	MaxGroupSize  int
	Window        int64
}

// Keyer builds cache keys from content hashes and option sets.
type Keyer interface {
	// LayoutKey keys a graph layout by history hash and geometry options.
	LayoutKey(historyHash string, opts LayoutKeyOpts) string

	// FlowKey keys a flow grouping by history hash and grouping options.
	FlowKey(historyHash string, opts FlowKeyOpts) string
}

// DefaultKeyer hashes the history hash together with the option set.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(historyHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", historyHash, opts)
}

// FlowKey implements Keyer.
func (k *DefaultKeyer) FlowKey(historyHash string, opts FlowKeyOpts) string {
	return hashKey("flows", historyHash, opts)
}
