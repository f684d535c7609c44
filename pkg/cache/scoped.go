package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Shared backends (Redis, Mongo) use it to keep separate deployments or
// repositories from colliding in one keyspace.
//
// Example usage:
//
//	// Per-repository keys behind the HTTP API
//	repoKeyer := NewScopedKeyer(NewDefaultKeyer(), "repo:a1b2c3:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(historyHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(historyHash, opts)
}

// FlowKey generates a prefixed key for flow-grouping caching.
func (k *ScopedKeyer) FlowKey(historyHash string, opts FlowKeyOpts) string {
	return k.prefix + k.inner.FlowKey(historyHash, opts)
}
