package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, useful
// when several projects or tenants share one cache backend (typically
// Redis).
//
// Example usage:
//
//	// Project-specific keys on a shared Redis
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "proj:atlas:")
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

// PiecesKey generates a prefixed key for piece document caching.
func (k *ScopedKeyer) PiecesKey(regionsHash string, opts PiecesKeyOpts) string {
	return k.prefix + k.inner.PiecesKey(regionsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(piecesHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(piecesHash, opts)
}
