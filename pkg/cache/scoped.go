package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating key namespaces when
// several deployments share one backend (typically Redis).
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "circuitvis:")
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

// LayoutKey generates a prefixed key for a computed element list.
func (k *ScopedKeyer) LayoutKey(circuitHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(circuitHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(circuitHash, opts)
}
