package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "bstviz:")
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
	if prefix == "" {
		return inner
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TreeKey generates a prefixed tree key.
func (k *ScopedKeyer) TreeKey(category string, values []string) string {
	return k.prefix + k.inner.TreeKey(category, values)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
