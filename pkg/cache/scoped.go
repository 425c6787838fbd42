package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can share
// one Redis instance without colliding.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "project:route-b:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls back
// to the default scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) IdentityKey(contentKey string) string {
	return k.prefix + k.inner.IdentityKey(contentKey)
}

func (k *ScopedKeyer) PathwayKey(inputHash string, opts PathwayKeyOpts) string {
	return k.prefix + k.inner.PathwayKey(inputHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(pathwayHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(pathwayHash, opts)
}
