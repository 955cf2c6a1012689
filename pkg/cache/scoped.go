package cache

// ScopedKeyer wraps a Keyer with a prefix so that several sources can share
// one cache without colliding. The CMS scopes its keys per project:
//
//	keyer := cache.NewScopedKeyer(nil, "sanity:sjr8w888:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) QueryKey(dataset, query string, params map[string]any) string {
	return k.prefix + k.inner.QueryKey(dataset, query, params)
}

func (k *ScopedKeyer) LayoutKey(ratiosHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(ratiosHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
