package cache

// ScopedKeyer prefixes every key of another Keyer. Configurations that
// share one Redis (a preview server per plotter profile, say) set
// cache.namespace so their drawings never collide.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes the keys of inner, or of the default keyer if
// inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) DrawingKey(opts DrawingKeyOpts) string {
	return k.prefix + k.inner.DrawingKey(opts)
}

func (k ScopedKeyer) ArtifactKey(drawingKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(drawingKey, opts)
}
