package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(inputHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(inputHash, opts)
}

// PlantUMLKey generates a prefixed PlantUML key.
func (k *ScopedKeyer) PlantUMLKey(textHash string, opts PlantUMLKeyOpts) string {
	return k.prefix + k.inner.PlantUMLKey(textHash, opts)
}
