package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants or
// model versions can share one backend.
//
// Example usage:
//
//	// Keys for results produced by a specific detector checkpoint
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "model:v3:")
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

// GridKey generates a prefixed key for decoded box sets.
func (k *ScopedKeyer) GridKey(gridHash string, opts GridKeyOpts) string {
	return k.prefix + k.inner.GridKey(gridHash, opts)
}

// SchematicKey generates a prefixed key for reconstructed schematics.
func (k *ScopedKeyer) SchematicKey(boxesHash string, opts SchematicKeyOpts) string {
	return k.prefix + k.inner.SchematicKey(boxesHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(schematicHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(schematicHash, opts)
}
