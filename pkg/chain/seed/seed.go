package seed

// Seed is a candidate entity of a pipeline.
type Seed interface {
	// Attributes returns the name and attributes of the entity.
	Attributes() map[string]any
	// Excluded reports whether the entity must be dropped from the pipeline.
	Excluded() bool
}

// Context is what seeds are evaluated against.
type Context struct {
	Ref string
	Tag bool
	// Source is the refs keyword of the pipeline kind, e.g. "pushes" or "chat".
	Source string
}

var (
	_ Seed = (*Build)(nil)
	_ Seed = (*Stage)(nil)
	_ Seed = (*Pipeline)(nil)
)
