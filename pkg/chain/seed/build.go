package seed

// WhenNever excludes a job unconditionally.
const WhenNever = "never"

// JobSpec is what a build seed is made from.
type JobSpec struct {
	Name  string
	Stage string
	When  string
	// Only is nil when the job declares no only policy.
	Only    []string
	Except  []string
	Options map[string]any
}

// Build is the seed of one job.
type Build struct {
	ctx  Context
	spec JobSpec
}

func NewBuild(ctx Context, spec JobSpec) *Build {
	return &Build{ctx: ctx, spec: spec}
}

func (b *Build) Name() string {
	return b.spec.Name
}

func (b *Build) Stage() string {
	return b.spec.Stage
}

// Attributes returns the job name, stage, when and options.
func (b *Build) Attributes() map[string]any {
	when := b.spec.When
	if when == "" {
		when = "on_success"
	}

	options := make(map[string]any, len(b.spec.Options))
	for k, v := range b.spec.Options {
		options[k] = v
	}

	return map[string]any{
		"name":    b.spec.Name,
		"stage":   b.spec.Stage,
		"when":    when,
		"options": options,
	}
}

// Excluded reports whether when is never, the only policy does not match or the except policy matches.
func (b *Build) Excluded() bool {
	if b.spec.When == WhenNever {
		return true
	}

	only := refsPolicy(b.spec.Only)
	if b.spec.Only == nil {
		only = DefaultOnly
	}

	if !only.matches(b.ctx) {
		return true
	}

	return refsPolicy(b.spec.Except).matches(b.ctx)
}
