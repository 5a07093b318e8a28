package seed

import (
	"regexp"
	"strings"
)

const (
	BranchesRef = "branches"
	TagsRef     = "tags"
)

// DefaultOnly is the only policy of a job that does not declare one.
var DefaultOnly = []string{BranchesRef, TagsRef}

// refsPolicy matches a context against an only/except refs list.
type refsPolicy []string

func (p refsPolicy) matches(ctx Context) bool {
	for _, pattern := range p {
		if matchRef(pattern, ctx) {
			return true
		}
	}

	return false
}

func matchRef(pattern string, ctx Context) bool {
	switch {
	case pattern == BranchesRef:
		return !ctx.Tag
	case pattern == TagsRef:
		return ctx.Tag
	case ctx.Source != "" && pattern == ctx.Source:
		return true
	case len(pattern) > 1 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/"):
		re, err := regexp.Compile(pattern[1 : len(pattern)-1])
		if err != nil {
			return false
		}

		return re.MatchString(ctx.Ref)
	}

	return pattern == ctx.Ref
}
