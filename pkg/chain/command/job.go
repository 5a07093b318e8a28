package command

import (
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Refs is an only/except policy. It accepts both the list shorthand and the refs mapping:
//
//	only: [main, tags]
//	only:
//	  refs: [main, tags]
type Refs struct {
	Refs []string `yaml:"refs"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Refs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return errors.Wrap(node.Decode(&r.Refs), "unable to decode refs list")
	case yaml.ScalarNode:
		var ref string
		err := node.Decode(&ref)
		if err != nil {
			return errors.Wrap(err, "unable to decode ref")
		}

		r.Refs = []string{ref}

		return nil
	case yaml.MappingNode:
		type plain Refs

		return errors.Wrap(node.Decode((*plain)(r)), "unable to decode refs mapping")
	case yaml.DocumentNode, yaml.AliasNode:
	}

	return errors.Errorf("line %d: refs must be a list or a mapping", node.Line)
}

// Contains reports whether ref is listed.
func (r *Refs) Contains(ref string) bool {
	if r == nil {
		return false
	}

	for _, curr := range r.Refs {
		if curr == ref {
			return true
		}
	}

	return false
}

// Job is the definition of one job parsed from the CI configuration.
type Job struct {
	Name   string   `yaml:"-"`
	Stage  string   `yaml:"stage,omitempty"`
	Script []string `yaml:"script,omitempty"`
	When   string   `yaml:"when,omitempty"`
	Only   *Refs    `yaml:"only,omitempty"`
	Except *Refs    `yaml:"except,omitempty"`
	// Attributes holds every other key of the job.
	Attributes map[string]any `yaml:",inline"`
}

// Jobs maps job names to their definition. A nil Jobs has never been parsed.
type Jobs map[string]*Job

// Names returns the sorted job names.
func (j Jobs) Names() []string {
	names := make([]string, 0, len(j))
	for name := range j {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Retain removes every job keep returns false for.
func (j Jobs) Retain(keep func(name string, job *Job) bool) {
	for name, job := range j {
		if !keep(name, job) {
			delete(j, name)
		}
	}
}
