package seed

// Stage is the seed of one stage and its builds.
type Stage struct {
	name     string
	position int
	builds   []*Build
}

func NewStage(name string, position int, builds []*Build) *Stage {
	return &Stage{name: name, position: position, builds: builds}
}

func (s *Stage) Name() string {
	return s.name
}

// Seeds returns the included builds.
func (s *Stage) Seeds() []*Build {
	included := make([]*Build, 0, len(s.builds))
	for _, build := range s.builds {
		if !build.Excluded() {
			included = append(included, build)
		}
	}

	return included
}

func (s *Stage) Attributes() map[string]any {
	return map[string]any{
		"name":     s.name,
		"position": s.position,
		"size":     len(s.Seeds()),
	}
}

// Excluded reports whether no build of the stage is included.
func (s *Stage) Excluded() bool {
	return len(s.Seeds()) == 0
}
