package seed

import "github.com/pkg/errors"

// ErrUnknownStage is returned when a job references a stage that is not declared.
var ErrUnknownStage = errors.New("unknown stage")

// Pipeline is the seed of a whole pipeline: its stages in declared order.
type Pipeline struct {
	stages []*Stage
}

// NewPipeline groups jobs by stage, keeping the declared stage order and the job order within a stage.
func NewPipeline(ctx Context, stages []string, jobs []JobSpec) (*Pipeline, error) {
	position := make(map[string]int, len(stages))
	for i, name := range stages {
		position[name] = i
	}

	builds := make([][]*Build, len(stages))
	for _, job := range jobs {
		idx, ok := position[job.Stage]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownStage, "job %s: %s", job.Name, job.Stage)
		}

		builds[idx] = append(builds[idx], NewBuild(ctx, job))
	}

	pipe := &Pipeline{stages: make([]*Stage, len(stages))}
	for i, name := range stages {
		pipe.stages[i] = NewStage(name, i, builds[i])
	}

	return pipe, nil
}

// Stages returns the included stages.
func (p *Pipeline) Stages() []*Stage {
	included := make([]*Stage, 0, len(p.stages))
	for _, stage := range p.stages {
		if !stage.Excluded() {
			included = append(included, stage)
		}
	}

	return included
}

// Size returns the number of included builds.
func (p *Pipeline) Size() int {
	size := 0
	for _, stage := range p.stages {
		size += len(stage.Seeds())
	}

	return size
}

func (p *Pipeline) Attributes() map[string]any {
	names := make([]string, 0, len(p.stages))
	for _, stage := range p.Stages() {
		names = append(names, stage.Name())
	}

	return map[string]any{
		"stages": names,
		"size":   p.Size(),
	}
}

// Excluded reports whether every stage is excluded.
func (p *Pipeline) Excluded() bool {
	return p.Size() == 0
}
