package links

import (
	"context"

	"github.com/askiada/go-cichain/pkg/chain/command"
	"github.com/askiada/go-cichain/pkg/chain/seed"
)

const (
	PopulateName = "populate"

	// NoJobsError is recorded when no job survives.
	NoJobsError = "No stages / jobs for this pipeline."
)

// Populate builds the stage seeds of the surviving jobs.
type Populate struct{}

func NewPopulate() *Populate {
	return &Populate{}
}

func (*Populate) Name() string {
	return PopulateName
}

func (*Populate) Perform(_ context.Context, cmd *command.Command) error {
	jobs, err := cmd.RequireJobs()
	if err != nil {
		return err
	}

	stages := cmd.Stages
	if stages == nil {
		stages = withEdgeStages(DefaultStages)
	}

	specs := make([]seed.JobSpec, 0, len(jobs))
	for _, name := range jobs.Names() {
		specs = append(specs, jobSpec(name, jobs[name]))
	}

	pipe, err := seed.NewPipeline(cmd.SeedContext(), stages, specs)
	if err != nil {
		cmd.Error(err.Error())

		return nil
	}

	if pipe.Excluded() {
		cmd.Error(NoJobsError)

		return nil
	}

	cmd.Seeds = pipe.Stages()

	return nil
}

func (*Populate) Break(cmd *command.Command) bool {
	return cmd.HasErrors()
}

func jobSpec(name string, job *command.Job) seed.JobSpec {
	spec := seed.JobSpec{Name: name, Stage: DefaultJobStage}
	if job == nil {
		return spec
	}

	if job.Stage != "" {
		spec.Stage = job.Stage
	}

	spec.When = job.When
	// An only block without refs, e.g. only:variables, leaves the default refs policy.
	if job.Only != nil && len(job.Only.Refs) > 0 {
		spec.Only = append([]string{}, job.Only.Refs...)
	}
	if job.Except != nil && len(job.Except.Refs) > 0 {
		spec.Except = append([]string{}, job.Except.Refs...)
	}

	spec.Options = make(map[string]any, len(job.Attributes)+1)
	for k, v := range job.Attributes {
		spec.Options[k] = v
	}
	if len(job.Script) > 0 {
		spec.Options["script"] = job.Script
	}

	return spec
}
