package links_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-cichain/pkg/chain/command"
	"github.com/askiada/go-cichain/pkg/chain/links"
	"github.com/askiada/go-cichain/pkg/chain/seed"
)

func stageNames(stages []*seed.Stage) map[string][]string {
	res := make(map[string][]string, len(stages))
	for _, stage := range stages {
		for _, build := range stage.Seeds() {
			res[stage.Name()] = append(res[stage.Name()], build.Name())
		}
	}

	return res
}

func TestPopulate(t *testing.T) {
	t.Parallel()

	jobs := command.Jobs{
		"compile": {Stage: "build", Script: []string{"make"}},
		"unit":    {},
		"release": {Stage: "deploy", Only: &command.Refs{Refs: []string{"tags"}}},
		"manual":  {Stage: "deploy", When: seed.WhenNever},
	}
	cmd := command.New(command.Pipeline{Ref: "main", Kind: command.KindPush}, command.WithJobs(jobs))

	link := links.NewPopulate()
	require.NoError(t, link.Perform(t.Context(), cmd))

	assert.False(t, link.Break(cmd))
	assert.Equal(t, map[string][]string{"build": {"compile"}, "test": {"unit"}}, stageNames(cmd.Seeds))

	compile := cmd.Seeds[0].Seeds()[0].Attributes()
	assert.Equal(t, map[string]any{"script": []string{"make"}}, compile["options"])
}

func TestPopulateDeclaredStages(t *testing.T) {
	t.Parallel()

	cmd := command.New(command.Pipeline{Ref: "main"},
		command.WithStages("lint", "test"),
		command.WithJobs(command.Jobs{"vet": {Stage: "lint"}, "unit": {}}),
	)

	require.NoError(t, links.NewPopulate().Perform(t.Context(), cmd))

	require.Len(t, cmd.Seeds, 2)
	assert.Equal(t, "lint", cmd.Seeds[0].Name())
	assert.Equal(t, "test", cmd.Seeds[1].Name())
}

func TestPopulateNothingSurvives(t *testing.T) {
	t.Parallel()

	cmd := command.New(command.Pipeline{Ref: "main"},
		command.WithJobs(command.Jobs{"release": {Only: &command.Refs{Refs: []string{"tags"}}}}),
	)

	link := links.NewPopulate()
	require.NoError(t, link.Perform(t.Context(), cmd))

	assert.Equal(t, []string{links.NoJobsError}, cmd.Errors())
	assert.True(t, link.Break(cmd))
	assert.Empty(t, cmd.Seeds)
}

func TestPopulateUnknownStage(t *testing.T) {
	t.Parallel()

	cmd := command.New(command.Pipeline{Ref: "main"}, command.WithJobs(command.Jobs{"unit": {Stage: "qa"}}))

	link := links.NewPopulate()
	require.NoError(t, link.Perform(t.Context(), cmd))

	require.Len(t, cmd.Errors(), 1)
	assert.Contains(t, cmd.Errors()[0], "unknown stage")
	assert.True(t, link.Break(cmd))
}

func TestPopulateMissingJobs(t *testing.T) {
	t.Parallel()

	err := links.NewPopulate().Perform(t.Context(), command.New(command.Pipeline{}))
	require.ErrorIs(t, err, command.ErrMissingPrecondition)
}

func TestPopulateOnlyWithoutRefs(t *testing.T) {
	t.Parallel()

	cmd := parse(t, `
build:
  script: [make]
  only:
    variables: [$FOO]
lint:
  script: [lint]
  only:
    changes: ["*.go"]
`)
	cmd.Pipeline.Kind = command.KindPush

	link := links.NewPopulate()
	require.NoError(t, link.Perform(t.Context(), cmd))

	assert.Empty(t, cmd.Errors())
	assert.False(t, link.Break(cmd))
	assert.Equal(t, map[string][]string{"test": {"build", "lint"}}, stageNames(cmd.Seeds))
}

func TestPopulateCopiesRefs(t *testing.T) {
	t.Parallel()

	cmd := command.New(command.Pipeline{Ref: "main"}, command.WithJobs(command.Jobs{
		"unit": {
			Only:   &command.Refs{Refs: []string{"main"}},
			Except: &command.Refs{Refs: []string{"tags"}},
		},
	}))
	require.NoError(t, links.NewPopulate().Perform(t.Context(), cmd))

	cmd.Jobs["unit"].Only.Refs[0] = "develop"
	cmd.Jobs["unit"].Except.Refs[0] = "main"

	assert.Equal(t, map[string][]string{"test": {"unit"}}, stageNames(cmd.Seeds))
}
