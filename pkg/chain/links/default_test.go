package links_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-cichain/pkg/chain"
	"github.com/askiada/go-cichain/pkg/chain/command"
	"github.com/askiada/go-cichain/pkg/chain/links"
	"github.com/askiada/go-cichain/pkg/chain/model"
)

func TestDefaultChain(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		pipeline command.Pipeline
		opts     []command.Option
		state    model.State
		brokenAt string
		stages   map[string][]string
		errors   []string
	}{
		"push": {
			pipeline: command.Pipeline{Ref: "main", Kind: command.KindPush},
			state:    model.StateCompleted,
			stages:   map[string][]string{"build": {"compile"}, "test": {"unit"}},
		},
		"chat": {
			pipeline: command.Pipeline{Ref: "main", Kind: command.KindChat},
			opts:     []command.Option{command.WithChatData("chatops")},
			state:    model.StateCompleted,
			stages:   map[string][]string{"deploy": {"chatops"}},
		},
		"chat unknown command": {
			pipeline: command.Pipeline{Ref: "main", Kind: command.KindChat},
			opts:     []command.Option{command.WithChatData("rollback")},
			state:    model.StateBroken,
			brokenAt: links.PopulateName,
			stages:   map[string][]string{},
			errors:   []string{links.NoJobsError},
		},
		"package push": {
			pipeline: command.Pipeline{Ref: "main", Kind: command.KindPackagePushEvent},
			state:    model.StateCompleted,
			stages:   map[string][]string{"deploy": {"publish"}},
		},
		"skipped": {
			pipeline: command.Pipeline{Ref: "main", Kind: command.KindPush},
			opts:     []command.Option{command.WithMessage("wip [skip ci]")},
			state:    model.StateBroken,
			brokenAt: links.SkipName,
			stages:   map[string][]string{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := append([]command.Option{command.WithContent([]byte(ciConfig))}, tc.opts...)
			cmd := command.New(tc.pipeline, opts...)

			res, err := chain.Execute(t.Context(), cmd, links.Default()...)
			require.NoError(t, err)

			assert.Equal(t, tc.state, res.State)
			assert.Equal(t, tc.brokenAt, res.BrokenAt)
			assert.Equal(t, tc.stages, stageNames(cmd.Seeds))
			assert.Equal(t, tc.errors, cmd.Errors())
		})
	}
}

func TestDefaultChainInvalidConfig(t *testing.T) {
	t.Parallel()

	cmd := command.New(command.Pipeline{Ref: "main"}, command.WithContent([]byte("unit: [")))

	res, err := chain.Execute(t.Context(), cmd, links.Default()...)
	require.NoError(t, err)

	assert.Equal(t, model.StateBroken, res.State)
	assert.Equal(t, links.ParseName, res.BrokenAt)
	assert.Equal(t, []string{links.SkipName, links.ParseName}, res.Executed)
}

func TestChainWithoutParse(t *testing.T) {
	t.Parallel()

	ch, err := chain.New()
	require.NoError(t, err)
	require.NoError(t, chain.AddLink(ch, links.NewRemoveUnwantedChatJobs()))
	require.NoError(t, chain.AddLink(ch, links.NewPopulate()))

	res, err := ch.Run(t.Context(), command.New(command.Pipeline{Kind: command.KindChat}))
	require.ErrorIs(t, err, command.ErrMissingPrecondition)
	assert.Equal(t, model.StateFailed, res.State)
	assert.Equal(t, []string{links.RemoveUnwantedChatJobsName}, res.Executed)
}

func TestDefaultChainOnlyWithoutRefs(t *testing.T) {
	t.Parallel()

	content := "build:\n  script: [make]\n  only:\n    variables: [$FOO]\n"
	cmd := command.New(command.Pipeline{Ref: "main", Kind: command.KindPush}, command.WithContent([]byte(content)))

	res, err := chain.Execute(t.Context(), cmd, links.Default()...)
	require.NoError(t, err)

	assert.Equal(t, model.StateCompleted, res.State)
	assert.Equal(t, map[string][]string{"test": {"build"}}, stageNames(cmd.Seeds))
}
