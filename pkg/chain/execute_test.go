package chain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-cichain/pkg/chain"
	"github.com/askiada/go-cichain/pkg/chain/command"
	"github.com/askiada/go-cichain/pkg/chain/model"
)

func TestRunAll(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":    {concurrent: 1},
		"sequential v2": {concurrent: 0},
		"concurrent 4":  {concurrent: 4},
		"concurrent 50": {concurrent: 50},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			link := &spyLink{name: "first"}
			ch := newChain(t, link, chain.LinkFunc("tag", func(_ context.Context, cmd *command.Command) error {
				cmd.Warn(cmd.Pipeline.Ref)

				return nil
			}))

			cmds := make([]*command.Command, 20)
			for i := range cmds {
				cmds[i] = command.New(command.Pipeline{Ref: "ref-" + string(rune('a'+i))})
			}

			results, err := chain.RunAll(t.Context(), ch, cmds, tc.concurrent)
			require.NoError(t, err)
			require.Len(t, results, len(cmds))

			for i, res := range results {
				assert.Equal(t, model.StateCompleted, res.State)
				assert.Equal(t, []string{"first", cmds[i].Pipeline.Ref}, cmds[i].Warnings())
			}

			assert.Equal(t, len(cmds), link.Calls())
		})
	}
}

func TestRunAllError(t *testing.T) {
	t.Parallel()

	ch := newChain(t, chain.LinkFunc("failing", func(_ context.Context, cmd *command.Command) error {
		if cmd.Pipeline.Ref == "bad" {
			return assert.AnError
		}

		return nil
	}))

	cmds := []*command.Command{
		command.New(command.Pipeline{Ref: "good"}),
		command.New(command.Pipeline{Ref: "bad"}),
	}

	_, err := chain.RunAll(t.Context(), ch, cmds, 2)
	require.ErrorIs(t, err, assert.AnError)
}

func TestRunAllSharedCommand(t *testing.T) {
	t.Parallel()

	link := &spyLink{name: "first"}
	cmd := newCommand()

	_, err := chain.RunAll(t.Context(), newChain(t, link), []*command.Command{cmd, cmd}, 2)
	require.Error(t, err)
	assert.Zero(t, link.Calls())
}

func TestRunAllNil(t *testing.T) {
	t.Parallel()

	_, err := chain.RunAll(t.Context(), nil, nil, 1)
	require.ErrorIs(t, err, chain.ErrChainMustBeSet)

	_, err = chain.RunAll(t.Context(), newChain(t), []*command.Command{nil}, 1)
	require.ErrorIs(t, err, chain.ErrCommandMustBeSet)
}
