package chain

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-cichain/pkg/chain/command"
)

// Execute builds a chain without options from links and runs it against cmd.
func Execute(ctx context.Context, cmd *command.Command, links ...Link) (*Result, error) {
	ch, err := New()
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		err := AddLink(ch, link)
		if err != nil {
			return nil, err
		}
	}

	return ch.Run(ctx, cmd)
}

// RunAll runs ch against every command, at most concurrent runs at a time.
// Every command must be distinct. It returns on the first failed run and cancels the others,
// which stop at their next link boundary.
func RunAll(ctx context.Context, ch *Chain, cmds []*command.Command, concurrent int) ([]*Result, error) {
	if ch == nil {
		return nil, ErrChainMustBeSet
	}

	if concurrent <= 0 {
		concurrent = 1
	}

	seen := make(map[*command.Command]struct{}, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			return nil, ErrCommandMustBeSet
		}
		if _, ok := seen[cmd]; ok {
			return nil, errors.Errorf("command %s is shared by several runs", cmd.ID)
		}

		seen[cmd] = struct{}{}
	}

	results := make([]*Result, len(cmds))
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)

	for i, cmd := range cmds {
		localI, localCmd := i, cmd
		errGrp.Go(func() error {
			res, err := ch.Run(dCtx, localCmd)
			results[localI] = res
			if err != nil {
				return errors.Wrapf(err, "command %s", localCmd.ID)
			}

			return nil
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return results, err
	}

	return results, nil
}
