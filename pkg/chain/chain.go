package chain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/askiada/go-cichain/pkg/chain/command"
	"github.com/askiada/go-cichain/pkg/chain/model"
)

// Chain is an ordered list of links.
type Chain struct {
	links []Link
	infos []*model.LinkInfo
	names map[string]struct{}
	opts  []model.ChainOption
}

// Result is the outcome of a run.
type Result struct {
	RunID string
	State model.State
	// BrokenAt is the name of the link that stopped the run early.
	BrokenAt string
	// Executed lists the links performed, in order, the failing one included.
	Executed []string
	Duration time.Duration
}

// New creates a new chain.
func New(opts ...model.ChainOption) (*Chain, error) {
	ch := &Chain{
		names: make(map[string]struct{}),
		opts:  opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply chain option")
		}
	}

	return ch, nil
}

// AddLink appends link to the chain.
func AddLink(ch *Chain, link Link) error {
	if ch == nil {
		return ErrChainMustBeSet
	}
	if link == nil {
		return ErrLinkMustBeSet
	}
	if link.Name() == model.StartLink.Name || link.Name() == model.EndLink.Name {
		return errors.Wrap(ErrReservedLinkName, link.Name())
	}
	if _, ok := ch.names[link.Name()]; ok {
		return errors.Wrap(ErrDuplicateLink, link.Name())
	}

	info := &model.LinkInfo{Name: link.Name(), Index: len(ch.links)}
	parent := model.StartLink
	if len(ch.infos) > 0 {
		parent = ch.infos[len(ch.infos)-1]
	}

	for _, opt := range ch.opts {
		err := opt.PrepareLink(parent, info)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare link function")
		}
	}

	ch.names[link.Name()] = struct{}{}
	ch.links = append(ch.links, link)
	ch.infos = append(ch.infos, info)

	return nil
}

// Links returns the link names in order.
func (ch *Chain) Links() []string {
	names := make([]string, len(ch.infos))
	for i, info := range ch.infos {
		names[i] = info.Name
	}

	return names
}

// Run performs the links in order against cmd.
//
// The run stops after the first link that breaks, which is not an error, or the first link that
// fails. A link error is returned unmodified. The context is only checked between links.
func (ch *Chain) Run(ctx context.Context, cmd *command.Command) (*Result, error) {
	if ch == nil {
		return nil, ErrChainMustBeSet
	}
	if cmd == nil {
		return nil, ErrCommandMustBeSet
	}

	start := time.Now()
	run := &model.RunInfo{
		ID:        uuid.NewString(),
		CommandID: cmd.ID,
		Kind:      cmd.Pipeline.Kind.String(),
		State:     model.StatePending,
	}
	res := &Result{RunID: run.ID}

	runCtx, runErr := ch.beforeRun(ctx, run)
	if runErr != nil {
		run.State = model.StateFailed
		run.Err = runErr
	} else {
		run.State = model.StateRunning
		runErr = ch.runLinks(runCtx, run, res, cmd)
	}

	res.State = run.State
	res.BrokenAt = run.BrokenAt
	res.Duration = time.Since(start)

	err := ch.finishRun(runCtx, run, res.Duration)
	if runErr != nil {
		return res, runErr
	}
	if err != nil {
		return res, err
	}

	return res, nil
}

func (ch *Chain) runLinks(ctx context.Context, run *model.RunInfo, res *Result, cmd *command.Command) error {
	for i, link := range ch.links {
		info := ch.infos[i]
		run.Current = info

		if ctx.Err() != nil {
			run.State = model.StateFailed
			run.Err = ctx.Err()

			return ctx.Err()
		}

		linkCtx, err := ch.beforeLink(ctx, run, info)
		if err != nil {
			run.State = model.StateFailed
			run.Err = err

			// Options whose BeforeLink already ran close what they opened for the link.
			_ = ch.afterLink(linkCtx, run, info, 0, err)

			return err
		}

		startLink := time.Now()
		linkErr := link.Perform(linkCtx, cmd)
		elapsed := time.Since(startLink)
		res.Executed = append(res.Executed, info.Name)

		if linkErr != nil {
			run.State = model.StateFailed
			run.Err = linkErr
		} else if link.Break(cmd) {
			run.State = model.StateBroken
			run.BrokenAt = info.Name
		}

		err = ch.afterLink(linkCtx, run, info, elapsed, linkErr)
		if linkErr != nil {
			return linkErr
		}
		if err != nil {
			run.State = model.StateFailed
			run.Err = err

			return err
		}
		if run.State == model.StateBroken {
			return nil
		}
	}

	run.Current = model.EndLink
	run.State = model.StateCompleted

	return nil
}

func (ch *Chain) beforeRun(ctx context.Context, run *model.RunInfo) (context.Context, error) {
	for _, opt := range ch.opts {
		optCtx, err := opt.BeforeRun(ctx, run)
		if err != nil {
			return ctx, errors.Wrap(err, "unable to run before run function")
		}

		ctx = optCtx
	}

	return ctx, nil
}

func (ch *Chain) beforeLink(ctx context.Context, run *model.RunInfo, link *model.LinkInfo) (context.Context, error) {
	for _, opt := range ch.opts {
		optCtx, err := opt.BeforeLink(ctx, run, link)
		if err != nil {
			return ctx, errors.Wrapf(err, "unable to run before link function for %s", link.Name)
		}

		ctx = optCtx
	}

	return ctx, nil
}

func (ch *Chain) afterLink(ctx context.Context, run *model.RunInfo, link *model.LinkInfo, elapsed time.Duration, linkErr error) error {
	for _, opt := range ch.opts {
		err := opt.AfterLink(ctx, run, link, elapsed, linkErr)
		if err != nil {
			return errors.Wrapf(err, "unable to run after link function for %s", link.Name)
		}
	}

	return nil
}

func (ch *Chain) finishRun(ctx context.Context, run *model.RunInfo, elapsed time.Duration) error {
	for _, opt := range ch.opts {
		err := opt.Finish(ctx, run, elapsed)
		if err != nil {
			return errors.Wrap(err, "unable to finish chain option")
		}
	}

	return nil
}
