package drawer

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-cichain/pkg/chain/measure"
	"github.com/askiada/go-cichain/pkg/chain/model"
)

type chainDrawer struct {
	Drawer
	mu sync.Mutex
	m  measure.Measure
}

func (cd *chainDrawer) New() error {
	err := cd.AddLink(model.StartLink.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start link to drawer")
	}
	err = cd.AddLink(model.EndLink.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end link to drawer")
	}

	return cd.AddEdge(model.StartLink.Name, model.EndLink.Name)
}

func (cd *chainDrawer) PrepareLink(parentLink, link *model.LinkInfo) error {
	err := cd.AddLink(link.Name)
	if err != nil {
		return err
	}
	err = cd.RemoveEdge(parentLink.Name, model.EndLink.Name)
	if err != nil {
		return err
	}
	err = cd.AddEdge(parentLink.Name, link.Name)
	if err != nil {
		return err
	}

	return cd.AddEdge(link.Name, model.EndLink.Name)
}

func (cd *chainDrawer) BeforeRun(ctx context.Context, _ *model.RunInfo) (context.Context, error) {
	return ctx, nil
}

func (cd *chainDrawer) BeforeLink(ctx context.Context, _ *model.RunInfo, _ *model.LinkInfo) (context.Context, error) {
	return ctx, nil
}

func (cd *chainDrawer) AfterLink(context.Context, *model.RunInfo, *model.LinkInfo, time.Duration, error) error {
	return nil
}

func (cd *chainDrawer) Finish(_ context.Context, run *model.RunInfo, totalDuration time.Duration) error {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	err := cd.SetTotalTime(model.EndLink.Name, totalDuration)
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	if cd.m != nil {
		err = cd.AddMeasure(cd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	switch run.State {
	case model.StateBroken:
		err = cd.MarkLink(run.BrokenAt, run.State)
	case model.StateFailed:
		if run.Current != nil {
			err = cd.MarkLink(run.Current.Name, run.State)
		}
	case model.StatePending, model.StateRunning, model.StateCompleted:
	}
	if err != nil {
		return errors.Wrap(err, "unable to mark link")
	}

	err = cd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw chain")
	}

	return nil
}

// ChainDrawer draws the chain after every run. When measure is set, links are
// labelled and coloured with their average duration.
func ChainDrawer(drawer Drawer, measure measure.Measure) model.ChainOption {
	return &chainDrawer{Drawer: drawer, m: measure}
}
