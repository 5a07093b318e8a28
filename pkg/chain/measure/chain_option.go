package measure

import (
	"context"
	"time"

	"github.com/askiada/go-cichain/pkg/chain/model"
)

type chainMeasure struct {
	Measure
}

func (cm *chainMeasure) New() error {
	cm.AddMetric(model.StartLink.Name)
	cm.AddMetric(model.EndLink.Name)

	return nil
}

func (cm *chainMeasure) PrepareLink(_, link *model.LinkInfo) error {
	cm.AddMetric(link.Name)

	return nil
}

func (cm *chainMeasure) BeforeRun(ctx context.Context, _ *model.RunInfo) (context.Context, error) {
	return ctx, nil
}

func (cm *chainMeasure) BeforeLink(ctx context.Context, _ *model.RunInfo, _ *model.LinkInfo) (context.Context, error) {
	return ctx, nil
}

func (cm *chainMeasure) AfterLink(_ context.Context, run *model.RunInfo, link *model.LinkInfo, elapsed time.Duration, linkErr error) error {
	mt := cm.AddMetric(link.Name)
	mt.AddDuration(elapsed)

	switch {
	case linkErr != nil:
		mt.AddOutcome(OutcomeFailed)
	case run.State == model.StateBroken:
		mt.AddOutcome(OutcomeBroken)
	default:
		mt.AddOutcome(OutcomePerformed)
	}

	return nil
}

func (cm *chainMeasure) Finish(_ context.Context, run *model.RunInfo, totalDuration time.Duration) error {
	cm.AddRun(run.State, totalDuration)
	cm.AddMetric(model.EndLink.Name).SetTotalDuration(totalDuration)

	return nil
}

// ChainMeasure records link durations and outcomes into measure.
func ChainMeasure(measure Measure) model.ChainOption {
	return &chainMeasure{measure}
}
