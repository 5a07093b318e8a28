package metrics

import (
	"context"
	"time"

	"github.com/askiada/go-cichain/pkg/chain/model"
)

type chainMetrics struct {
	*Metrics
}

func (cm *chainMetrics) New() error {
	return nil
}

func (cm *chainMetrics) PrepareLink(_, _ *model.LinkInfo) error {
	return nil
}

func (cm *chainMetrics) BeforeRun(ctx context.Context, _ *model.RunInfo) (context.Context, error) {
	cm.ActiveRuns.Inc()

	return ctx, nil
}

func (cm *chainMetrics) BeforeLink(ctx context.Context, _ *model.RunInfo, _ *model.LinkInfo) (context.Context, error) {
	return ctx, nil
}

func (cm *chainMetrics) AfterLink(_ context.Context, run *model.RunInfo, link *model.LinkInfo, elapsed time.Duration, linkErr error) error {
	cm.LinkDurationSeconds.WithLabelValues(link.Name).Observe(elapsed.Seconds())

	switch {
	case linkErr != nil:
		cm.LinkFailuresTotal.WithLabelValues(link.Name).Inc()
	case run.State == model.StateBroken:
		cm.LinkBreaksTotal.WithLabelValues(link.Name).Inc()
	}

	return nil
}

func (cm *chainMetrics) Finish(_ context.Context, run *model.RunInfo, _ time.Duration) error {
	cm.ActiveRuns.Dec()
	cm.RunsTotal.WithLabelValues(string(run.State), run.Kind).Inc()

	return nil
}

// ChainMetrics records runs and links into m.
func ChainMetrics(m *Metrics) model.ChainOption {
	return &chainMetrics{m}
}
