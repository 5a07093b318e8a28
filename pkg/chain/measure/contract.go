package measure

import (
	"time"

	"github.com/askiada/go-cichain/pkg/chain/model"
)

type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
	AddRun(state model.State, elapsed time.Duration)
	Runs() map[model.State]int64
}

type Metric interface {
	AddDuration(elapsed time.Duration)
	AddOutcome(outcome Outcome)
	AVGDuration() time.Duration
	SetTotalDuration(totalDuration time.Duration)
	GetTotalDuration() time.Duration
	Total() int64
	Outcomes() map[Outcome]int64
}
