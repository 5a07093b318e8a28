package measure

import (
	"sync"
	"time"
)

// Outcome is how a link ended.
type Outcome string

const (
	OutcomePerformed Outcome = "performed"
	OutcomeBroken    Outcome = "broken"
	OutcomeFailed    Outcome = "failed"
)

type DefaultMetric struct {
	outcomes      map[Outcome]int64
	mu            *sync.Mutex
	TotalDuration time.Duration
	linkElapsed   time.Duration
	total         int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.linkElapsed += elapsed
}

func (mt *DefaultMetric) AddOutcome(outcome Outcome) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.outcomes[outcome]++
}

func (mt *DefaultMetric) SetTotalDuration(totalDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.TotalDuration = totalDuration
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.TotalDuration
}

func (mt *DefaultMetric) Total() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.linkElapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) Outcomes() map[Outcome]int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	res := make(map[Outcome]int64, len(mt.outcomes))
	for outcome, total := range mt.outcomes {
		res[outcome] = total
	}

	return res
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Hour)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
