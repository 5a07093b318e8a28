package measure

import (
	"sync"
	"time"

	"github.com/askiada/go-cichain/pkg/chain/model"
)

type DefaultMeasure struct {
	mu      sync.RWMutex
	Links   map[string]Metric
	runs    map[model.State]int64
	elapsed time.Duration
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Links: make(map[string]Metric),
		runs:  make(map[model.State]int64),
	}
}

// AddMetric returns the metric of a link, creating it when missing.
func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.Links[name]; ok {
		return mt
	}

	mt := &DefaultMetric{
		mu:       &sync.Mutex{},
		outcomes: make(map[Outcome]int64),
	}
	m.Links[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Links[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[string]Metric, len(m.Links))
	for name, mt := range m.Links {
		res[name] = mt
	}

	return res
}

func (m *DefaultMeasure) AddRun(state model.State, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[state]++
	m.elapsed += elapsed
}

func (m *DefaultMeasure) Runs() map[model.State]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[model.State]int64, len(m.runs))
	for state, total := range m.runs {
		res[state] = total
	}

	return res
}

var _ Measure = (*DefaultMeasure)(nil)
