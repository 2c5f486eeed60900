package metrics

import "time"

// SearchMetric summarizes one search invocation.
type SearchMetric struct {
	Duration     time.Duration
	Iterations   int
	FullPlayouts int // rollouts that ran to a completely full board
	EarlyCutoffs int // rollouts ended by the double-skip stall check
}

// MoveMetric ties a search to the move it produced.
type MoveMetric struct {
	Step   int
	Player string
	Play   string
	SearchMetric
}

// GameMetric summarizes one complete game.
type GameMetric struct {
	Winner     string
	StartTime  time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start()
	AddIteration()
	AddFullPlayout()
	AddEarlyCutoff()
	Complete() SearchMetric
}

// The search is single-threaded, so plain counters suffice.
type collector struct {
	startTime    time.Time
	iterations   int
	fullPlayouts int
	earlyCutoffs int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.iterations = 0
	m.fullPlayouts = 0
	m.earlyCutoffs = 0
}

func (m *collector) AddIteration() {
	m.iterations++
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) AddEarlyCutoff() {
	m.earlyCutoffs++
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Iterations:   m.iterations,
		FullPlayouts: m.fullPlayouts,
		EarlyCutoffs: m.earlyCutoffs,
	}
}

type dummyCollector struct {
	iterations int
}

// NewDummyCollector counts iterations only, skipping timing and playout
// bookkeeping.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()          { m.iterations = 0 }
func (m *dummyCollector) AddIteration()   { m.iterations++ }
func (m *dummyCollector) AddFullPlayout() {}
func (m *dummyCollector) AddEarlyCutoff() {}
func (m *dummyCollector) Complete() SearchMetric {
	return SearchMetric{Iterations: m.iterations}
}
