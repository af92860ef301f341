package metrics

import "time"

// ResultLabel is the "result" label of the outcome counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultPanic   ResultLabel = "panic"
	ResultSkipped ResultLabel = "skipped"
)

// Recorder receives the measurements of a generator run. Phases come from
// the pipeline, batches are worker pool names and diagram results come from
// the incremental builder.
type Recorder interface {
	ObservePhaseDuration(phase string, d time.Duration)
	IncPhaseResult(phase string, result ResultLabel)
	ObserveUnitDuration(batch string, d time.Duration)
	IncUnitResult(batch string, result ResultLabel)
	SetWorkers(n int)
	IncDiagramResult(result ResultLabel)
	ObserveRunDuration(command string, d time.Duration)
}

// NoopRecorder discards everything. It is the default of every component.
type NoopRecorder struct{}

func (NoopRecorder) ObservePhaseDuration(string, time.Duration) {}
func (NoopRecorder) IncPhaseResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveUnitDuration(string, time.Duration)  {}
func (NoopRecorder) IncUnitResult(string, ResultLabel)          {}
func (NoopRecorder) SetWorkers(int)                             {}
func (NoopRecorder) IncDiagramResult(ResultLabel)               {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration)   {}
