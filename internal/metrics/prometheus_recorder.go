package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "plantuml_generator"

// PrometheusRecorder keeps run metrics in a registry. A nil recorder is
// valid and records nothing.
type PrometheusRecorder struct {
	reg           *prom.Registry
	phaseDuration *prom.HistogramVec
	phaseResults  *prom.CounterVec
	unitDuration  *prom.HistogramVec
	unitResults   *prom.CounterVec
	workers       prom.Gauge
	diagrams      *prom.CounterVec
	runDuration   *prom.HistogramVec
}

func histogram(name, help string, labels ...string) *prom.HistogramVec {
	return prom.NewHistogramVec(prom.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: prom.DefBuckets}, labels)
}

func counter(name, help string, labels ...string) *prom.CounterVec {
	return prom.NewCounterVec(prom.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

// NewPrometheusRecorder registers the generator metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	p := &PrometheusRecorder{
		reg:           reg,
		phaseDuration: histogram("phase_duration_seconds", "Duration of generation phases", "phase"),
		phaseResults:  counter("phase_results_total", "Generation phases by outcome", "phase", "result"),
		unitDuration:  histogram("unit_duration_seconds", "Duration of work units", "batch"),
		unitResults:   counter("unit_results_total", "Work units by outcome", "batch", "result"),
		workers: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Worker count of the last batch",
		}),
		diagrams:    counter("diagrams_total", "Diagram sources rendered, failed or skipped", "result"),
		runDuration: histogram("run_duration_seconds", "Duration of a command", "command"),
	}
	reg.MustRegister(p.phaseDuration, p.phaseResults, p.unitDuration, p.unitResults, p.workers, p.diagrams, p.runDuration)
	return p
}

func (p *PrometheusRecorder) ObservePhaseDuration(phase string, d time.Duration) {
	if p != nil {
		p.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
	}
}

func (p *PrometheusRecorder) IncPhaseResult(phase string, result ResultLabel) {
	if p != nil {
		p.phaseResults.WithLabelValues(phase, string(result)).Inc()
	}
}

func (p *PrometheusRecorder) ObserveUnitDuration(batch string, d time.Duration) {
	if p != nil {
		p.unitDuration.WithLabelValues(batch).Observe(d.Seconds())
	}
}

func (p *PrometheusRecorder) IncUnitResult(batch string, result ResultLabel) {
	if p != nil {
		p.unitResults.WithLabelValues(batch, string(result)).Inc()
	}
}

func (p *PrometheusRecorder) SetWorkers(n int) {
	if p != nil {
		p.workers.Set(float64(n))
	}
}

func (p *PrometheusRecorder) IncDiagramResult(result ResultLabel) {
	if p != nil {
		p.diagrams.WithLabelValues(string(result)).Inc()
	}
}

func (p *PrometheusRecorder) ObserveRunDuration(command string, d time.Duration) {
	if p != nil {
		p.runDuration.WithLabelValues(command).Observe(d.Seconds())
	}
}

// WriteTextfile writes the registry in the text exposition format read by
// the node exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
