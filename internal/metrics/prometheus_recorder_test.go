package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounts(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObservePhaseDuration("CreateResources", 150*time.Millisecond)
	pr.IncPhaseResult("CreateResources", ResultSuccess)
	pr.ObserveUnitDuration("RenderSources", 20*time.Millisecond)
	pr.IncUnitResult("RenderSources", ResultPanic)
	pr.IncUnitResult("RenderSources", ResultPanic)
	pr.SetWorkers(4)
	pr.IncDiagramResult(ResultSkipped)
	pr.ObserveRunDuration("library generate", time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]float64{}
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1, mf.GetName())
		m := mf.GetMetric()[0]
		switch {
		case m.GetCounter() != nil:
			byName[mf.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			byName[mf.GetName()] = m.GetGauge().GetValue()
		case m.GetHistogram() != nil:
			byName[mf.GetName()] = float64(m.GetHistogram().GetSampleCount())
		}
	}
	assert.Equal(t, map[string]float64{
		"plantuml_generator_phase_duration_seconds": 1,
		"plantuml_generator_phase_results_total":    1,
		"plantuml_generator_unit_duration_seconds":  1,
		"plantuml_generator_unit_results_total":     2,
		"plantuml_generator_workers":                4,
		"plantuml_generator_diagrams_total":         1,
		"plantuml_generator_run_duration_seconds":   1,
	}, byName)
}

func TestPrometheusRecorderWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetWorkers(8)
	path := filepath.Join(t.TempDir(), "generator.prom")

	require.NoError(t, pr.WriteTextfile(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "plantuml_generator_workers 8")
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.SetWorkers(1)
	pr.IncUnitResult("x", ResultFailed)
	assert.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}
