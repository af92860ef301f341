package worker

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/metrics"
)

func newTestPool(workers int) *Pool {
	return NewPool(Config{Workers: workers, Source: SourceExplicit}, "test")
}

func TestPoolExecutesEveryUnitExactlyOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 7, 64, 256} {
		for _, n := range []int{0, 1, 13, 500} {
			t.Run(fmt.Sprintf("workers=%d/n=%d", workers, n), func(t *testing.T) {
				counts := make([]atomic.Int32, n)
				units := make([]WorkUnit, n)
				for i := range units {
					units[i] = NewUnit(fmt.Sprintf("u%d", i), func(context.Context) error {
						counts[i].Add(1)
						return nil
					})
				}
				require.NoError(t, newTestPool(workers).Execute(context.Background(), units))
				for i := range counts {
					require.Equal(t, int32(1), counts[i].Load(), "unit %d", i)
				}
			})
		}
	}
}

func TestPoolIsolatesPanicsAndNeverAbortsEarly(t *testing.T) {
	var ran atomic.Int32
	units := []WorkUnit{
		NewUnit("ok-1", func(context.Context) error { ran.Add(1); return nil }),
		NewUnit("panic-1", func(context.Context) error { ran.Add(1); panic("boom") }),
		NewUnit("err-1", func(context.Context) error { ran.Add(1); return errors.New("bad input") }),
		NewUnit("panic-2", func(context.Context) error { ran.Add(1); var m map[string]int; m["x"] = 1; return nil }),
		NewUnit("ok-2", func(context.Context) error { ran.Add(1); return nil }),
	}
	err := newTestPool(2).Execute(context.Background(), units)
	require.Error(t, err)
	assert.Equal(t, int32(5), ran.Load())

	var agg *AggregatedError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, 3, agg.Len())
	assert.Equal(t, []string{"err-1", "panic-1", "panic-2"}, agg.Identifiers())

	failures := agg.Failures()
	assert.False(t, failures[0].Panic)
	assert.True(t, failures[1].Panic)
	assert.Equal(t, "panic: boom", failures[1].Message)
	assert.True(t, ferrors.HasCategory(failures[1].Err, ferrors.CategoryPanic))
	assert.True(t, ferrors.HasCategory(failures[0].Err, ferrors.CategoryUnit))
}

func TestPoolAggregationIsOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 1000
	var expected []string
	units := make([]WorkUnit, n)
	for i := range units {
		id := fmt.Sprintf("unit-%04d", i)
		switch rng.Intn(3) {
		case 0:
			units[i] = NewUnit(id, func(context.Context) error { return nil })
		case 1:
			expected = append(expected, id)
			units[i] = NewUnit(id, func(context.Context) error { return fmt.Errorf("failed %s", id) })
		default:
			expected = append(expected, id)
			units[i] = NewUnit(id, func(context.Context) error { panic(id) })
		}
	}
	rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })

	for _, workers := range []int{1, 3, 16} {
		err := newTestPool(workers).Execute(context.Background(), units)
		var agg *AggregatedError
		require.ErrorAs(t, err, &agg)
		got := agg.Identifiers()
		sort.Strings(expected)
		assert.Equal(t, expected, got, "workers=%d", workers)
	}
}

func TestPoolRespectsWorkerBound(t *testing.T) {
	const workers = 3
	var current, peak atomic.Int32
	units := make([]WorkUnit, 30)
	for i := range units {
		units[i] = NewUnit(fmt.Sprintf("u%d", i), func(context.Context) error {
			c := current.Add(1)
			for {
				p := peak.Load()
				if c <= p || peak.CompareAndSwap(p, c) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			current.Add(-1)
			return nil
		})
	}
	require.NoError(t, newTestPool(workers).Execute(context.Background(), units))
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}

func TestPoolDoesNotDispatchOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Int32
	err := newTestPool(2).Execute(ctx, []WorkUnit{NewUnit("u", func(context.Context) error { ran.Add(1); return nil })})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, ran.Load())
}

func TestPoolUnitsOutliveCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	units := []WorkUnit{
		NewUnit("cancel", func(context.Context) error { cancel(); return nil }),
		NewUnit("observer", func(uctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			return uctx.Err()
		}),
	}
	require.NoError(t, newTestPool(2).Execute(ctx, units))
}

func TestPoolReportsProgressAndMetrics(t *testing.T) {
	rec := &countingRecorder{}
	pool := newTestPool(4)
	pool.SetRecorder(rec)
	var mu sync.Mutex
	var seen []int
	pool.SetProgress(func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 10, total)
		seen = append(seen, done)
	})
	units := make([]WorkUnit, 10)
	for i := range units {
		units[i] = NewUnit(fmt.Sprintf("u%d", i), func(context.Context) error {
			if i == 0 {
				return errors.New("x")
			}
			return nil
		})
	}
	require.Error(t, pool.Execute(context.Background(), units))
	sort.Ints(seen)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, seen)
	assert.Equal(t, int32(9), rec.success.Load())
	assert.Equal(t, int32(1), rec.failed.Load())
	assert.Equal(t, int32(4), rec.workers.Load())
}

func TestPoolEmptyBatchSucceeds(t *testing.T) {
	require.NoError(t, newTestPool(1).Execute(context.Background(), nil))
}

func TestExecuteWithInjectedCollector(t *testing.T) {
	c := NewCollector()
	c.Add("earlier", errors.New("pre-existing"))
	err := newTestPool(1).ExecuteWith(context.Background(), []WorkUnit{
		NewUnit("later", func(context.Context) error { return errors.New("new") }),
	}, c)
	var agg *AggregatedError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, []string{"earlier", "later"}, agg.Identifiers())
}

type countingRecorder struct {
	metrics.NoopRecorder
	success, failed, panics, workers atomic.Int32
}

func (r *countingRecorder) IncUnitResult(_ string, res metrics.ResultLabel) {
	switch res {
	case metrics.ResultSuccess:
		r.success.Add(1)
	case metrics.ResultFailed:
		r.failed.Add(1)
	case metrics.ResultPanic:
		r.panics.Add(1)
	}
}

func (r *countingRecorder) SetWorkers(n int) { r.workers.Store(int32(n)) }

type brokenIdentifierUnit struct{ ran *atomic.Int32 }

func (u brokenIdentifierUnit) Identifier() string {
	var names map[string]string
	names["id"] = "boom"
	return names["id"]
}

func (u brokenIdentifierUnit) Execute(context.Context) error {
	u.ran.Add(1)
	return nil
}

func TestPoolIsolatesPanickingIdentifier(t *testing.T) {
	var ran atomic.Int32
	units := []WorkUnit{
		NewUnit("ok", func(context.Context) error { ran.Add(1); return nil }),
		brokenIdentifierUnit{ran: &ran},
		NewUnit("ok-too", func(context.Context) error { ran.Add(1); return nil }),
	}

	err := newTestPool(2).Execute(context.Background(), units)
	var agg *AggregatedError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, []string{"unit#1"}, agg.Identifiers())
	assert.True(t, agg.Failures()[0].Panic)
	assert.Equal(t, int32(2), ran.Load())
}

func TestPoolSurvivesPanickingProgress(t *testing.T) {
	pool := newTestPool(2)
	pool.SetProgress(func(int, int) { panic("progress") })
	var ran atomic.Int32
	units := make([]WorkUnit, 5)
	for i := range units {
		units[i] = NewUnit(fmt.Sprintf("u%d", i), func(context.Context) error { ran.Add(1); return nil })
	}
	require.NoError(t, pool.Execute(context.Background(), units))
	assert.Equal(t, int32(5), ran.Load())
}
