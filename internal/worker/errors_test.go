package worker

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

func TestAggregatedErrorSingleFailureRendering(t *testing.T) {
	c := NewCollector()
	c.Add("ItemIconTask::c4/Element/Person", errors.New("inkscape exited with status 1"))
	err := c.Result()
	require.Error(t, err)
	assert.Equal(t, "Execution failed: [ItemIconTask::c4/Element/Person] inkscape exited with status 1", err.Error())
}

func TestAggregatedErrorMultiFailureRendering(t *testing.T) {
	c := NewCollector()
	c.Add("b", errors.New("second"))
	c.AddPanic("a", "index out of range")
	err := c.Result()
	require.Error(t, err)
	assert.Equal(t, "Execution failed with 2 errors:\n  1. [a] panic: index out of range\n  2. [b] second", err.Error())
}

func TestCollectorEmptyResultIsNil(t *testing.T) {
	c := NewCollector()
	c.Add("ignored", nil)
	assert.NoError(t, c.Result())
	assert.Zero(t, c.Len())
}

func TestCollectorConcurrentAppends(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add("unit", errors.New("x"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 200, c.Len())
}

func TestAggregatedErrorSnapshotIsImmutable(t *testing.T) {
	c := NewCollector()
	c.Add("a", errors.New("x"))
	first := c.Result()
	c.Add("b", errors.New("y"))

	var agg *AggregatedError
	require.ErrorAs(t, first, &agg)
	assert.Equal(t, 1, agg.Len())
}

func TestAggregatedErrorUnwrapsCauses(t *testing.T) {
	toolErr := ferrors.ExternalToolError("java failed").Build()
	c := NewCollector()
	c.Add("render", toolErr)
	err := c.Result()
	assert.ErrorIs(t, err, toolErr)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryUnit))
}
