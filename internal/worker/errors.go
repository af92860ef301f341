package worker

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

// Failure is one failed unit of a batch.
type Failure struct {
	Identifier string
	Message    string
	Panic      bool
	Err        error
}

// AggregatedError holds every failure of a batch. Only Collector.Result
// creates one, always with at least one failure, and it is immutable once
// returned.
type AggregatedError struct {
	failures []Failure
}

// Error renders the failures in a stable order, one per line when there is
// more than one.
func (e *AggregatedError) Error() string {
	if len(e.failures) == 1 {
		f := e.failures[0]
		return fmt.Sprintf("Execution failed: [%s] %s", f.Identifier, f.Message)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Execution failed with %d errors:", len(e.failures))
	for i, f := range e.failures {
		fmt.Fprintf(&b, "\n  %d. [%s] %s", i+1, f.Identifier, f.Message)
	}
	return b.String()
}

// Unwrap exposes the per-unit errors to errors.Is and errors.As.
func (e *AggregatedError) Unwrap() []error {
	errs := make([]error, 0, len(e.failures))
	for _, f := range e.failures {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Failures returns a copy of the failures sorted by identifier then message.
func (e *AggregatedError) Failures() []Failure {
	out := make([]Failure, len(e.failures))
	copy(out, e.failures)
	return out
}

// Len is the number of failures.
func (e *AggregatedError) Len() int { return len(e.failures) }

// Identifiers returns the failing unit identifiers in report order.
func (e *AggregatedError) Identifiers() []string {
	ids := make([]string, len(e.failures))
	for i, f := range e.failures {
		ids[i] = f.Identifier
	}
	return ids
}

// Collector is a goroutine-safe sink for unit failures.
type Collector struct {
	mu       sync.Mutex
	failures []Failure
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a unit that returned err. Nil errors are ignored.
func (c *Collector) Add(id string, err error) {
	if err == nil {
		return
	}
	unitErr := ferrors.WrapError(err, ferrors.CategoryUnit, "unit "+id+" failed").
		WithContext("unit", id).
		Build()
	c.append(Failure{Identifier: id, Message: err.Error(), Err: unitErr})
}

// AddPanic records a unit that panicked with value.
func (c *Collector) AddPanic(id string, value any) {
	msg := fmt.Sprintf("panic: %v", value)
	panicErr := ferrors.PanicError(msg).
		WithContext("unit", id).
		Build()
	c.append(Failure{Identifier: id, Message: msg, Panic: true, Err: panicErr})
}

func (c *Collector) append(f Failure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, f)
}

// Len returns the number of failures recorded so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failures)
}

// Result returns nil when nothing failed, otherwise an *AggregatedError
// snapshot of every failure.
func (c *Collector) Result() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.failures) == 0 {
		return nil
	}
	snapshot := make([]Failure, len(c.failures))
	copy(snapshot, c.failures)
	sort.SliceStable(snapshot, func(i, j int) bool {
		if snapshot[i].Identifier != snapshot[j].Identifier {
			return snapshot[i].Identifier < snapshot[j].Identifier
		}
		return snapshot[i].Message < snapshot[j].Message
	})
	return &AggregatedError{failures: snapshot}
}
