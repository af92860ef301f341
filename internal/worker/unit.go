package worker

import "context"

// WorkUnit is the smallest independently schedulable piece of work.
type WorkUnit interface {
	// Identifier names the unit in failure reports and logs.
	Identifier() string
	// Execute does the work. A non-nil error marks the unit failed.
	Execute(ctx context.Context) error
}

type funcUnit struct {
	id string
	fn func(ctx context.Context) error
}

func (u funcUnit) Identifier() string                { return u.id }
func (u funcUnit) Execute(ctx context.Context) error { return u.fn(ctx) }

// NewUnit adapts a function into a WorkUnit.
func NewUnit(id string, fn func(ctx context.Context) error) WorkUnit {
	return funcUnit{id: id, fn: fn}
}
