package plantuml

import (
	"context"
	"strings"
	"sync"
)

type call struct {
	Name string
	Args []string
}

type fakeRunner struct {
	mu     sync.Mutex
	calls  []call
	stdout []byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Name: name, Args: args})
	return f.stdout, f.err
}

func (f *fakeRunner) commandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Name+" "+strings.Join(c.Args, " "))
	}
	return out
}
