package library

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// fakeTools stands in for java and inkscape. It writes the files the real
// tools would write so later phases find them.
type fakeTools struct {
	mu        sync.Mutex
	calls     []string
	failOn    string // substring of a command line that fails
	partial   bool   // a failing render still leaves its image behind
	encodings int
	renders   int
	converts  int
}

func (f *fakeTools) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := name + " " + strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, line)
	f.mu.Unlock()
	if f.failOn != "" && strings.Contains(line, f.failOn) {
		if f.partial && len(args) >= 3 && args[0] == "-jar" {
			_ = os.WriteFile(strings.TrimSuffix(args[2], ".puml")+".png", []byte("pn"), 0o600)
		}
		return nil, errors.New("tool failed: " + line)
	}

	switch {
	case len(args) > 0 && strings.HasPrefix(name, "inkscape"):
		f.count(&f.converts)
		dst := strings.TrimPrefix(args[1], "--export-filename=")
		return nil, writeImage(dst, 100, 100)
	case len(args) >= 5 && args[2] == "-encodesprite":
		f.count(&f.encodings)
		base := strings.TrimSuffix(filepath.Base(args[4]), filepath.Ext(args[4]))
		return []byte("sprite $" + base + " [16x16/16z] {\nxyz\n}\n"), nil
	case len(args) >= 3 && args[0] == "-jar":
		f.count(&f.renders)
		src := args[2]
		return nil, os.WriteFile(strings.TrimSuffix(src, ".puml")+".png", []byte("png"), 0o600)
	}
	return nil, nil
}

func (f *fakeTools) count(n *int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*n++
}

func (f *fakeTools) counts() (encodings, renders, converts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.encodings, f.renders, f.converts
}

func writeImage(path string, w, h int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return imaging.Save(imaging.New(w, h, color.NRGBA{R: 200, A: 255}), path)
}
