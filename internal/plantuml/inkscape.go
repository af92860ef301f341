package plantuml

import (
	"context"
	"fmt"
	"strconv"
)

// Inkscape converts vector icons to raster images.
type Inkscape struct {
	Binary string
	Runner Runner
}

// NewInkscape builds a converter; a nil runner runs the real binary.
func NewInkscape(binary string, runner Runner) *Inkscape {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Inkscape{Binary: binary, Runner: runner}
}

// Convert exports src to dst at the given height; the width follows the
// aspect ratio and the format follows the dst extension.
func (i *Inkscape) Convert(ctx context.Context, src, dst string, height int) error {
	_, err := i.Runner.Run(ctx, i.Binary,
		src,
		"--export-filename="+dst,
		"--export-height="+strconv.Itoa(height),
	)
	if err != nil {
		return fmt.Errorf("convert %s: %w", src, err)
	}
	return nil
}
