package plantuml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
)

// maxOutputInMessage bounds the tool output appended to error messages.
const maxOutputInMessage = 2048

// waitDelay bounds the wait for output pipes once a killed tool's children
// still hold them.
const waitDelay = 2 * time.Second

// Runner executes an external program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec. A positive Timeout kills a program
// still running after that duration.
type ExecRunner struct {
	Timeout time.Duration
}

// Run executes name with args. A missing binary, a non-zero exit or a
// timeout yields an external_tool error whose "output" context holds stderr
// (or stdout when stderr is empty).
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, ferrors.ExternalToolError(name+" not found").
			WithCause(err).
			WithContext("tool", name).
			UserAction().
			Build()
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	// #nosec G204 -- binaries and arguments come from the generator configuration.
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	slog.Debug("Running external tool", logfields.Tool(name), slog.Any("args", args))
	started := time.Now()
	err := cmd.Run()
	slog.Debug("External tool finished",
		logfields.Tool(name),
		logfields.DurationMS(float64(time.Since(started).Milliseconds())))

	if err == nil {
		return stdout.Bytes(), nil
	}

	output := strings.TrimSpace(stderr.String())
	if output == "" {
		output = strings.TrimSpace(stdout.String())
	}
	message := name + " failed"
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		message = fmt.Sprintf("%s timed out after %s", name, r.Timeout)
	}
	return nil, toolError(name, message, output, err)
}

func toolError(tool, message, output string, cause error) error {
	if output != "" {
		tail := output
		if len(tail) > maxOutputInMessage {
			tail = "..." + tail[len(tail)-maxOutputInMessage:]
		}
		message += "\n" + tail
	}
	return ferrors.ExternalToolError(message).
		WithCause(cause).
		WithContext("tool", tool).
		WithContext("output", output).
		Build()
}
