// Package logfields names the structured attributes shared by every log line,
// so a run can be filtered by urn, phase or unit regardless of the emitter.
package logfields

import "log/slog"

func RunID(id string) slog.Attr   { return slog.String("run_id", id) }
func URN(urn string) slog.Attr    { return slog.String("urn", urn) }
func Phase(name string) slog.Attr { return slog.String("phase", name) }

// Unit is a work unit identifier such as "ItemIconTask::aws/compute/EC2".
func Unit(id string) slog.Attr { return slog.String("unit", id) }

// Group is a worker pool name: a phase, a create-resources sub-group or
// "diagrams".
func Group(name string) slog.Attr { return slog.String("group", name) }

func Path(p string) slog.Attr    { return slog.String("path", p) }
func File(f string) slog.Attr    { return slog.String("file", f) }
func Workers(n int) slog.Attr    { return slog.Int("workers", n) }
func Tool(name string) slog.Attr { return slog.String("tool", name) }
func Count(n int) slog.Attr      { return slog.Int("count", n) }
func URL(u string) slog.Attr     { return slog.String("url", u) }

func DurationMS(ms float64) slog.Attr { return slog.Float64("duration_ms", ms) }

// Error renders a nil error as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
