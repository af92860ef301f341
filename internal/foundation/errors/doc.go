// Package errors classifies failures so the CLI can pick an exit code and
// decide what to log.
//
//	err := errors.ExternalToolError("plantuml exited with status 1").
//		WithCause(runErr).
//		WithContext("output", combined).
//		Build()
package errors
