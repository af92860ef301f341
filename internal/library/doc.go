// Package library turns a resolved manifest into pipeline tasks and runs
// them: one task per generated artifact, from the library bootstrap down to
// the element snippets of every item.
package library
