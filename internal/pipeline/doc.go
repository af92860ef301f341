// Package pipeline runs a set of tasks through the five generation phases.
//
// Phases run strictly in order and each one is a full barrier: every task
// is dispatched to a worker pool for the phase, and the next phase starts
// only once the whole batch has joined. Inside CreateResources the tasks
// are further split into resource groups (item icons, sprite icons, sprite
// values) that are dispatched one after the other, because each group reads
// the files written by the previous one.
//
// A phase with at least one failed unit ends the run after the phase has
// completed. Files written by completed phases stay on disk.
package pipeline
