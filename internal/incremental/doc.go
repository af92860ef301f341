// Package incremental re-renders the diagram sources modified since the last
// fully successful generation. The time of that generation is persisted as a
// single watermark in the cache directory.
package incremental
