// Package watch re-runs a build whenever diagram sources change, either by
// listening for file system events or by polling on a fixed interval.
package watch
