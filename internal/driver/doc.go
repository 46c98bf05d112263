// Package driver runs the passes over persisted graph files. Every file is
// restored into its own arena and processed by exactly one goroutine, so
// independent files run in parallel without sharing state.
package driver
