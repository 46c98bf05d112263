// Package lint implements the read-only structural verifier. It runs as a
// set of leave hooks on a walk.Walker and reports through a diag.Reporter;
// it never changes the graph.
package lint
