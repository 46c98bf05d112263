// Package diag defines the diagnostic model shared by the graph passes and
// the driver.
//
// A Diagnostic carries a severity, a stable Code, a message, the source
// location of the offending object and the object's id inside its arena.
// Producers emit through a Reporter (usually via ReportBuilder) so that
// storage, filtering and deduplication stay out of the passes. BagReporter
// collects into a Bag, which supports sorting, deduplication and limits.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
