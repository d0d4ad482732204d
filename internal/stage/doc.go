// Package stage maps tasks to external tool invocations, one file per
// pipeline stage.
//
// Each stage implements the same two-method contract: Plan discovers
// the stage's work units and Run drives the tools for one of them,
// always returning an outcome rather than an error. The six shapes:
//
//	fetch         one download per accession read from a list file
//	unpack        one extraction per archive file found in the tree
//	trim          one trimmer call per dataset, single or paired shape
//	qc            one report per input file into a shared directory
//	align         materialize SAM, then convert, filter, sort, index
//	align-stream  aligner stdout piped straight into the sorter
//
// A failure inside a multi-step stage aborts only that task's
// remaining steps; whatever was already produced stays on disk for
// postmortem inspection. Optional input deletion happens strictly
// after success, and its failures are warnings on the outcome, never
// a status change.
package stage
