// Package task defines the unit of work flowing through a batch run
// and the bookkeeping gathered around it.
//
// A Task is one invocation target: a dataset directory (or a single
// file for file-grained stages) plus the inputs found in it. Running a
// task yields exactly one Outcome with one of five statuses:
//
//	completed          tools ran, output produced
//	completed-empty    tools ran, alignment held no records
//	tool-failed        a tool could not start or exited non-zero
//	filesystem-failed  a rename, delete, or write around the tools failed
//	skipped-no-input   dataset set aside before any tool ran
//
// Warnings on an Outcome record post-success annoyances, like a
// cleanup delete that found nothing; they never change the status.
//
// A Summary tallies outcomes for the final report and carries the
// run's identity.
package task
