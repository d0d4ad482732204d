// Package proc runs external sequencing tools and captures their
// output into per-dataset log files.
//
// Runner is the single seam between the stages and the operating
// system. Its two methods cover both invocation shapes the pipeline
// needs:
//
//   - Run starts one tool and waits for it.
//   - RunPipe streams one tool's stdout into another, holding the
//     downstream tool back until the stream shows a real alignment
//     record. A header-only stream means the downstream tool never
//     starts at all, so an empty alignment cannot leave a bogus
//     output file behind.
//
// Every invocation appends a "+ tool args" trace line and the tool's
// combined output to the task's log file, so a failed dataset can be
// diagnosed without rerunning anything.
//
// Failures are reported as *ToolError, which distinguishes a tool
// that could not start from one that ran and exited non-zero.
package proc
