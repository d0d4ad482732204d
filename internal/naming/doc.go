// Package naming derives output paths from input paths.
//
// Every stage writes its products next to its inputs or into a chosen
// output directory, with names derived mechanically from the dataset:
//
//	reads.fastq            → reads_clean.fastq       (trimmed)
//	<dataset>/             → aligned.sam, aligned.bam, filtered.bam,
//	                         filtered_sorted.bam     (align chain)
//	<dataset>/             → <dataset>_sorted.bam    (streamed align)
//
// Keeping the derivations here means a stage and its cleanup step can
// never disagree about what a file is called.
package naming
