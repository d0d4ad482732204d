package naming

import (
	"path/filepath"
	"strings"
)

// Alignment products, always created inside the dataset directory.
// The filtered BAM is deleted after sorting; the SAM is deleted after
// conversion unless the alignment came back empty. The unfiltered
// aligned.bam and the final filtered_sorted.bam both remain.
const (
	AlignedSAM        = "aligned.sam"
	AlignedBAM        = "aligned.bam"
	FilteredBAM       = "filtered.bam"
	FilteredSortedBAM = "filtered_sorted.bam"
)

// Quality-trim report names, written next to the trimmed reads.
const (
	ReportHTML = "fastp_report.html"
	ReportJSON = "fastp_report.json"
)

// Stem returns the base name of path with suffix removed.
//
//	Stem("/data/ds1/reads_1.fastq", ".fastq") == "reads_1"
func Stem(path, suffix string) string {
	return strings.TrimSuffix(filepath.Base(path), suffix)
}

// Trimmed returns the output path for a quality-trimmed read file,
// alongside the input.
//
//	Trimmed("/data/ds1/reads_1.fastq", ".fastq") == "/data/ds1/reads_1_clean.fastq"
func Trimmed(path, suffix string) string {
	return filepath.Join(filepath.Dir(path), Stem(path, suffix)+"_clean.fastq")
}

// SortedBAM returns the streamed-alignment output path for a dataset
// directory, named after the dataset itself.
//
//	SortedBAM("/data/ds1") == "/data/ds1/ds1_sorted.bam"
func SortedBAM(dir string) string {
	return filepath.Join(dir, filepath.Base(dir)+"_sorted.bam")
}

// LogPath returns where a task's tool output is captured.
//
//	LogPath("/data/ds1", "ds1", "align") == "/data/ds1/ds1_align.log"
func LogPath(dir, name, stage string) string {
	return filepath.Join(dir, name+"_"+stage+".log")
}
