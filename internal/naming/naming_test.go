package naming

import (
	"path/filepath"
	"testing"
)

func TestStem(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		suffix string
		want   string
	}{
		{"plain file", "/data/ds1/reads.fastq", ".fastq", "reads"},
		{"mate file", "/data/ds1/reads_1.fastq", ".fastq", "reads_1"},
		{"longer suffix", "/data/ds1/reads_clean.fastq", "_clean.fastq", "reads"},
		{"suffix absent", "/data/ds1/reads.txt", ".fastq", "reads.txt"},
		{"no directory", "reads.fastq", ".fastq", "reads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stem(tt.path, tt.suffix); got != tt.want {
				t.Errorf("Stem(%q, %q) = %q, want %q", tt.path, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestTrimmed(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		suffix string
		want   string
	}{
		{"single end", "/data/ds1/reads.fastq", ".fastq", "/data/ds1/reads_clean.fastq"},
		{"mate 1", "/data/ds1/sample_1.fastq", ".fastq", "/data/ds1/sample_1_clean.fastq"},
		{"mate 2", "/data/ds1/sample_2.fastq", ".fastq", "/data/ds1/sample_2_clean.fastq"},
		{"relative path", "ds1/reads.fastq", ".fastq", "ds1/reads_clean.fastq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := filepath.FromSlash(tt.want)
			if got := Trimmed(filepath.FromSlash(tt.path), tt.suffix); got != want {
				t.Errorf("Trimmed(%q, %q) = %q, want %q", tt.path, tt.suffix, got, want)
			}
		})
	}
}

func TestSortedBAM(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"absolute", "/data/SRR100", "/data/SRR100/SRR100_sorted.bam"},
		{"relative", "runs/SRR200", "runs/SRR200/SRR200_sorted.bam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := filepath.FromSlash(tt.want)
			if got := SortedBAM(filepath.FromSlash(tt.dir)); got != want {
				t.Errorf("SortedBAM(%q) = %q, want %q", tt.dir, got, want)
			}
		})
	}
}

func TestLogPath(t *testing.T) {
	got := LogPath(filepath.FromSlash("/data/ds1"), "ds1", "align")
	want := filepath.FromSlash("/data/ds1/ds1_align.log")
	if got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}
