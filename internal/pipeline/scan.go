package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"seqmill/internal/config"
	"seqmill/internal/discover"
	"seqmill/internal/display"
	"seqmill/internal/logging"
	"seqmill/internal/term"
)

// dsRow holds the per-dataset data for the scan table.
type dsRow struct {
	Name  string
	Class discover.Class
	Files int
	Bytes int64
}

// Scan inventories the dataset tree without running any tool: one row
// per dataset with class, file count, total size, and delta against
// the median, plus statistical outlier highlighting over the sizes.
func Scan(cfg *config.Config, log *logging.Logger) error {
	groups, warnings, err := discover.Datasets(cfg.Root, cfg.EffectiveSuffix())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn("%s", w)
	}
	if len(groups) == 0 {
		log.Warn("No datasets matching %q under %s", cfg.EffectiveSuffix(), cfg.Root)
		return nil
	}

	log.Info("Scanning %d dataset(s) in %s", len(groups), cfg.Root)
	fmt.Println()

	var rows []dsRow
	var sizeVals []float64
	for _, g := range groups {
		size, err := g.Stat()
		if err != nil {
			log.Warn("Skip (stat failed): %s", g.Name())
			continue
		}
		rows = append(rows, dsRow{Name: g.Name(), Class: g.Class, Files: len(g.Files), Bytes: size})
		if size > 0 {
			sizeVals = append(sizeVals, float64(size))
		}
	}
	if len(rows) == 0 {
		log.Warn("No datasets could be scanned")
		return nil
	}

	stats := computeStats(sizeVals)
	median := medianOf(sizeVals)

	printScanTable(rows, stats, median)
	printScanSummary(log, rows, stats)
	return nil
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeStats(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a value.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid || v <= 0 {
		return ""
	}
	if v < b.extremeLo || v > b.extremeHi {
		return "extreme"
	}
	if v < b.outlierLo || v > b.outlierHi {
		return "outlier"
	}
	return ""
}

func medianOf(vals []float64) int64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return int64(percentile(sorted, 50))
}

func printScanTable(rows []dsRow, stats iqrBounds, median int64) {
	nameW := len("Dataset")
	classW := len("Class")
	filesW := len("Files")
	sizeW := len("Size")
	deltaW := len("vs median")

	for _, r := range rows {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
		if len(r.Class.String()) > classW {
			classW = len(r.Class.String())
		}
		if w := len(fmt.Sprintf("%d", r.Files)); w > filesW {
			filesW = w
		}
		if w := len(display.FormatBytes(r.Bytes)); w > sizeW {
			sizeW = w
		}
		if w := len(fmtDelta(r.Bytes, median)); w > deltaW {
			deltaW = w
		}
	}

	if nameW > 50 {
		nameW = 50
	}

	header := fmt.Sprintf("  %-*s  %-*s  %*s  %-*s  %-*s",
		nameW, "Dataset",
		classW, "Class",
		filesW, "Files",
		sizeW, "Size",
		deltaW, "vs median",
	)
	separator := "  " + strings.Repeat("─", len(header)-2)

	fmt.Println(header)
	fmt.Println(separator)

	for _, r := range rows {
		name := r.Name
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}

		class := stats.classify(float64(r.Bytes))

		// Pad the plain text first, then wrap in ANSI color. This avoids
		// the alignment bug where %-*s counts escape bytes as visible width.
		sizeCell := colorPad(display.FormatBytes(r.Bytes), sizeW, class)

		fmt.Printf("  %-*s  %-*s  %*d  %s  %-*s  %s\n",
			nameW, name,
			classW, r.Class.String(),
			filesW, r.Files,
			sizeCell,
			deltaW, fmtDelta(r.Bytes, median),
			formatFlag(class),
		)
	}
	fmt.Println()
}

func printScanSummary(log *logging.Logger, rows []dsRow, stats iqrBounds) {
	var single, paired, invalid int
	var total int64
	var outliers, extremes int
	for _, r := range rows {
		switch r.Class {
		case discover.ClassSingle:
			single++
		case discover.ClassPaired:
			paired++
		default:
			invalid++
		}
		total += r.Bytes
		switch stats.classify(float64(r.Bytes)) {
		case "extreme":
			extremes++
		case "outlier":
			outliers++
		}
	}

	log.Info("Scanned %d dataset(s): %d single-end, %d paired-end, %d invalid",
		len(rows), single, paired, invalid)
	log.Info("  Total size: %s", display.FormatBytes(total))
	if stats.valid {
		log.Info("  Size IQR: %s – %s (outlier < %s or > %s)",
			display.FormatBytes(int64(stats.q1)), display.FormatBytes(int64(stats.q3)),
			display.FormatBytes(int64(stats.outlierLo)), display.FormatBytes(int64(stats.outlierHi)))
	}
	if invalid > 0 {
		log.Skip("  %d dataset(s) would be skipped (not 1 or 2 files)", invalid)
	}
	if outliers > 0 {
		log.Warn("  %d size outlier(s) flagged [*]", outliers)
	}
	if extremes > 0 {
		log.Error("  %d extreme size outlier(s) flagged [!]", extremes)
	}
	if outliers == 0 && extremes == 0 {
		log.Success("  No size outliers detected")
	}
}

// fmtDelta renders the signed distance from the median dataset size.
func fmtDelta(bytes, median int64) string {
	if median == 0 {
		return "n/a"
	}
	d := bytes - median
	if d == 0 {
		return "="
	}
	return display.FormatBytesWithSign(d)
}

func formatFlag(class string) string {
	switch class {
	case "extreme":
		return term.Red + "[!]" + term.NC
	case "outlier":
		return term.Orange + "[*]" + term.NC
	default:
		return ""
	}
}

// colorPad pads a plain string to width, then wraps in ANSI color. This
// ensures %-*s-style alignment works correctly regardless of escape sequences.
func colorPad(s string, width int, class string) string {
	padded := fmt.Sprintf("%-*s", width, s)
	switch class {
	case "extreme":
		return term.Red + padded + term.NC
	case "outlier":
		return term.Orange + padded + term.NC
	default:
		return padded
	}
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
