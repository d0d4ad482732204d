package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Class describes how many input files a dataset directory holds.
type Class int

const (
	// ClassSingle means exactly one matching file: single-end reads.
	ClassSingle Class = iota
	// ClassPaired means exactly two matching files: a mate pair.
	ClassPaired
	// ClassInvalid means three or more matching files. The tool
	// invocations only have slots for one or two inputs, so the
	// dataset is reported and set aside instead of half-processed.
	ClassInvalid
)

// String returns the class label used in logs and reports.
func (c Class) String() string {
	switch c {
	case ClassSingle:
		return "single-end"
	case ClassPaired:
		return "paired-end"
	default:
		return "invalid"
	}
}

// Group is one dataset directory and its matching input files.
//
// Files is sorted lexicographically, so for a paired dataset
// Files[0] is mate 1 and Files[1] is mate 2 under the usual
// _1/_2 naming convention. Paths are absolute if root was.
type Group struct {
	Dir   string
	Files []string
	Class Class
}

// Name returns the dataset's display name, the base of its directory.
func (g Group) Name() string {
	return filepath.Base(g.Dir)
}

func classify(n int) Class {
	switch n {
	case 1:
		return ClassSingle
	case 2:
		return ClassPaired
	default:
		return ClassInvalid
	}
}

// Datasets walks root and returns one Group per directory that
// directly contains at least one file ending in suffix. Matches in
// nested directories belong to the nested directory, not an ancestor.
//
// Unreadable entries below the root are skipped and reported in the
// warnings slice. An error reading root itself aborts the walk.
func Datasets(root, suffix string) ([]Group, []string, error) {
	groups := map[string][]string{}
	var warnings []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("reading %s: %w", root, err)
			}
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !matches(d.Name(), suffix) {
			return nil
		}
		dir := filepath.Dir(path)
		groups[dir] = append(groups[dir], path)
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}

	out := make([]Group, 0, len(groups))
	for dir, files := range groups {
		sort.Strings(files)
		out = append(out, Group{Dir: dir, Files: files, Class: classify(len(files))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dir < out[j].Dir })
	return out, warnings, nil
}

// Files walks root and returns every file ending in suffix, sorted.
// Grouping is ignored; stages that work file by file use this.
func Files(root, suffix string) ([]string, []string, error) {
	var files []string
	var warnings []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("reading %s: %w", root, err)
			}
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && matches(d.Name(), suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}
	sort.Strings(files)
	return files, warnings, nil
}

// matches reports whether name ends in suffix. Case-sensitive.
func matches(name, suffix string) bool {
	return suffix != "" && strings.HasSuffix(name, suffix)
}

// Stat returns the total size in bytes of the group's files.
// A stat failure on any file is returned so the caller can decide
// whether to report or skip.
func (g Group) Stat() (int64, error) {
	var total int64
	for _, f := range g.Files {
		info, err := os.Stat(f)
		if err != nil {
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}
