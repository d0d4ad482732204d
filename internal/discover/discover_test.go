package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDatasets_GroupsByDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "single", "reads.fastq"), "a")
	writeFile(t, filepath.Join(root, "paired", "sample_2.fastq"), "b")
	writeFile(t, filepath.Join(root, "paired", "sample_1.fastq"), "c")
	writeFile(t, filepath.Join(root, "crowded", "x_1.fastq"), "d")
	writeFile(t, filepath.Join(root, "crowded", "x_2.fastq"), "e")
	writeFile(t, filepath.Join(root, "crowded", "x_3.fastq"), "f")
	writeFile(t, filepath.Join(root, "empty", "notes.txt"), "g")

	groups, warnings, err := Datasets(root, ".fastq")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, groups, 3, "directory without matches must not become a dataset")

	// Sorted by directory path: crowded, paired, single.
	assert.Equal(t, "crowded", groups[0].Name())
	assert.Equal(t, ClassInvalid, groups[0].Class)

	assert.Equal(t, "paired", groups[1].Name())
	assert.Equal(t, ClassPaired, groups[1].Class)
	require.Len(t, groups[1].Files, 2)
	assert.Equal(t, filepath.Join(root, "paired", "sample_1.fastq"), groups[1].Files[0],
		"mate 1 must sort first")

	assert.Equal(t, "single", groups[2].Name())
	assert.Equal(t, ClassSingle, groups[2].Class)
}

func TestDatasets_NestedFilesBelongToNestedDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "outer", "a.fastq"), "a")
	writeFile(t, filepath.Join(root, "outer", "inner", "b.fastq"), "b")

	groups, _, err := Datasets(root, ".fastq")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, ClassSingle, groups[0].Class)
	assert.Equal(t, ClassSingle, groups[1].Class)
	assert.Equal(t, "outer", groups[0].Name())
	assert.Equal(t, "inner", groups[1].Name())
}

func TestDatasets_SuffixIsCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ds", "reads.FASTQ"), "a")
	writeFile(t, filepath.Join(root, "ds", "reads.fastq"), "b")

	groups, _, err := Datasets(root, ".fastq")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Files, 1)
	assert.Equal(t, filepath.Join(root, "ds", "reads.fastq"), groups[0].Files[0])
}

func TestDatasets_AlternateSuffix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ds", "reads.fastq"), "raw")
	writeFile(t, filepath.Join(root, "ds", "reads_clean.fastq"), "clean")

	groups, _, err := Datasets(root, "_clean.fastq")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, ClassSingle, groups[0].Class)
	assert.Equal(t, filepath.Join(root, "ds", "reads_clean.fastq"), groups[0].Files[0])
}

func TestDatasets_MissingRoot(t *testing.T) {
	_, _, err := Datasets(filepath.Join(t.TempDir(), "absent"), ".fastq")
	assert.Error(t, err)
}

func TestFiles_FlatSortedList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "two.fastq"), "2")
	writeFile(t, filepath.Join(root, "a", "one.fastq"), "1")
	writeFile(t, filepath.Join(root, "a", "skip.txt"), "x")

	files, warnings, err := Files(root, ".fastq")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "a", "one.fastq"), files[0])
	assert.Equal(t, filepath.Join(root, "b", "two.fastq"), files[1])
}

func TestFiles_MissingRoot(t *testing.T) {
	_, _, err := Files(filepath.Join(t.TempDir(), "absent"), ".fastq")
	assert.Error(t, err)
}

func TestGroupStat_SumsFileSizes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ds", "a_1.fastq"), "12345")
	writeFile(t, filepath.Join(root, "ds", "a_2.fastq"), "1234567")

	groups, _, err := Datasets(root, ".fastq")
	require.NoError(t, err)
	require.Len(t, groups, 1)

	size, err := groups[0].Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)
}

func TestGroupStat_MissingFile(t *testing.T) {
	g := Group{Files: []string{filepath.Join(t.TempDir(), "gone.fastq")}}
	_, err := g.Stat()
	assert.Error(t, err)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "single-end", ClassSingle.String())
	assert.Equal(t, "paired-end", ClassPaired.String())
	assert.Equal(t, "invalid", ClassInvalid.String())
}
