// Package discover walks a dataset tree and groups input files into
// per-directory datasets.
//
// A dataset is a directory holding at least one file with the stage's
// input suffix. One match means single-end reads, two mean a mate pair
// (the lexicographically smaller path is always mate 1), and more than
// two is an invalid layout that the caller must surface rather than
// guess about. Directories without matches are not datasets.
//
// Types:
//   - Class (single-end | paired-end | invalid)
//   - Group (Dir, Files sorted, Class)
//
// Functions:
//   - Datasets(root, suffix) → one Group per matching directory
//   - Files(root, suffix) → flat sorted list for file-grained stages
//
// Unreadable subtrees are reported as warnings, not errors; only a
// failure at the root itself aborts discovery. WalkDir does not follow
// symlinks, so link cycles cannot occur.
package discover
