// Package gitctx collects staged diffs and changed-file lists from a git
// working copy by shelling out to the git CLI.
//
// The staged diff is gathered per file so each inference call reviews one
// file's changes. Failed git invocations surface as CollectorError; an
// empty staging area is not an error.
package gitctx
