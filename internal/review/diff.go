package review

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SynthesizeDiff produces a unified diff between two text blobs with
// three lines of context and conventional a/ and b/ header prefixes.
// Identical inputs yield an empty string. The result carries no trailing
// blank line beyond the final hunk.
//
// The model is asked for a diff field but its value is never trusted when
// the two code blocks are available to compute one from.
func SynthesizeDiff(original, proposed, aPath, bPath string) string {
	if original == proposed {
		return ""
	}
	if aPath == "" {
		aPath = UnknownFile
	}
	if bPath == "" {
		bPath = UnknownFile
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(proposed),
		FromFile: "a/" + aPath,
		ToFile:   "b/" + bPath,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		// GetUnifiedDiffString only fails on writer errors, which a
		// strings.Builder never produces.
		return ""
	}
	return strings.TrimRight(text, "\n")
}
