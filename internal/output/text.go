package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/agalbachicar/tidy-patch/internal/review"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("--- LLM generated review. Found %d violations. ---\n", len(report.Violations))
	if report.Repo.Root != "" {
		ew.printf("Repository: %s (branch: %s)\n", report.Repo.Root, report.Repo.Branch)
	}
	if len(report.Files) > 0 {
		ew.printf("Reviewed files: %s\n", strings.Join(report.Files, ", "))
	} else {
		ew.println("No staged changes to review.")
	}

	for i, v := range report.Violations {
		ew.println("----")
		ew.printf("Violation %d:\n", i+1)
		ew.printf("Explanation: %s\n", v.Explanation)
		ew.printf("Suggestion: %s\n", v.Suggestion)
		if v.OriginalCode != "" {
			ew.printf("Original code:\n%s\n", v.OriginalCode)
		}
		if v.ProposedCode != "" {
			ew.printf("Proposed code:\n%s\n", v.ProposedCode)
		}
		if v.Diff != "" {
			ew.printf("Diff:\n%s\n", v.Diff)
		}
		ew.println("----")
	}

	ew.printf("\n--- End of the review ---\n")
	ew.printf("Completed in %dms (git: %dms, LLM: %dms)\n",
		report.Timing.TotalMs, report.Timing.GitMs, report.Timing.LLMMs)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
