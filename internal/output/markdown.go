package output

import (
	"io"
	"strings"

	"github.com/agalbachicar/tidy-patch/internal/review"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("## tidy-patch review\n\n")
	ew.printf("**%d violation(s)** across %d file(s).\n\n", len(report.Violations), len(report.Files))

	if len(report.Violations) == 0 {
		ew.println("No violations found. :white_check_mark:")
		return ew.err
	}

	for i, v := range report.Violations {
		ew.printf("### Violation %d: `%s`\n\n", i+1, v.BFilepath)
		ew.printf("%s\n\n", v.Explanation)
		if v.Suggestion != "" {
			ew.printf("**Suggestion:** %s\n\n", v.Suggestion)
		}
		if v.OriginalCode != "" {
			lang := inferLang(v.BFilepath)
			ew.printf("Original:\n\n```%s\n%s\n```\n\n", lang, v.OriginalCode)
		}
		if v.ProposedCode != "" {
			lang := inferLang(v.BFilepath)
			ew.printf("Proposed:\n\n```%s\n%s\n```\n\n", lang, v.ProposedCode)
		}
		if v.Diff != "" {
			ew.printf("```diff\n%s\n```\n\n", v.Diff)
		}
		ew.printf("---\n\n")
	}

	ew.printf("*Reviewed in %dms (git: %dms, LLM: %dms)*\n",
		report.Timing.TotalMs, report.Timing.GitMs, report.Timing.LLMMs)

	return ew.err
}

func inferLang(path string) string {
	langMap := map[string]string{
		".py":  "python",
		".c":   "c",
		".h":   "cpp",
		".hh":  "cpp",
		".hpp": "cpp",
		".hxx": "cpp",
		".cc":  "cpp",
		".cpp": "cpp",
		".cxx": "cpp",
	}
	for ext, lang := range langMap {
		if strings.HasSuffix(path, ext) {
			return lang
		}
	}
	return ""
}
