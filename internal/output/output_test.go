package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/agalbachicar/tidy-patch/internal/review"
)

func sampleReport() *review.Report {
	return &review.Report{
		Tool:    "tidy-patch",
		Version: "0.1.0",
		Repo:    review.RepoInfo{Root: "/repo", Head: "abc1234", Branch: "main"},
		Files:   []string{"src/foo.cpp"},
		Violations: []review.Violation{
			{
				OriginalCode: "int x = 0;",
				ProposedCode: "const int x = 0;",
				Diff:         "--- a/src/foo.cpp\n+++ b/src/foo.cpp\n@@ -1 +1 @@\n-int x = 0;\n+const int x = 0;",
				Explanation:  "mutable global",
				Suggestion:   "declare it const",
				AFilepath:    "src/foo.cpp",
				BFilepath:    "src/foo.cpp",
			},
		},
		Timing: review.Timing{GitMs: 5, LLMMs: 1200, TotalMs: 1210},
	}
}

func TestGetWriter(t *testing.T) {
	for format, want := range map[string]Writer{
		"":         &TextWriter{},
		"text":     &TextWriter{},
		"markdown": &MarkdownWriter{},
		"json":     &JSONWriter{},
	} {
		w, err := GetWriter(format)
		if err != nil {
			t.Fatalf("GetWriter(%q) error = %v", format, err)
		}
		if gotType, wantType := typeName(w), typeName(want); gotType != wantType {
			t.Errorf("GetWriter(%q) = %s, want %s", format, gotType, wantType)
		}
	}

	if _, err := GetWriter("html"); err == nil {
		t.Error("GetWriter(html) error = nil, want error")
	}
}

func typeName(w Writer) string {
	switch w.(type) {
	case *TextWriter:
		return "text"
	case *MarkdownWriter:
		return "markdown"
	case *JSONWriter:
		return "json"
	default:
		return "unknown"
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Found 1 violations",
		"Violation 1:",
		"Explanation: mutable global",
		"Suggestion: declare it const",
		"Original code:\nint x = 0;",
		"Proposed code:\nconst int x = 0;",
		"-int x = 0;",
		"+const int x = 0;",
		"--- End of the review ---",
		"git: 5ms, LLM: 1200ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q\n%s", want, out)
		}
	}
}

func TestTextWriterEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	report := &review.Report{Tool: "tidy-patch"}
	if err := (&TextWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Found 0 violations") {
		t.Errorf("empty report missing zero count\n%s", out)
	}
	if !strings.Contains(out, "No staged changes to review.") {
		t.Errorf("empty report missing no-changes line\n%s", out)
	}
	if strings.Contains(out, "Violation 1") {
		t.Errorf("empty report should carry no violation sections\n%s", out)
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"## tidy-patch review",
		"**1 violation(s)**",
		"### Violation 1: `src/foo.cpp`",
		"**Suggestion:** declare it const",
		"```cpp\nint x = 0;\n```",
		"```diff\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown report missing %q\n%s", want, out)
		}
	}
}

func TestMarkdownWriterNoViolations(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()
	report.Violations = nil
	if err := (&MarkdownWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No violations found") {
		t.Errorf("markdown report missing clean verdict\n%s", buf.String())
	}
}

func TestJSONWriterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded review.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Tool != "tidy-patch" || len(decoded.Violations) != 1 {
		t.Errorf("decoded report = %+v", decoded)
	}
	if decoded.Violations[0].AFilepath != "src/foo.cpp" {
		t.Errorf("a_filepath = %q", decoded.Violations[0].AFilepath)
	}
}

func TestInferLang(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.py", "python"},
		{"a.c", "c"},
		{"a.cpp", "cpp"},
		{"a.hxx", "cpp"},
		{"Makefile", ""},
	}
	for _, tt := range tests {
		if got := inferLang(tt.path); got != tt.want {
			t.Errorf("inferLang(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
