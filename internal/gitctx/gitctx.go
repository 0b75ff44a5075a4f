package gitctx

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultExtensions is the source-file allowlist for review: the C/C++ and
// Python files the style prompts know how to judge.
var DefaultExtensions = []string{
	".py", ".h", ".hh", ".hpp", ".hxx", ".c", ".cc", ".cpp", ".cxx",
}

// DiffChunk is the staged diff for a single changed file. Reviewing one
// file per inference call keeps the context small and the file attribution
// unambiguous.
type DiffChunk struct {
	Path string
	Diff string
}

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// CollectorError wraps a failed git invocation.
type CollectorError struct {
	Op  string
	Err error
}

func (e *CollectorError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *CollectorError) Unwrap() error { return e.Err }

// IsCollectorError checks if an error is a CollectorError.
func IsCollectorError(err error) bool {
	var ce *CollectorError
	return errors.As(err, &ce)
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta() (RepoMeta, error) {
	root, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, &CollectorError{Op: "rev-parse", Err: err}
	}
	head, err := gitOutput("rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// StagedFiles returns the relative paths of files in the staging area,
// order-preserving and de-duplicated, filtered by the extension allowlist.
// An empty allowlist keeps every path.
func StagedFiles(extensions []string) ([]string, error) {
	out, err := gitOutput("diff", "--name-only", "--staged")
	if err != nil {
		return nil, &CollectorError{Op: "diff --name-only --staged", Err: err}
	}
	return filterFiles(out, extensions), nil
}

// Staged returns the staged diff, limited to path when non-empty.
func Staged(path string) (string, error) {
	args := []string{"diff", "--staged"}
	if path != "" {
		args = append(args, "--", path)
	}
	out, err := gitOutput(args...)
	if err != nil {
		return "", &CollectorError{Op: "diff --staged", Err: err}
	}
	return out, nil
}

// StagedChunks collects one DiffChunk per staged file that passes the
// extension allowlist. Files whose diff comes back empty (mode-only
// changes, for example) are dropped. No staged changes is a valid state:
// the result is simply empty.
func StagedChunks(extensions []string) ([]DiffChunk, error) {
	files, err := StagedFiles(extensions)
	if err != nil {
		return nil, err
	}

	var chunks []DiffChunk
	for _, f := range files {
		diff, err := Staged(f)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(diff) == "" {
			continue
		}
		chunks = append(chunks, DiffChunk{Path: f, Diff: diff})
	}
	return chunks, nil
}

// filterFiles parses `git diff --name-only` output into a de-duplicated,
// order-preserving path list filtered by extension.
func filterFiles(out string, extensions []string) []string {
	seen := make(map[string]bool)
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		if !hasExtension(line, extensions) {
			continue
		}
		seen[line] = true
		files = append(files, line)
	}
	return files
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
