package review

// Violation is one reported deviation from a style guideline, with a
// suggested fix. It is built once by the parser and never mutated after.
type Violation struct {
	OriginalCode string `json:"original_code"`
	ProposedCode string `json:"proposed_code"`
	Diff         string `json:"diff"`
	Explanation  string `json:"explanation"`
	Suggestion   string `json:"suggestion"`
	AFilepath    string `json:"a_filepath"`
	BFilepath    string `json:"b_filepath"`
}

// RepoInfo contains repository metadata for the report header.
type RepoInfo struct {
	Root   string `json:"root"`
	Head   string `json:"head"`
	Branch string `json:"branch"`
}

// Timing contains performance metrics.
type Timing struct {
	GitMs   int64 `json:"gitMs"`
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// Report is the top-level result of a review run. Violations preserve the
// order in which chunks were reviewed and records were decoded.
type Report struct {
	Tool       string      `json:"tool"`
	Version    string      `json:"version"`
	Repo       RepoInfo    `json:"repo"`
	Files      []string    `json:"files"`
	Violations []Violation `json:"violations"`
	Timing     Timing      `json:"timing"`
}

// Blocks reports whether the review outcome should gate the commit.
func (r *Report) Blocks() bool {
	return len(r.Violations) > 0
}
