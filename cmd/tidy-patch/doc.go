// Tidy-patch is a commit-gating CLI that reviews staged changes with a
// locally hosted LLM.
//
// It collects the staged git diff one file at a time, asks the configured
// model for style violations against the C++ and Python style guides, and
// prints the findings to stderr with exit code 1 when the commit should be
// blocked.
//
// Usage:
//
//	tidy-patch review                 # review staged changes
//	tidy-patch review --exit-zero     # report but never block
//	tidy-patch hook install           # run the review from pre-commit
//	tidy-patch models                 # list local Ollama models
//	tidy-patch config init            # scaffold .llm-review-config.json
//
// Configuration lives in .llm-review-config.json, which must define the
// sampling temperature.
package main
