// Package review contains the core types and engine for the LLM-backed
// style review.
//
// It defines the Violation record, builds the system and user prompts,
// parses model responses in three wire formats (JSON with file paths, JSON
// without, and sentinel-delimited text), and synthesizes unified diffs
// locally from the original/proposed code pairs.
//
// The prompt builder and the response parser share one set of named
// constants (tokens.go) for the JSON keys and sentinel marker lines, so the
// instructions sent to the model and the strings scanned for on the way
// back can never diverge.
//
// JSON parsing is strict: a record missing a required key fails the whole
// call with a MalformedViolationError. Sentinel parsing is lenient:
// fragments missing a later marker are skipped, since truncated trailing
// output is common in that format.
package review
