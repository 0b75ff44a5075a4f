package review

import "fmt"

// The prompt builder describes the output format to the model using these
// constants, and the parser scans for the very same strings. Keeping them in
// one place is what guarantees the two sides never drift apart.

// JSON object keys for a violation record.
const (
	KeyOriginalCode = "original_code"
	KeyProposedCode = "proposed_code"
	KeyDiff         = "diff"
	KeyExplanation  = "explanation"
	KeySuggestion   = "suggestion"
	KeyAFilepath    = "a_filepath"
	KeyBFilepath    = "b_filepath"
)

// Marker lines for the sentinel-delimited text format.
const (
	MarkerOriginalCode = "--- ORIGINAL CODE ---"
	MarkerProposedCode = "--- PROPOSED CODE ---"
	MarkerExplanation  = "--- EXPLANATION ---"
	MarkerSuggestion   = "--- SUGGESTION ---"
)

// UnknownFile labels synthesized diffs when no changed-file path is known.
const UnknownFile = "unknown_file"

// Format selects the wire format the model is asked for and parsed with.
type Format string

const (
	// FormatJSON is a JSON array of records carrying all seven keys,
	// including the a/b file paths.
	FormatJSON Format = "json"
	// FormatJSONNoPaths is the older JSON variant without file-path keys.
	FormatJSONNoPaths Format = "json-no-paths"
	// FormatSentinel is free-form text delimited by the marker lines.
	FormatSentinel Format = "sentinel"
)

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatJSONNoPaths, FormatSentinel:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format: %q (want json, json-no-paths, or sentinel)", s)
}

// requiredKeys returns the JSON keys every record must carry for the format.
func requiredKeys(f Format) []string {
	keys := []string{
		KeyOriginalCode,
		KeyProposedCode,
		KeyDiff,
		KeyExplanation,
		KeySuggestion,
	}
	if f == FormatJSON {
		keys = append(keys, KeyAFilepath, KeyBFilepath)
	}
	return keys
}
