package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MalformedViolationError reports a decoded JSON record that is missing one
// of its required keys (or carries a non-string value for it). One bad
// record fails the whole batch: the model was explicitly instructed to emit
// this schema, so drift is a regression worth surfacing, not noise to drop.
type MalformedViolationError struct {
	Key   string
	Index int
}

func (e *MalformedViolationError) Error() string {
	return fmt.Sprintf("violation record at index %d is missing required key %q", e.Index, e.Key)
}

// IsMalformedViolation checks if an error is a MalformedViolationError.
func IsMalformedViolation(err error) bool {
	var mv *MalformedViolationError
	return errors.As(err, &mv)
}

// ParseResponse converts raw model output into an ordered list of
// Violations. fallbackPath is the changed file the reviewed chunk belongs
// to; it labels synthesized diffs whenever the record itself carries no
// paths. An empty or undecodable response means no violations, never an
// error.
func ParseResponse(content string, format Format, fallbackPath string) ([]Violation, error) {
	if format == FormatSentinel {
		return parseSentinel(content, fallbackPath), nil
	}
	return parseJSON(content, format, fallbackPath)
}

// parseJSON is the strict path: every decoded record must carry every
// required key for the format.
func parseJSON(content string, format Format, fallbackPath string) ([]Violation, error) {
	content = stripJSONFence(content)
	if content == "" {
		return nil, nil
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(content), &records); err != nil {
		var single map[string]any
		if err := json.Unmarshal([]byte(content), &single); err != nil {
			// The model drifted off JSON entirely; treat as no violations.
			return nil, nil
		}
		records = []map[string]any{single}
	}

	violations := make([]Violation, 0, len(records))
	for i, rec := range records {
		v, err := recordToViolation(rec, i, format, fallbackPath)
		if err != nil {
			return nil, err
		}
		violations = append(violations, v)
	}
	return violations, nil
}

func recordToViolation(rec map[string]any, index int, format Format, fallbackPath string) (Violation, error) {
	fields := make(map[string]string, 7)
	for _, key := range requiredKeys(format) {
		raw, ok := rec[key]
		if !ok {
			return Violation{}, &MalformedViolationError{Key: key, Index: index}
		}
		s, ok := raw.(string)
		if !ok {
			return Violation{}, &MalformedViolationError{Key: key, Index: index}
		}
		fields[key] = s
	}

	aPath := fields[KeyAFilepath]
	bPath := fields[KeyBFilepath]
	if format == FormatJSONNoPaths || aPath == "" || bPath == "" {
		if fallbackPath == "" {
			fallbackPath = UnknownFile
		}
		aPath = fallbackPath
		bPath = fallbackPath
	}

	v := Violation{
		OriginalCode: fields[KeyOriginalCode],
		ProposedCode: fields[KeyProposedCode],
		Explanation:  fields[KeyExplanation],
		Suggestion:   fields[KeySuggestion],
		AFilepath:    aPath,
		BFilepath:    bPath,
	}
	v.Diff = SynthesizeDiff(v.OriginalCode, v.ProposedCode, aPath, bPath)
	return v, nil
}

// parseSentinel is the lenient path: the format has no machine-checkable
// grammar, so fragments that miss a later marker are silently skipped
// rather than failing the response. Truncated trailing output is common.
func parseSentinel(content, fallbackPath string) []Violation {
	if fallbackPath == "" {
		fallbackPath = UnknownFile
	}

	var violations []Violation
	fragments := strings.Split(content, MarkerOriginalCode)
	// fragments[0] is preamble before the first marker.
	for _, frag := range fragments[1:] {
		original, rest, ok := strings.Cut(frag, MarkerProposedCode)
		if !ok {
			continue
		}
		proposed, rest, ok := strings.Cut(rest, MarkerExplanation)
		if !ok {
			continue
		}
		explanation, suggestion, ok := strings.Cut(rest, MarkerSuggestion)
		if !ok {
			continue
		}

		v := Violation{
			OriginalCode: stripFence(original),
			ProposedCode: stripFence(proposed),
			Explanation:  stripFence(explanation),
			Suggestion:   stripFence(suggestion),
			AFilepath:    fallbackPath,
			BFilepath:    fallbackPath,
		}
		v.Diff = SynthesizeDiff(v.OriginalCode, v.ProposedCode, fallbackPath, fallbackPath)
		violations = append(violations, v)
	}
	return violations
}

// stripJSONFence unwraps a JSON payload from a markdown code fence by
// token: a leading ```json (or bare ```) prefix and a trailing ``` suffix
// are each dropped when present, wherever the line breaks fall. Models
// sometimes put the closing fence on the same line as the payload, and a
// line-based strip would lose the payload with it.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// stripFence trims a span and removes a surrounding markdown code fence if
// the span both starts and ends with a whole fence line. A language tag on
// the opening fence line is discarded with it. Used for sentinel-mode code
// spans, where the fences occupy their own lines.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}
