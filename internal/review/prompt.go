package review

import (
	"fmt"
	"strings"
)

const reviewerRole = `You are an expert C++ and Python software engineer.
Your task is to review a patch and identify violations of style guides and
best practices for C++ and Python code. A patch may contain more than one
violation, so report each one separately.

For C++, focus on the following sources:
- Google C++ Style Guide.
- C++ Core Guidelines.

For Python, focus on the following sources:
- PEP 8, the Style Guide for Python Code.
- Google Python Style Guide.

Consider identifying anti-patterns and propose a better alternative. Do this
only when there is high confidence.`

// SystemPrompt returns the deterministic system instruction for a review.
// distro, when non-empty, names the target ROS distribution and is injected
// as review context. The output-format section is generated from the same
// constants the parser scans for.
func SystemPrompt(format Format, distro string) string {
	var b strings.Builder
	b.WriteString(reviewerRole)
	if distro != "" {
		fmt.Fprintf(&b, "\n\nThe changes target the ROS 2 %s distribution; prefer its conventions and APIs.", distro)
	}
	b.WriteString("\n\n")
	b.WriteString(formatInstructions(format))
	return b.String()
}

// BuildUserPrompt wraps a diff chunk in the fixed user instruction.
func BuildUserPrompt(diff string) string {
	var b strings.Builder
	b.WriteString("Review the following code changes:\n\n")
	b.WriteString("```diff\n")
	b.WriteString(diff)
	b.WriteString("\n```\n")
	b.WriteString("\nPlease adhere strictly to the requested output format.")
	return b.String()
}

func formatInstructions(format Format) string {
	if format == FormatSentinel {
		return sentinelInstructions()
	}
	return jsonInstructions(format)
}

func jsonInstructions(format Format) string {
	var b strings.Builder
	b.WriteString("Answer **only** with a json formatted string with the full list of violations.\n")
	b.WriteString("When there are no violations, return an empty json array.\n")
	b.WriteString("Each violation needs to have the following keys:\n")
	fmt.Fprintf(&b, "    %q: \"<original code block>\",\n", KeyOriginalCode)
	fmt.Fprintf(&b, "    %q: \"<proposed code block>\",\n", KeyProposedCode)
	fmt.Fprintf(&b, "    %q: \"<git diff>\",\n", KeyDiff)
	fmt.Fprintf(&b, "    %q: \"<clear explanation of the violation and the broken rule>\",\n", KeyExplanation)
	fmt.Fprintf(&b, "    %q: \"<concise suggestion for the correction>\"", KeySuggestion)
	if format == FormatJSON {
		b.WriteString(",\n")
		fmt.Fprintf(&b, "    %q: \"<file path that appears after a/ in the git diff>\",\n", KeyAFilepath)
		fmt.Fprintf(&b, "    %q: \"<file path that appears after b/ in the git diff>\"", KeyBFilepath)
	}
	b.WriteString("\n")
	return b.String()
}

func sentinelInstructions() string {
	var b strings.Builder
	b.WriteString("For each violation, output exactly four sections, in this order, each introduced by its marker on a line of its own:\n")
	fmt.Fprintf(&b, "%s\n<original code block>\n", MarkerOriginalCode)
	fmt.Fprintf(&b, "%s\n<proposed code block>\n", MarkerProposedCode)
	fmt.Fprintf(&b, "%s\n<clear explanation of the violation and the broken rule>\n", MarkerExplanation)
	fmt.Fprintf(&b, "%s\n<concise suggestion for the correction>\n", MarkerSuggestion)
	b.WriteString("Repeat the four sections for every violation found. When there are no violations, output nothing.\n")
	return b.String()
}
