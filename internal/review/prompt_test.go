package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, SystemPrompt(FormatJSON, "jazzy"), SystemPrompt(FormatJSON, "jazzy"))
}

func TestSystemPrompt_JSONKeys(t *testing.T) {
	prompt := SystemPrompt(FormatJSON, "")
	for _, key := range requiredKeys(FormatJSON) {
		assert.Contains(t, prompt, `"`+key+`"`)
	}
}

func TestSystemPrompt_JSONNoPathsOmitsPathKeys(t *testing.T) {
	prompt := SystemPrompt(FormatJSONNoPaths, "")
	assert.Contains(t, prompt, `"`+KeyOriginalCode+`"`)
	assert.NotContains(t, prompt, KeyAFilepath)
	assert.NotContains(t, prompt, KeyBFilepath)
}

func TestSystemPrompt_SentinelMarkers(t *testing.T) {
	prompt := SystemPrompt(FormatSentinel, "")
	for _, marker := range []string{
		MarkerOriginalCode, MarkerProposedCode, MarkerExplanation, MarkerSuggestion,
	} {
		assert.Contains(t, prompt, marker)
	}
	assert.NotContains(t, prompt, KeyOriginalCode)
}

func TestSystemPrompt_DistroInjection(t *testing.T) {
	assert.Contains(t, SystemPrompt(FormatJSON, "jazzy"), "ROS 2 jazzy")
	assert.Contains(t, SystemPrompt(FormatJSON, "humble"), "ROS 2 humble")
	assert.NotContains(t, SystemPrompt(FormatJSON, ""), "ROS 2")
}

func TestBuildUserPrompt_WrapsDiffInFence(t *testing.T) {
	diff := "--- a/f.py\n+++ b/f.py\n@@ -1 +1 @@\n-x=1\n+x = 1"
	prompt := BuildUserPrompt(diff)

	assert.Contains(t, prompt, "```diff\n"+diff+"\n```")
	assert.Contains(t, prompt, "output format")
}
