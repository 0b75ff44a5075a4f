package cli

import (
	"strings"
	"testing"
)

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript("")

	if !strings.HasPrefix(script, hookMarkerStart+"\n") {
		t.Errorf("script does not start with marker:\n%s", script)
	}
	if !strings.HasSuffix(script, hookMarkerEnd+"\n") {
		t.Errorf("script does not end with marker:\n%s", script)
	}
	if !strings.Contains(script, "tidy-patch review\n") {
		t.Errorf("script missing review command:\n%s", script)
	}
	if strings.Contains(script, "--config-file") {
		t.Errorf("script carries a config flag it was not given:\n%s", script)
	}
	if !strings.Contains(script, "exit $TIDY_PATCH_EXIT") {
		t.Errorf("script must propagate the review exit code:\n%s", script)
	}
}

func TestGenerateHookScriptWithConfigFile(t *testing.T) {
	script := generateHookScript("configs/review.json")
	if !strings.Contains(script, "tidy-patch review --config-file configs/review.json") {
		t.Errorf("script missing config flag:\n%s", script)
	}
}

func TestReplaceHookSectionAppendsWhenAbsent(t *testing.T) {
	existing := "#!/bin/sh\nmake lint"
	section := generateHookScript("")

	got := replaceHookSection(existing, section)

	if !strings.HasPrefix(got, "#!/bin/sh\nmake lint\n") {
		t.Errorf("existing content altered:\n%s", got)
	}
	if !strings.Contains(got, hookMarkerStart) {
		t.Errorf("section not appended:\n%s", got)
	}
}

func TestReplaceHookSectionReplacesInPlace(t *testing.T) {
	old := generateHookScript("old.json")
	existing := "#!/bin/sh\n" + old + "make lint\n"

	got := replaceHookSection(existing, generateHookScript("new.json"))

	if strings.Contains(got, "old.json") {
		t.Errorf("old section survived:\n%s", got)
	}
	if !strings.Contains(got, "new.json") {
		t.Errorf("new section missing:\n%s", got)
	}
	if !strings.Contains(got, "make lint") {
		t.Errorf("surrounding content lost:\n%s", got)
	}
	if strings.Count(got, hookMarkerStart) != 1 {
		t.Errorf("expected exactly one section:\n%s", got)
	}
}

func TestRemoveHookSection(t *testing.T) {
	existing := "#!/bin/sh\n" + generateHookScript("") + "make lint\n"

	got := removeHookSection(existing)

	if strings.Contains(got, hookMarkerStart) || strings.Contains(got, "tidy-patch review") {
		t.Errorf("section not removed:\n%s", got)
	}
	if got != "#!/bin/sh\nmake lint\n" {
		t.Errorf("removeHookSection() = %q", got)
	}
}

func TestRemoveHookSectionNoSection(t *testing.T) {
	existing := "#!/bin/sh\nmake lint\n"
	if got := removeHookSection(existing); got != existing {
		t.Errorf("removeHookSection() = %q, want input unchanged", got)
	}
}
