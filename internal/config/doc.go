// Package config loads tidy-patch configuration from a JSON file and
// merges it with environment variables and CLI flag overrides.
//
// The file is required (default .llm-review-config.json in the working
// directory) and must define a sampling temperature in [0.0, 2.0]; a
// commit-gating tool with no configuration must refuse to run rather than
// guess. Configuration is read once per run and passed explicitly.
package config
