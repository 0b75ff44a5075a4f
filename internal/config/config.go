package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/agalbachicar/tidy-patch/internal/gitctx"
)

// DefaultConfigFile is the config file looked up in the working directory
// when --config-file is not given.
const DefaultConfigFile = ".llm-review-config.json"

// Config is the effective, merged configuration for a run. It is loaded
// once and passed explicitly; nothing reads it through package state.
type Config struct {
	// Temperature is the model sampling temperature, required from the
	// config file, in [0.0, 2.0].
	Temperature float64 `json:"temperature"`
	// Provider selects the inference client (ollama, openai).
	Provider string `json:"provider"`
	// Model is the model identifier passed to the provider.
	Model string `json:"model"`
	// Host overrides the provider endpoint address.
	Host string `json:"host,omitempty"`
	// OutputFormat selects the wire format the model is asked for:
	// json, json-no-paths, or sentinel.
	OutputFormat string `json:"outputFormat"`
	// ReportFormat selects the report writer: text, markdown, or json.
	ReportFormat string `json:"reportFormat"`
	// Extensions is the allowlist of file suffixes to review.
	Extensions []string `json:"extensions"`
	// RedactSecrets strips secret-looking strings from diffs before they
	// leave the machine.
	RedactSecrets bool `json:"redactSecrets"`
	// RosDistro names the target ROS distribution injected into the prompt.
	RosDistro string `json:"rosDistro"`
}

// ConfigError reports a missing or invalid configuration file.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("config %s: %s", e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError checks if an error is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Default returns a Config with all defaults applied. Temperature has no
// default: the config file must provide it.
func Default() Config {
	return Config{
		Provider:      "ollama",
		Model:         "qwen3:4b",
		OutputFormat:  "json",
		ReportFormat:  "text",
		Extensions:    gitctx.DefaultExtensions,
		RedactSecrets: true,
		RosDistro:     "jazzy",
	}
}

// fileConfig mirrors Config with pointers where absence must be
// distinguished from the zero value.
type fileConfig struct {
	Temperature   *float64 `json:"temperature"`
	Provider      string   `json:"provider"`
	Model         string   `json:"model"`
	Host          string   `json:"host"`
	OutputFormat  string   `json:"outputFormat"`
	ReportFormat  string   `json:"reportFormat"`
	Extensions    []string `json:"extensions"`
	RedactSecrets *bool    `json:"redactSecrets"`
	RosDistro     string   `json:"rosDistro"`
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The file is mandatory and must carry a temperature in range;
// a missing file is a fatal, user-visible error for a commit-gating tool.
// The overrides map comes from CLI flags (only set values should appear).
func Load(path string, overrides map[string]string) (Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, &ConfigError{Path: path, Reason: "file not found"}
		}
		return Config{}, &ConfigError{Path: path, Reason: "reading file", Err: err}
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, &ConfigError{Path: path, Reason: "parsing file", Err: err}
	}
	if fc.Temperature == nil {
		return Config{}, &ConfigError{Path: path, Reason: `missing required key "temperature"`}
	}
	if *fc.Temperature < 0.0 || *fc.Temperature > 2.0 {
		return Config{}, &ConfigError{
			Path:   path,
			Reason: fmt.Sprintf("temperature %v out of range [0.0, 2.0]", *fc.Temperature),
		}
	}

	cfg := Default()
	mergeFile(&cfg, fc)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)
	return cfg, nil
}

// Save writes the config as indented JSON to path.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func mergeFile(dst *Config, src fileConfig) {
	dst.Temperature = *src.Temperature
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.OutputFormat != "" {
		dst.OutputFormat = src.OutputFormat
	}
	if src.ReportFormat != "" {
		dst.ReportFormat = src.ReportFormat
	}
	if len(src.Extensions) > 0 {
		dst.Extensions = src.Extensions
	}
	if src.RedactSecrets != nil {
		dst.RedactSecrets = *src.RedactSecrets
	}
	if src.RosDistro != "" {
		dst.RosDistro = src.RosDistro
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("TIDY_PATCH_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("TIDY_PATCH_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TIDY_PATCH_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("TIDY_PATCH_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = v
	}
	if v := os.Getenv("TIDY_PATCH_REPORT_FORMAT"); v != "" {
		cfg.ReportFormat = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["host"]; ok && v != "" {
		cfg.Host = v
	}
	if v, ok := overrides["outputFormat"]; ok && v != "" {
		cfg.OutputFormat = v
	}
	if v, ok := overrides["reportFormat"]; ok && v != "" {
		cfg.ReportFormat = v
	}
	if v, ok := overrides["rosDistro"]; ok && v != "" {
		cfg.RosDistro = v
	}
	if v, ok := overrides["redactSecrets"]; ok {
		cfg.RedactSecrets = v == "true"
	}
}
