package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agalbachicar/tidy-patch/internal/config"
	"github.com/agalbachicar/tidy-patch/internal/gitctx"
	"github.com/agalbachicar/tidy-patch/internal/providers"
	"github.com/agalbachicar/tidy-patch/internal/redact"
)

const (
	toolName    = "tidy-patch"
	toolVersion = "0.1.0"
)

// Run reviews the given staged diff chunks sequentially and returns the
// assembled report. One inference call per chunk, no retries: a reviewer
// that cannot reach its model must fail the run, not approve the commit.
func Run(ctx context.Context, chunks []gitctx.DiffChunk, meta gitctx.RepoMeta, cfg config.Config) (*Report, error) {
	provider, err := providers.New(cfg.Provider, cfg.Model, cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	return RunWithProvider(ctx, chunks, meta, cfg, provider)
}

// RunWithProvider is Run with an injected inference client.
func RunWithProvider(ctx context.Context, chunks []gitctx.DiffChunk, meta gitctx.RepoMeta, cfg config.Config, provider providers.Reviewer) (*Report, error) {
	startTime := time.Now()

	format, err := ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	systemPrompt := SystemPrompt(format, cfg.RosDistro)

	var violations []Violation
	var files []string
	var llmMs int64

	for _, chunk := range chunks {
		diff := chunk.Diff
		if cfg.RedactSecrets {
			diff = redact.Secrets(diff)
		}
		if strings.TrimSpace(diff) == "" {
			continue
		}
		files = append(files, chunk.Path)

		req := providers.ReviewRequest{
			SystemPrompt: systemPrompt,
			UserPrompt:   BuildUserPrompt(diff),
			Temperature:  cfg.Temperature,
		}

		llmStart := time.Now()
		resp, err := provider.Review(ctx, req)
		llmMs += time.Since(llmStart).Milliseconds()
		if err != nil {
			return nil, fmt.Errorf("reviewing %s: %w", chunk.Path, err)
		}

		// An incomplete generation yields empty content; no violations can
		// be produced from this chunk, but the run goes on.
		if strings.TrimSpace(resp.Content) == "" {
			continue
		}

		parsed, err := ParseResponse(resp.Content, format, chunk.Path)
		if err != nil {
			return nil, fmt.Errorf("parsing response for %s: %w", chunk.Path, err)
		}
		violations = append(violations, parsed...)
	}

	return &Report{
		Tool:    toolName,
		Version: toolVersion,
		Repo: RepoInfo{
			Root:   meta.Root,
			Head:   meta.Head,
			Branch: meta.Branch,
		},
		Files:      files,
		Violations: violations,
		Timing: Timing{
			LLMMs:   llmMs,
			TotalMs: time.Since(startTime).Milliseconds(),
		},
	}, nil
}
