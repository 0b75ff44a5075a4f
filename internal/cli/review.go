package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/agalbachicar/tidy-patch/internal/config"
	"github.com/agalbachicar/tidy-patch/internal/gitctx"
	"github.com/agalbachicar/tidy-patch/internal/output"
	"github.com/agalbachicar/tidy-patch/internal/review"
	"github.com/spf13/cobra"
)

var (
	flagConfigFile   string
	flagExitZero     bool
	flagRosDistro    string
	flagProvider     string
	flagModel        string
	flagHost         string
	flagOutputFormat string
	flagReportFormat string
	flagOut          string
	flagNoRedact     bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfigFile, "config-file", "", "Path to the JSON configuration file (default .llm-review-config.json)")
	cmd.Flags().BoolVar(&flagExitZero, "exit-zero", false, "Always exit zero regardless of the review result")
	cmd.Flags().StringVar(&flagRosDistro, "ros-distro", "", "ROS distribution name injected into the prompt")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "Inference provider (ollama, openai)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagHost, "host", "", "Inference endpoint address")
	cmd.Flags().StringVar(&flagOutputFormat, "output-format", "", "Model output format (json, json-no-paths, sentinel)")
	cmd.Flags().StringVar(&flagReportFormat, "report-format", "", "Report format (text, markdown, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Report file path (default: stderr)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagHost != "" {
		m["host"] = flagHost
	}
	if flagOutputFormat != "" {
		m["outputFormat"] = flagOutputFormat
	}
	if flagReportFormat != "" {
		m["reportFormat"] = flagReportFormat
	}
	if flagRosDistro != "" {
		m["rosDistro"] = flagRosDistro
	}
	if flagNoRedact {
		m["redactSecrets"] = "false"
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review staged changes and gate the commit",
	Long: "Review collects the staged diff, sends one chunk per changed file to the\n" +
		"configured model, and prints the violations found. Exit code 1 blocks the\n" +
		"commit unless --exit-zero is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfigFile, buildOverrides())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if flagNoRedact {
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}
		runReview(cfg)
		return nil
	},
}

// runFunc runs the review engine over collected chunks. review.Run is the
// production implementation; tests substitute their own.
type runFunc func(ctx context.Context, chunks []gitctx.DiffChunk, meta gitctx.RepoMeta, cfg config.Config) (*review.Report, error)

func runReview(cfg config.Config) {
	gitStart := time.Now()
	chunks, err := gitctx.StagedChunks(cfg.Extensions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	meta, err := gitctx.GetRepoMeta()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	gitMs := time.Since(gitStart).Milliseconds()

	exitCode = reviewOutcome(chunks, meta, cfg, gitMs, review.Run)
}

// reviewOutcome runs the review over the collected chunks and maps the
// result to a process exit code: 0 for a clean pass or --exit-zero, 1 for
// violations, 3 for any runtime failure.
func reviewOutcome(chunks []gitctx.DiffChunk, meta gitctx.RepoMeta, cfg config.Config, gitMs int64, run runFunc) int {
	// An empty staging area is a clean pass; no inference call is made.
	if len(chunks) == 0 {
		fmt.Fprintln(os.Stderr, "No staged changes to review.")
		return ExitSuccess
	}

	report, err := run(context.Background(), chunks, meta, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitRuntimeError
	}
	report.Timing.GitMs = gitMs
	report.Timing.TotalMs += gitMs

	if err := output.WriteReport(report, cfg.ReportFormat, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return ExitRuntimeError
	}

	// --exit-zero forces the pass signal but never suppresses the report.
	if report.Blocks() && !flagExitZero {
		return ExitViolations
	}
	return ExitSuccess
}

func init() {
	addReviewFlags(reviewCmd)
}
