package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitViolations   = 1
	ExitUsageError   = 2
	ExitRuntimeError = 3
)

var rootCmd = &cobra.Command{
	Use:   "tidy-patch",
	Short: "LLM-backed style review of staged changes",
	Long: "tidy-patch reviews the staged git diff with a locally hosted LLM and\n" +
		"blocks the commit when style violations are found. The report is printed\n" +
		"to stderr; exit code 1 means violations, 0 means a clean review.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tidy-patch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "tidy-patch version %s\n", version)
	},
}
