package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/agalbachicar/tidy-patch/internal/providers"
	"github.com/spf13/cobra"
)

var modelsHost string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the local Ollama server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ollama := providers.NewOllama("", modelsHost)
		models, err := ollama.ListModels(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if len(models) == 0 {
			fmt.Fprintln(os.Stdout, "No models installed. Pull one with: ollama pull <model>")
			return nil
		}
		for _, m := range models {
			fmt.Fprintf(os.Stdout, "  - %s\n", m.Name)
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().StringVar(&modelsHost, "host", "", "Ollama server address")
}
