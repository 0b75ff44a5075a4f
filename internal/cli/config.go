package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agalbachicar/tidy-patch/internal/config"
	"github.com/spf13/cobra"
)

var configFileFlag string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tidy-patch configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFileFlag
		if path == "" {
			path = config.DefaultConfigFile
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "Config file already exists at %s\n", path)
			return nil
		}

		cfg := config.Default()
		cfg.Temperature = 0.2
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Config file created at %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFileFlag, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.PersistentFlags().StringVar(&configFileFlag, "config-file", "", "Path to the JSON configuration file")
}
