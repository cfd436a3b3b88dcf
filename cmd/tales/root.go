package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tales/internal/cli"
	"github.com/aretw0/tales/internal/config"
	"github.com/aretw0/tales/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tales",
	Short: "Tales is a choose-your-own-adventure player for the terminal",
	Long: `Tales presents branching stories one scene at a time, asks you to pick
an option, and records which ending you reached.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if err := cli.RunShell(ctx, cfg, os.Stdin, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: ./tales.yaml if present)")
	rootCmd.PersistentFlags().String("log", file.DefaultPath, "Path of the adventure log file")
	rootCmd.PersistentFlags().String("recorder", config.RecorderFile, "Outcome log backend: file, sqlite, redis or memory")
	rootCmd.PersistentFlags().String("stories-dir", "", "Directory with extra stories (YAML files or markdown folders)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log engine events to stderr")
	rootCmd.Flags().String("metrics-addr", "", "Serve traversal metrics on this address while playing")
}

// loadConfig merges defaults, config file and environment, then applies the
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("log") {
		cfg.LogPath, _ = flags.GetString("log")
	}
	if flags.Changed("recorder") {
		cfg.Recorder, _ = flags.GetString("recorder")
	}
	if flags.Changed("stories-dir") {
		cfg.StoriesDir, _ = flags.GetString("stories-dir")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.HTTPAddr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func mustConfig(cmd *cobra.Command) config.Config {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
