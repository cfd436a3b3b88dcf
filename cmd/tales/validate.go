package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/tales/internal/cli"
	"github.com/aretw0/tales/internal/config"
	"github.com/aretw0/tales/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every story graph for consistency",
	Long: `Loads the built-in stories and those in --stories-dir, and reports dangling
options, endings with options, and scenes without a way forward.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)
		n, err := runValidate(cmd.Context(), cfg)
		if err != nil {
			defects := validator.ValidationErrors(err)
			if len(defects) == 0 {
				fmt.Printf("Validation failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Validation failed:")
			for _, e := range defects {
				fmt.Printf("  - %v\n", e)
			}
			os.Exit(1)
		}
		fmt.Printf("All %d stories are valid.\n", n)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(ctx context.Context, cfg config.Config) (int, error) {
	c, err := cli.LoadCatalog(ctx, cfg)
	if err != nil {
		return 0, err
	}
	for i, e := range c.List() {
		fmt.Printf("%d) %s: %d scenes, %d endings\n", i+1, e.Label(), e.Graph.Len(), len(e.Graph.Endings()))
	}
	return c.Len(), nil
}
