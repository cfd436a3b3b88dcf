package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tales/internal/cli"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the most recent adventures",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)

		limit := cfg.RecentLimit
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}

		rec, closeFn, err := cli.OpenRecorder(cfg)
		if err != nil {
			fmt.Printf("Error opening outcome log: %v\n", err)
			os.Exit(1)
		}
		defer closeFn()

		lines, err := rec.Recent(cmd.Context(), limit)
		if err != nil {
			fmt.Printf("Error reading outcome log: %v\n", err)
			os.Exit(1)
		}
		if len(lines) == 0 {
			fmt.Println("No adventures recorded yet.")
			return
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 10, "Number of adventures to show")
}
