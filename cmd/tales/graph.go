package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/tales/internal/cli"
	"github.com/aretw0/tales/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <story-number>",
	Short: "Export a story graph as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the chosen story. With --path, the
scenes reached by replaying those picks are highlighted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)

		index, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Invalid story number %q\n", args[0])
			os.Exit(1)
		}

		c, err := cli.LoadCatalog(cmd.Context(), cfg)
		if err != nil {
			fmt.Printf("Error loading stories: %v\n", err)
			os.Exit(1)
		}
		g, err := c.Get(index)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.GraphOverlay
		if picks, _ := cmd.Flags().GetIntSlice("path"); len(picks) > 0 {
			overlay, err = graph.ReplayOverlay(g, picks)
			if err != nil {
				fmt.Printf("Error replaying path: %v\n", err)
				os.Exit(1)
			}
		}

		fmt.Print(graph.GenerateMermaid(g, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().IntSlice("path", nil, "Comma-separated picks to highlight, e.g. 1,2,1")
}
