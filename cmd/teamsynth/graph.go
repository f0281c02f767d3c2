package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scalestack/teamsynth/internal/graph"
	"github.com/scalestack/teamsynth/internal/synth"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat     string
		includeFunctions bool
	)

	cmd := &cobra.Command{
		Use:   "graph [root]",
		Short: "Generate DOT graph of stack dependencies",
		Long: `Generate a DOT or Mermaid format graph of the stack topology.

The output can be rendered with Graphviz:
    teamsynth graph . | dot -Tpng -o stacks.png

Or used in GitHub markdown (Mermaid format):
    teamsynth graph . -f mermaid

Examples:
    teamsynth graph .
    teamsynth graph . --functions       # include function nodes
    teamsynth graph . -f mermaid`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runGraph(root, outputFormat, includeFunctions)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVar(&includeFunctions, "functions", false, "Include function nodes in the graph")

	return cmd
}

func runGraph(root, format string, includeFunctions bool) error {
	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	result, err := synth.Run(synth.Options{Root: root, DryRun: true})
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	gen := &graph.Generator{
		Format:           graphFormat,
		IncludeFunctions: includeFunctions,
	}
	return gen.Generate(result, os.Stdout)
}
