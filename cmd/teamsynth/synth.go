package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	teamsynth "github.com/scalestack/teamsynth"
	"github.com/scalestack/teamsynth/internal/serialize"
	"github.com/scalestack/teamsynth/internal/synth"
)

func newSynthCmd() *cobra.Command {
	var (
		outputFormat string
		outDir       string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "synth [root]",
		Short: "Generate one CloudFormation stack per team",
		Long: `Synth scans the repository root for modules_<team>/ directories and
generates a shared infrastructure stack plus one stack per team.

Templates and a deployment manifest are written to the artifact
directory (default synth.out/).

Examples:
    teamsynth synth .
    teamsynth synth . -o build/stacks
    teamsynth synth . -f yaml
    teamsynth synth . --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runSynth(root, outputFormat, outDir, dryRun)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Template format: json or yaml")
	cmd.Flags().StringVarP(&outDir, "output", "o", synth.DefaultOutDir, "Artifact directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Assemble stacks without writing artifacts")

	return cmd
}

func runSynth(root, format, outDir string, dryRun bool) error {
	f, err := serialize.ParseFormat(format)
	if err != nil {
		return err
	}

	result, err := synth.Run(synth.Options{
		Root:   root,
		OutDir: outDir,
		Format: f,
		DryRun: dryRun,
	})
	if err != nil {
		if result != nil {
			printSynthErrors(result)
		}
		return fmt.Errorf("synthesis failed: %w", err)
	}

	fmt.Printf("Synthesized %d stack(s), %d function(s)\n", len(result.Stacks), len(result.Records))
	for _, stack := range result.Stacks {
		if dryRun {
			fmt.Printf("  %s\n", stack.Name)
		} else {
			fmt.Printf("  %s -> %s\n", stack.Name, stack.TemplateFile)
		}
	}
	return nil
}

func printSynthErrors(result *teamsynth.SynthResult) {
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e)
	}
}
