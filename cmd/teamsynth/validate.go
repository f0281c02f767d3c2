package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scalestack/teamsynth/internal/synth"
	"github.com/scalestack/teamsynth/internal/validation"
)

// errValidationFailed is returned when any template fails linting, so
// deferred cleanup in runValidate still runs before the process exits.
var errValidationFailed = errors.New("validation failed")

// newValidateCmd creates the "validate" subcommand: synthesize into a
// temporary directory, then run cfn-lint over every template.
func newValidateCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "validate [root]",
		Short: "Synthesize stacks and run cfn-lint on the templates",
		Long: `Validate runs a full synthesis pass into a temporary directory and
lints every generated template with cfn-lint.

Warnings are reported but do not fail validation; errors do.

Examples:
    teamsynth validate .
    teamsynth validate . --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runValidate(root, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runValidate(root, format string) error {
	outDir, err := os.MkdirTemp("", "teamsynth-validate-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(outDir)
	}()

	if _, err := synth.Run(synth.Options{Root: root, OutDir: outDir}); err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	result, err := validation.LintDir(outDir)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return outputValidateResult(result, format)
}

func outputValidateResult(result *validation.Result, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		for _, tr := range result.Templates {
			status := "OK"
			if !tr.Passed {
				status = "FAILED"
			}
			fmt.Printf("%s: %s\n", tr.Template, status)
			for _, e := range tr.Errors {
				fmt.Printf("  ERROR: %s\n", e)
			}
			for _, w := range tr.Warnings {
				fmt.Printf("  WARNING: %s\n", w)
			}
		}
		if result.Passed {
			fmt.Printf("\nValidation passed: %d template(s) OK\n", len(result.Templates))
		} else {
			fmt.Println("\nValidation FAILED")
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Passed {
		return errValidationFailed
	}

	return nil
}
