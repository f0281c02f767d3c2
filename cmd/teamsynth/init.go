package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
)

// validTeamName mirrors the discovery pattern: lowercase, alphanumeric
// and underscore, starting with a letter.
var validTeamName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func newInitCmd() *cobra.Command {
	var module string

	cmd := &cobra.Command{
		Use:   "init [team-name]",
		Short: "Scaffold a new team module directory",
		Long: `Init creates a modules_<team>/ directory with a starter module.

The team name must be lowercase alphanumeric/underscore, starting with a
letter, so discovery picks it up.

Examples:
    teamsynth init payments                    # Creates ./modules_payments/hello/index.py
    teamsynth init payments --module checkout  # Creates ./modules_payments/checkout/index.py`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(".", args[0], module)
		},
	}

	cmd.Flags().StringVarP(&module, "module", "m", "hello", "Name of the starter module")

	return cmd
}

// runInit creates {workspaceDir}/modules_{team}/{module}/index.py.
func runInit(workspaceDir, team, module string) error {
	if !validTeamName.MatchString(team) {
		return fmt.Errorf("invalid team name %q: must be lowercase, start with a letter, and contain only letters, numbers, or underscores", team)
	}
	if module == "" {
		module = "hello"
	}

	teamDir := filepath.Join(workspaceDir, "modules_"+team)
	moduleDir := filepath.Join(teamDir, module)
	entryPoint := filepath.Join(moduleDir, "index.py")

	if _, err := os.Stat(entryPoint); err == nil {
		return fmt.Errorf("module already exists: %s", entryPoint)
	}

	if err := os.MkdirAll(moduleDir, 0o755); err != nil {
		return fmt.Errorf("creating module directory: %w", err)
	}

	indexPy := fmt.Sprintf(`"""Starter module for team %s."""


def main(event, context):
    return {"statusCode": 200, "body": "hello from %s/%s"}
`, team, team, module)

	if err := os.WriteFile(entryPoint, []byte(indexPy), 0o644); err != nil {
		return fmt.Errorf("writing index.py: %w", err)
	}

	fmt.Printf("Created module: %s\n", moduleDir)
	fmt.Printf("  └── modules_%s/\n", team)
	fmt.Printf("      └── %s/\n", module)
	fmt.Printf("          └── index.py\n")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  teamsynth synth .")
	fmt.Println()

	return nil
}
