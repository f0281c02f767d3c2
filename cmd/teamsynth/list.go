package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	teamsynth "github.com/scalestack/teamsynth"
	"github.com/scalestack/teamsynth/internal/discover"
)

func newListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List discovered teams and modules",
		Long: `List scans the repository root and shows every team directory and the
modules that would be deployed for it.

Examples:
    teamsynth list .
    teamsynth list . --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runList(root, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(root, format string) error {
	teams, err := discover.Teams(root)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	listResult := teamsynth.ListResult{
		Teams: make([]teamsynth.ListTeam, 0, len(teams)),
	}
	for _, team := range teams {
		modules, err := discover.Modules(team)
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}
		names := make([]string, 0, len(modules))
		for _, m := range modules {
			names = append(names, m.Name)
		}
		listResult.Teams = append(listResult.Teams, teamsynth.ListTeam{
			Name:    team.Name,
			Dir:     team.Dir,
			Modules: names,
		})
	}

	return outputListResult(listResult, format)
}

func outputListResult(result teamsynth.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if len(result.Teams) == 0 {
			fmt.Println("No teams found.")
			return nil
		}

		fmt.Printf("Discovered teams (%d):\n\n", len(result.Teams))
		for _, team := range result.Teams {
			fmt.Printf("  %s (%d module(s))\n", team.Name, len(team.Modules))
			for _, m := range team.Modules {
				fmt.Printf("    %s\n", m)
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
