// Command teamsynth generates per-team CloudFormation stacks from a
// repository's module directories.
//
// Usage:
//
//	teamsynth synth .          Generate stacks for every team
//	teamsynth list .           Show discovered teams and modules
//	teamsynth validate .       Synthesize and run cfn-lint
//	teamsynth init payments    Scaffold modules_payments/
//	teamsynth version          Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scalestack/teamsynth/internal/logging"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "teamsynth",
		Short: "Generate per-team CloudFormation stacks from module directories",
		Long: `teamsynth scans a repository for modules_<team>/ directories and
generates one CloudFormation stack per team.

Each immediate subdirectory containing an index.py becomes a Lambda
function in that team's stack:

    modules_ale/
      tope/index.py    -> function modules-ale-tope-<stage>

Then generate the stacks:

    teamsynth synth .`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
			restore := logging.Setup(verbose)
			cobra.OnFinalize(restore)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newSynthCmd(),
		newListCmd(),
		newGraphCmd(),
		newValidateCmd(),
		newWatchCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("teamsynth %s\n", getVersion())
		},
	}
}
