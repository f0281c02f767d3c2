package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/scalestack/teamsynth/internal/serialize"
	"github.com/scalestack/teamsynth/internal/synth"
)

// newWatchCmd creates the "watch" subcommand for re-synthesizing on
// module directory changes.
func newWatchCmd() *cobra.Command {
	var (
		debounce     time.Duration
		outputFormat string
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Re-synthesize stacks on module changes",
		Long: `Watch monitors modules_<team>/ directories and re-runs synthesis on
changes.

The watch command:
- Monitors team directories for index.py and directory changes
- Re-synthesizes all stacks on each change
- Debounces rapid changes to avoid excessive rebuilds

Examples:
    teamsynth watch .
    teamsynth watch . --debounce 1s
    teamsynth watch . -o build/stacks`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runWatch(root, watchOptions{
				debounce:     debounce,
				outputFormat: outputFormat,
				outDir:       outDir,
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Template format: json or yaml")
	cmd.Flags().StringVarP(&outDir, "output", "o", synth.DefaultOutDir, "Artifact directory")

	return cmd
}

type watchOptions struct {
	debounce     time.Duration
	outputFormat string
	outDir       string
}

// runWatch monitors the repository root and re-synthesizes on changes.
func runWatch(root string, opts watchOptions) error {
	format, err := serialize.ParseFormat(opts.outputFormat)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	// Watch the root itself (new modules_<team> dirs appear here) plus
	// every existing team directory tree.
	if err := watcher.Add(absRoot); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absRoot, err)
	}
	if err := addTeamDirs(watcher, absRoot); err != nil {
		return fmt.Errorf("failed to watch team dirs: %w", err)
	}
	fmt.Printf("Watching: %s\n", absRoot)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial synthesis...")
	runWatchSynth(root, opts.outDir, format)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevantChange(event) {
				continue
			}

			// New directories need to be watched too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}

			// Debounce: reset timer on each change.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, re-synthesizing...\n", time.Now().Format("15:04:05"))
			runWatchSynth(root, opts.outDir, format)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// relevantChange reports whether a filesystem event should trigger a
// re-synthesis: index.py edits, or structural changes under a team dir.
func relevantChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if base == "index.py" {
		return true
	}
	// Directory-level changes: anything inside or named modules_<team>.
	for _, part := range strings.Split(filepath.ToSlash(event.Name), "/") {
		if strings.HasPrefix(part, "modules_") {
			return true
		}
	}
	return false
}

// addTeamDirs adds every modules_<team> directory and its
// subdirectories to the watcher.
func addTeamDirs(watcher *fsnotify.Watcher, root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "modules_") {
			continue
		}
		teamDir := filepath.Join(root, e.Name())
		err := filepath.Walk(teamDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if strings.HasPrefix(filepath.Base(path), ".") && path != teamDir {
					return filepath.SkipDir
				}
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func runWatchSynth(root, outDir string, format serialize.Format) {
	result, err := synth.Run(synth.Options{Root: root, OutDir: outDir, Format: format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Synthesis error: %v\n", err)
		return
	}
	fmt.Printf("Synthesized %d stack(s), %d function(s) -> %s\n",
		len(result.Stacks), len(result.Records), outDir)
}
