package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModule(t *testing.T, root, team, module string) {
	t.Helper()
	dir := filepath.Join(root, "modules_"+team, module)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.py"), []byte("def main(event, context):\n    return {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewSynthCmd(t *testing.T) {
	cmd := newSynthCmd()

	if cmd.Use != "synth [root]" {
		t.Errorf("Use = %q, want 'synth [root]'", cmd.Use)
	}

	if cmd.Flags().Lookup("format") == nil {
		t.Error("missing --format flag")
	}
	if cmd.Flags().Lookup("output") == nil {
		t.Error("missing --output flag")
	}
	if cmd.Flags().Lookup("dry-run") == nil {
		t.Error("missing --dry-run flag")
	}
}

func TestRunSynth_WritesArtifacts(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "ale", "tope")
	outDir := filepath.Join(t.TempDir(), "out")

	if err := runSynth(root, "json", outDir, false); err != nil {
		t.Fatalf("runSynth failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "manifest.json")); err != nil {
		t.Errorf("expected manifest.json: %v", err)
	}
}

func TestRunSynth_RejectsUnknownFormat(t *testing.T) {
	if err := runSynth(t.TempDir(), "toml", "", true); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunList_JSONFormat(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "ale", "tope")

	if err := runList(root, "json"); err != nil {
		t.Fatalf("runList failed: %v", err)
	}
}

func TestRunList_RejectsUnknownFormat(t *testing.T) {
	if err := runList(t.TempDir(), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
