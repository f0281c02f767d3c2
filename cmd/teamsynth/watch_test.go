package main

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestNewWatchCmd(t *testing.T) {
	cmd := newWatchCmd()

	if cmd.Use != "watch [root]" {
		t.Errorf("Use = %q, want 'watch [root]'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Flags().Lookup("debounce") == nil {
		t.Error("missing --debounce flag")
	}

	if cmd.Flags().Lookup("output") == nil {
		t.Error("missing --output flag")
	}
}

func TestDebounceDefault(t *testing.T) {
	cmd := newWatchCmd()

	flag := cmd.Flags().Lookup("debounce")
	if flag == nil {
		t.Fatal("missing --debounce flag")
	}

	if flag.DefValue != "500ms" {
		t.Errorf("debounce default = %q, want '500ms'", flag.DefValue)
	}
}

func TestRelevantChange(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "index.py write",
			event: fsnotify.Event{Name: "/repo/modules_ale/tope/index.py", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "new team directory",
			event: fsnotify.Event{Name: "/repo/modules_payments", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "module directory removed",
			event: fsnotify.Event{Name: "/repo/modules_ale/tope", Op: fsnotify.Remove},
			want:  true,
		},
		{
			name:  "unrelated file",
			event: fsnotify.Event{Name: "/repo/README.md", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "chmod only",
			event: fsnotify.Event{Name: "/repo/modules_ale/tope/index.py", Op: fsnotify.Chmod},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevantChange(tt.event); got != tt.want {
				t.Errorf("relevantChange(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
