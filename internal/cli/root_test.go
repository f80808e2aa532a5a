package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"cat", "window", "stats", "validate", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"config", "debug"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Missing persistent flag: %s", flag)
		}
	}
}

func TestNewRootCommand_ConfigFlagReachesSubcommand(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(logPath, []byte("a\nb\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("output:\n  format: json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"stats", "--config", configPath, logPath})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"LinesRead": 2`) {
		t.Errorf("expected JSON stats from the config file, got:\n%s", buf.String())
	}
}

func TestNewRootCommand_UnknownCommand(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"frobnicate"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err == nil {
		t.Error("Execute() expected error for unknown command")
	}
}
