package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "version command shows version info",
			args:     []string{"version", "--short=false", "--json=false"},
			contains: []string{"Firm Site API", "Version:     vdev", "Go Version:", "OS/Arch:"},
		},
		{
			name:     "version command with --short flag",
			args:     []string{"version", "--short", "--json=false"},
			contains: []string{"vdev"},
			excludes: []string{"Git Commit"},
		},
		{
			name:     "version command with --json flag",
			args:     []string{"version", "--short=false", "--json"},
			contains: []string{`"version": "dev"`, `"goVersion": "go`},
			excludes: []string{"Firm Site API"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			resetHelpFlags(cmd)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("Expected output to contain %q, got %q", want, output)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(output, unwanted) {
					t.Errorf("Expected output not to contain %q, got %q", unwanted, output)
				}
			}
		})
	}
}

func TestVersionCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	versionCmd, _, err := cmd.Find([]string{"version"})
	if err != nil {
		t.Fatalf("Failed to find version command: %v", err)
	}

	for _, name := range []string{"short", "json"} {
		if versionCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected %s flag to be registered", name)
		}
	}
}
