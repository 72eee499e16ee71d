package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "root command without args shows help",
			args:           []string{},
			expectedOutput: "Firm Site API",
		},
		{
			name:           "root command with --help",
			args:           []string{"--help"},
			expectedOutput: "Available Commands:",
		},
		{
			name:    "root command with invalid flag",
			args:    []string{"--invalid-flag"},
			wantErr: true,
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

			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.expectedOutput != "" && !strings.Contains(buf.String(), tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, buf.String())
			}
		})
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"serve", "version", "migrate", "search"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("Expected %q subcommand to be registered", name)
		}
	}
}

func TestLogFlags(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.PersistentFlags().Lookup("log-level") == nil {
		t.Error("Expected log-level flag to be registered")
	}
	if cmd.PersistentFlags().Lookup("json-logs") == nil {
		t.Error("Expected json-logs flag to be registered")
	}
}

func TestOrDefault(t *testing.T) {
	if got := orDefault("", "info"); got != "info" {
		t.Errorf("orDefault empty = %q, want info", got)
	}
	if got := orDefault("debug", "info"); got != "debug" {
		t.Errorf("orDefault set = %q, want debug", got)
	}
}
