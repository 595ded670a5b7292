package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompletionCommandOutputsScripts(t *testing.T) {
	tests := []struct {
		name   string
		shell  string
		needle string
	}{
		{name: "bash", shell: "bash", needle: "# tasklist bash completion"},
		{name: "zsh", shell: "zsh", needle: "#compdef tasklist"},
		{name: "fish", shell: "fish", needle: "# tasklist fish completion"},
		{name: "powershell", shell: "powershell", needle: "# tasklist PowerShell completion"},
		{name: "pwsh alias", shell: "pwsh", needle: "# tasklist PowerShell completion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := completionCommand(&out, []string{tt.shell}); err != nil {
				t.Fatalf("completionCommand() error = %v", err)
			}
			if !strings.Contains(out.String(), tt.needle) {
				t.Fatalf("completion output missing %q for shell %q", tt.needle, tt.shell)
			}
			if !strings.Contains(out.String(), "import") {
				t.Errorf("completion output missing subcommands for shell %q", tt.shell)
			}
		})
	}
}

func TestCompletionCommandErrors(t *testing.T) {
	var out bytes.Buffer

	if err := completionCommand(&out, []string{}); err == nil {
		t.Fatal("expected error when shell is missing")
	}

	if err := completionCommand(&out, []string{"unknown"}); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}
