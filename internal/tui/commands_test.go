package tui

import (
	"strings"
	"testing"
)

func TestParseSlashCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs string
	}{
		{"/help", "help", ""},
		{"/quit", "quit", ""},
		{"/open https://example.com", "open", "https://example.com"},
		{"/color hsl(120, 70%, 90%)", "color", "hsl(120, 70%, 90%)"},
		{"/DELETE 42", "delete", "42"},
		{"  /notes  ", "notes", ""},
	}

	for _, tt := range tests {
		cmd := ParseCommand(tt.input)
		if cmd == nil {
			t.Errorf("ParseCommand(%q) = nil, want command", tt.input)
			continue
		}
		if cmd.Name != tt.wantName {
			t.Errorf("ParseCommand(%q).Name = %q, want %q", tt.input, cmd.Name, tt.wantName)
		}
		if cmd.Args != tt.wantArgs {
			t.Errorf("ParseCommand(%q).Args = %q, want %q", tt.input, cmd.Args, tt.wantArgs)
		}
	}
}

func TestParseSlashCommand_NotACommand(t *testing.T) {
	tests := []string{
		"serendipity",
		"not a command",
		"",
		"  ",
	}

	for _, input := range tests {
		cmd := ParseCommand(input)
		if cmd != nil {
			t.Errorf("ParseCommand(%q) = %+v, want nil", input, cmd)
		}
	}
}

func TestHelpText(t *testing.T) {
	help := HelpText()
	commands := []string{"/help", "/quit", "/open", "/apply", "/remove", "/notes", "/find", "/delete", "/color", "/define", "/save", "/update", "/clear"}
	for _, cmd := range commands {
		if !strings.Contains(help, cmd) {
			t.Errorf("help text missing command: %s", cmd)
		}
	}
}

func TestRandomQuote(t *testing.T) {
	for range 20 {
		q := RandomQuote()
		inner := strings.TrimSuffix(strings.TrimPrefix(q, `"`), `"`)
		found := false
		for _, want := range motivationalQuotes {
			if inner == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("RandomQuote() = %q, not one of the known thoughts", q)
		}
	}
}
