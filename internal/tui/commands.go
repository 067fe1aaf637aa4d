package tui

import "strings"

// Command represents a parsed slash command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a slash command from input.
// Returns nil if the input is not a slash command.
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	input = input[1:] // strip leading /
	parts := strings.SplitN(input, " ", 2)
	cmd := &Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// HelpText returns the help message for all slash commands, as markdown.
func HelpText() string {
	return `## Commands

Type a word or phrase and press Enter to save it as a note.

- ` + "`/open <url or file>`" + ` load a page and highlight your words on it
- ` + "`/apply`" + ` highlight the current page again
- ` + "`/remove`" + ` remove all highlights from the current page
- ` + "`/notes`" + ` list saved notes
- ` + "`/find <keyword>`" + ` search notes
- ` + "`/delete <id>`" + ` delete a note (asks first)
- ` + "`/color [color]`" + ` show or set the highlight color
- ` + "`/define <word or id>`" + ` print the dictionary link for a word or note
- ` + "`/save <path>`" + ` write the current page as HTML
- ` + "`/update`" + ` update vocabmark to the latest release
- ` + "`/clear`" + ` clear the message log
- ` + "`/help`" + ` show this help message
- ` + "`/quit`, `/bye`, `/exit`" + ` exit vocabmark`
}
