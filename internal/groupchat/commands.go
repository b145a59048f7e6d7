package groupchat

import "strings"

// Command is a slash command the backend bot understands. Commands travel as
// ordinary message content; the client only surfaces them for discovery.
type Command struct {
	Name        string
	Description string
}

// Commands lists the slash commands available inside a case group chat.
var Commands = []Command{
	{Name: "/summarize", Description: "Summarize the discussion so far"},
	{Name: "/timeline", Description: "Build a timeline of the incident from the chat"},
	{Name: "/evidence", Description: "Collect evidence mentioned in the chat"},
	{Name: "/lawhelp", Description: "Get guidance on legal next steps"},
}

// IsCommand reports whether content starts with a slash. Unknown commands are
// still sent; the backend decides what to do with them.
func IsCommand(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "/")
}

// Hint returns a one-line usage hint listing the available commands.
func Hint() string {
	names := make([]string, 0, len(Commands))
	for _, c := range Commands {
		names = append(names, c.Name)
	}
	return "Commands: " + strings.Join(names, " ")
}
