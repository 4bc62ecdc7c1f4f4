package discord

import (
	"regexp"
	"strings"

	"github.com/jose-valero/kart-queue-bot/internal/race"
)

// TextCommand is a prefix command typed in the queue channel, e.g.
// "!join Rainbow Road cup", "!leave" or "!list".
type TextCommand struct {
	Name  string // join | leave | list
	Track string
	Mode  race.Mode
}

var reTextCmd = regexp.MustCompile(`(?i)^\s*(join|leave|list|queues)\b\s*(.*?)\s*$`)

// ParseTextCommand reads content as a prefix command. Unknown commands and
// messages without the prefix are ignored.
func ParseTextCommand(prefix, content string) (TextCommand, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return TextCommand{}, false
	}
	m := reTextCmd.FindStringSubmatch(content[len(prefix):])
	if m == nil {
		return TextCommand{}, false
	}

	cmd := TextCommand{Name: strings.ToLower(m[1]), Mode: race.Auto}
	if cmd.Name == "queues" {
		cmd.Name = "list"
	}
	if cmd.Name != "join" {
		return cmd, true
	}

	words := strings.Fields(m[2])
	if len(words) == 0 {
		return TextCommand{}, false
	}
	// a trailing mode word is optional: "!join Rainbow Road tt"
	if len(words) > 1 {
		if mode, err := race.ParseMode(words[len(words)-1]); err == nil {
			cmd.Mode = mode
			words = words[:len(words)-1]
		}
	}
	cmd.Track = strings.Join(words, " ")
	return cmd, true
}
