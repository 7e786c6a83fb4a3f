package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/ebb/internal/event"
)

// ErrUnknownCommand is returned by ParseCommandLine for names it does not
// know.
var ErrUnknownCommand = errors.New("not an editor command")

// commandAliases maps ':' command names onto events. Commands that take an
// argument pass the rest of the line through Command.Arg.
var commandAliases = map[string]event.Name{
	"q":       event.Quit,
	"quit":    event.Quit,
	"q!":      event.ForceQuit,
	"quit!":   event.ForceQuit,
	"w":       event.Save,
	"write":   event.Save,
	"saveas":  event.SaveAs,
	"wq":      event.WriteQuit,
	"x":       event.WriteQuit,
	"e":       event.Open,
	"edit":    event.Open,
	"o":       event.Open,
	"open":    event.Open,
	"bn":      event.NextBuffer,
	"bnext":   event.NextBuffer,
	"bp":      event.PrevBuffer,
	"bprev":   event.PrevBuffer,
	"bd":      event.CloseBuffer,
	"bdelete": event.CloseBuffer,
	"u":       event.Undo,
	"undo":    event.Undo,
	"redo":    event.Redo,
}

// ParseCommandLine turns the text typed at the ':' prompt into a command.
// Besides the aliases above any built-in event name is accepted, so
// "buffer.delete_line" works too.
func ParseCommandLine(line string) (event.Command, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, ":")
	if line == "" {
		return event.Command{}, fmt.Errorf("%w: empty command", ErrUnknownCommand)
	}

	name, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i != -1 {
		name, arg = line[:i], strings.TrimSpace(line[i+1:])
	}

	if ev, ok := commandAliases[name]; ok {
		return event.Command{Event: ev, Arg: arg}, nil
	}
	if ev, err := event.Parse(name); err == nil {
		return event.Command{Event: ev, Arg: arg}, nil
	}
	return event.Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}
