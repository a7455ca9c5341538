package console

import (
	"regexp"
	"strings"
)

// Kind identifies a parsed console command.
type Kind int

const (
	KindUnknown Kind = iota
	KindAddPlayer
	KindRecordWin
	KindPrint
	KindWinner
	KindSave
	KindLoad
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindAddPlayer:
		return "add player"
	case KindRecordWin:
		return "record win"
	case KindPrint:
		return "print"
	case KindWinner:
		return "winner"
	case KindSave:
		return "save"
	case KindLoad:
		return "load"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one line of console input. Only the fields relevant to Kind are set.
type Command struct {
	Kind   Kind
	Name   string
	Winner string
	Loser  string
	Path   string
	Raw    string
}

const (
	addPlayerPrefix = "add player"
	recordWinPrefix = "record win"
	savePrefix      = "save"
	loadPrefix      = "load"
)

var (
	recordWinPattern = regexp.MustCompile(`^record win (\w*) (\w*)`)
	savePattern      = regexp.MustCompile(`^save (.*)$`)
	loadPattern      = regexp.MustCompile(`^load (.*)$`)
)

// Parse turns a console line into a Command. Lines that match no command, or
// that start like a command but miss its arguments, are KindUnknown.
func Parse(line string) Command {
	raw := strings.TrimRight(line, "\r\n")
	cmd := Command{Kind: KindUnknown, Raw: raw}

	switch {
	case strings.HasPrefix(raw, addPlayerPrefix):
		rest := strings.TrimPrefix(raw, addPlayerPrefix)
		if rest != "" && rest[0] != ' ' {
			return cmd
		}
		cmd.Kind = KindAddPlayer
		cmd.Name = strings.TrimSpace(rest)
	case strings.HasPrefix(raw, recordWinPrefix):
		found := recordWinPattern.FindStringSubmatch(raw)
		if found == nil {
			return cmd
		}
		cmd.Kind = KindRecordWin
		cmd.Winner = found[1]
		cmd.Loser = found[2]
	case raw == "print":
		cmd.Kind = KindPrint
	case raw == "winner":
		cmd.Kind = KindWinner
	case raw == "quit":
		cmd.Kind = KindQuit
	case strings.HasPrefix(raw, savePrefix):
		found := savePattern.FindStringSubmatch(raw)
		if found == nil {
			return cmd
		}
		cmd.Kind = KindSave
		cmd.Path = strings.TrimSpace(found[1])
	case strings.HasPrefix(raw, loadPrefix):
		found := loadPattern.FindStringSubmatch(raw)
		if found == nil {
			return cmd
		}
		cmd.Kind = KindLoad
		cmd.Path = strings.TrimSpace(found[1])
	}

	return cmd
}
