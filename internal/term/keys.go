package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/cyberhacker/internal/notify"
	"github.com/Zachkp/cyberhacker/internal/section"
)

type CommandKind int

const (
	None CommandKind = iota
	Quit
	Navigate
	ToggleMenu
	Notify
)

// Command is what a key press asks the view to do.
type Command struct {
	Kind    CommandKind
	Section section.Section
	Action  notify.Action
}

var actionKeys = map[rune]notify.Action{
	'c': notify.Contact,
	'e': notify.Email,
	'g': notify.GitHub,
	'p': notify.Project,
	's': notify.SeeMore,
}

// KeyCommand maps a key press to a Command. Digits 1-5 pick a section in
// menu order.
func KeyCommand(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Kind: Quit}
	case tcell.KeyRune:
	default:
		return Command{}
	}

	r := ev.Rune()
	switch {
	case r == 'q':
		return Command{Kind: Quit}
	case r == 'm':
		return Command{Kind: ToggleMenu}
	case r >= '1' && r <= '5':
		return Command{Kind: Navigate, Section: section.All()[r-'1']}
	}
	if a, ok := actionKeys[r]; ok {
		return Command{Kind: Notify, Action: a}
	}
	return Command{}
}
