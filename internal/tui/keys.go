package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kevinzwang/randy/internal/game"
)

// keyMap holds every binding the game reacts to.
type keyMap struct {
	Down        key.Binding
	Up          key.Binding
	Select      key.Binding
	Back        key.Binding
	Quit        key.Binding
	SwitchFocus key.Binding
	Confirm     key.Binding
	Delete      key.Binding
}

var keys = keyMap{
	Down: key.NewBinding(
		key.WithKeys("j"),
		key.WithHelp("(j)", "down"),
	),
	Up: key.NewBinding(
		key.WithKeys("k"),
		key.WithHelp("(k)", "up"),
	),
	Select: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("(l)", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("(h)", "return"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("(q)", "quit"),
	),
	SwitchFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("(tab)", "switch between panels"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("(ret)", "continue"),
	),
	Delete: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("(bksp)", "delete"),
	),
}

// Footer bindings per screen.
var (
	menuHelp    = []key.Binding{keys.Down, keys.Up, keys.Select}
	subMenuHelp = []key.Binding{keys.Down, keys.Up, keys.Select, keys.Back}
	promptHelp  = []key.Binding{keys.SwitchFocus, keys.Confirm}
)

// Classify turns a key press into a game command. Quit and the four
// navigation letters always classify; typing, tab, backspace and enter only
// do so on the prompt screen while no round is being resolved.
func Classify(msg tea.KeyMsg, screen game.Screen, processing bool) game.Input {
	switch {
	case key.Matches(msg, keys.Quit):
		return game.Input{Command: game.CmdQuit}
	case key.Matches(msg, keys.Down):
		return game.Input{Command: game.CmdDown}
	case key.Matches(msg, keys.Up):
		return game.Input{Command: game.CmdUp}
	case key.Matches(msg, keys.Select):
		return game.Input{Command: game.CmdSelect}
	case key.Matches(msg, keys.Back):
		return game.Input{Command: game.CmdBack}
	}

	if !game.InPrompt(screen) || processing {
		return game.Input{}
	}

	switch {
	case key.Matches(msg, keys.SwitchFocus):
		return game.Input{Command: game.CmdSwitchFocus}
	case key.Matches(msg, keys.Confirm):
		return game.Input{Command: game.CmdConfirm}
	case key.Matches(msg, keys.Delete):
		return game.Input{Command: game.CmdDelete}
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return game.Input{}
		}
		return game.Input{Command: game.CmdAppend, Text: string(msg.Runes)}
	case tea.KeySpace:
		return game.Input{Command: game.CmdAppend, Text: " "}
	}
	return game.Input{}
}
