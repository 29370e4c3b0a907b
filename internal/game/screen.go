package game

import "fmt"

// Screen identifies where the user is. Exactly one Screen is active at a time
// and it is the only dispatch key for both input handling and rendering.
//
// All variants are comparable values, so two screens can be compared with ==.
type Screen interface {
	isScreen()
	String() string
}

// GameScreen is the sub-state of an InGame screen.
type GameScreen interface {
	isGameScreen()
	String() string
}

// MainItem is the highlighted entry of the main menu.
type MainItem int

const (
	MainPlay MainItem = iota
	MainOptions
	MainExit
)

// OptionsItem is the highlighted entry of the options menu.
type OptionsItem int

const (
	OptionsModel OptionsItem = iota
	OptionsReturn
)

// Field is the text field that receives typed characters.
type Field int

const (
	FieldRange Field = iota
	FieldGuess
)

// EndItem is the highlighted answer of the end-of-round prompt.
type EndItem int

const (
	EndRepeat EndItem = iota
	EndExit
)

type MainMenu struct{ Item MainItem }

type OptionsMenu struct{ Item OptionsItem }

type InGame struct{ Sub GameScreen }

// ModelMenu lists the catalogue of remote models.
type ModelMenu struct{}

// Prompt is the text-entry screen of a round.
type Prompt struct{ Focus Field }

// EndMenu is shown once a round has been resolved.
type EndMenu struct{ Item EndItem }

func (MainMenu) isScreen()    {}
func (OptionsMenu) isScreen() {}
func (InGame) isScreen()      {}
func (ModelMenu) isScreen()   {}

func (Prompt) isGameScreen()  {}
func (EndMenu) isGameScreen() {}

func (i MainItem) String() string {
	switch i {
	case MainPlay:
		return "Play"
	case MainOptions:
		return "Options"
	case MainExit:
		return "Exit"
	}
	return fmt.Sprintf("MainItem(%d)", int(i))
}

func (i OptionsItem) String() string {
	switch i {
	case OptionsModel:
		return "Model"
	case OptionsReturn:
		return "Return"
	}
	return fmt.Sprintf("OptionsItem(%d)", int(i))
}

func (f Field) String() string {
	switch f {
	case FieldRange:
		return "Range"
	case FieldGuess:
		return "Input"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

func (i EndItem) String() string {
	switch i {
	case EndRepeat:
		return "Repeat"
	case EndExit:
		return "Exit"
	}
	return fmt.Sprintf("EndItem(%d)", int(i))
}

func (s MainMenu) String() string    { return "MainMenu(" + s.Item.String() + ")" }
func (s OptionsMenu) String() string { return "OptionsMenu(" + s.Item.String() + ")" }
func (ModelMenu) String() string     { return "ModelMenu" }
func (s Prompt) String() string      { return "Game(" + s.Focus.String() + ")" }
func (s EndMenu) String() string     { return "EndMenu(" + s.Item.String() + ")" }

func (s InGame) String() string {
	if s.Sub == nil {
		return "InGame(?)"
	}
	return "InGame(" + s.Sub.String() + ")"
}

// InPrompt reports whether s is the text-entry screen of a round.
func InPrompt(s Screen) bool {
	g, ok := s.(InGame)
	if !ok {
		return false
	}
	_, ok = g.Sub.(Prompt)
	return ok
}
