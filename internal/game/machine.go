package game

import (
	"math/rand/v2"
	"unicode/utf8"

	"github.com/kevinzwang/randy/internal/session"
)

// Machine is the screen state machine. It owns the active screen, the game
// session and the model catalogue. Every (screen, command) pair is handled;
// pairs with no listed transition are no-ops.
type Machine struct {
	Screen    Screen
	Session   *session.Session
	Catalogue *Catalogue
	Quit      bool

	// Capacity is the number of catalogue rows the model menu can show. The
	// renderer keeps it in step with the terminal size.
	Capacity int

	rng      *rand.Rand
	round    Round
	rejected error
}

// NewMachine starts at MainMenu(Play) with model as the chosen model.
func NewMachine(rng *rand.Rand, model string) *Machine {
	return &Machine{
		Screen:    MainMenu{Item: MainPlay},
		Session:   &session.Session{},
		Catalogue: NewCatalogue(model),
		Capacity:  1,
		rng:       rng,
	}
}

// Apply applies one command and reports what the caller must do next.
func (m *Machine) Apply(in Input) Effect {
	if in.Command == CmdQuit {
		m.Quit = true
		return EffectQuit
	}
	// Nothing but quit is honoured while the catalogue is being fetched.
	if m.Catalogue.Loading() {
		return EffectNone
	}

	switch in.Command {
	case CmdAppend, CmdDelete, CmdSwitchFocus, CmdConfirm:
		return m.edit(in)
	case CmdSelect:
		return m.selectItem()
	case CmdBack:
		m.back()
	case CmdDown:
		m.down()
	case CmdUp:
		m.up()
	}
	return EffectNone
}

func (m *Machine) selectItem() Effect {
	switch s := m.Screen.(type) {
	case MainMenu:
		switch s.Item {
		case MainPlay:
			m.startRound()
		case MainOptions:
			m.Screen = OptionsMenu{Item: OptionsModel}
		case MainExit:
			m.Quit = true
			return EffectQuit
		}
	case OptionsMenu:
		switch s.Item {
		case OptionsModel:
			m.Catalogue.loading = true
			return EffectFetchModels
		case OptionsReturn:
			m.Screen = MainMenu{Item: MainPlay}
		}
	case ModelMenu:
		m.Catalogue.Choose()
	case InGame:
		end, ok := s.Sub.(EndMenu)
		if !ok {
			return EffectNone
		}
		switch end.Item {
		case EndRepeat:
			m.startRound()
		case EndExit:
			m.Quit = true
			return EffectQuit
		}
	}
	return EffectNone
}

func (m *Machine) back() {
	switch s := m.Screen.(type) {
	case OptionsMenu:
		if s.Item == OptionsModel {
			m.Screen = MainMenu{Item: MainPlay}
		}
	case ModelMenu:
		m.Screen = OptionsMenu{Item: OptionsModel}
	}
}

func (m *Machine) down() {
	switch s := m.Screen.(type) {
	case MainMenu:
		switch s.Item {
		case MainPlay:
			m.Screen = MainMenu{Item: MainOptions}
		case MainOptions:
			m.Screen = MainMenu{Item: MainExit}
		case MainExit:
			m.Screen = MainMenu{Item: MainPlay}
		}
	case OptionsMenu:
		if s.Item == OptionsModel {
			m.Screen = OptionsMenu{Item: OptionsReturn}
		}
	case ModelMenu:
		m.Catalogue.Advance(Forward, m.Capacity)
	case InGame:
		if end, ok := s.Sub.(EndMenu); ok && end.Item == EndRepeat {
			m.Screen = InGame{Sub: EndMenu{Item: EndExit}}
		}
	}
}

func (m *Machine) up() {
	switch s := m.Screen.(type) {
	case MainMenu:
		switch s.Item {
		case MainPlay:
			m.Screen = MainMenu{Item: MainExit}
		case MainOptions:
			m.Screen = MainMenu{Item: MainPlay}
		case MainExit:
			m.Screen = MainMenu{Item: MainOptions}
		}
	case OptionsMenu:
		if s.Item == OptionsReturn {
			m.Screen = OptionsMenu{Item: OptionsModel}
		}
	case ModelMenu:
		m.Catalogue.Advance(Backward, m.Capacity)
	case InGame:
		if end, ok := s.Sub.(EndMenu); ok && end.Item == EndExit {
			m.Screen = InGame{Sub: EndMenu{Item: EndRepeat}}
		}
	}
}

// edit handles the text-entry commands. They only apply on the prompt screen
// and never while a round is being resolved.
func (m *Machine) edit(in Input) Effect {
	g, ok := m.Screen.(InGame)
	if !ok {
		return EffectNone
	}
	p, ok := g.Sub.(Prompt)
	if !ok || m.Session.Processing {
		return EffectNone
	}

	switch in.Command {
	case CmdAppend:
		f := m.field(p.Focus)
		*f += in.Text
	case CmdDelete:
		f := m.field(p.Focus)
		_, size := utf8.DecodeLastRuneInString(*f)
		*f = (*f)[:len(*f)-size]
	case CmdSwitchFocus:
		if p.Focus == FieldRange {
			m.Screen = InGame{Sub: Prompt{Focus: FieldGuess}}
		} else {
			m.Screen = InGame{Sub: Prompt{Focus: FieldRange}}
		}
	case CmdConfirm:
		round, err := ParseRound(m.Session.RangeText, m.Session.GuessText)
		if err != nil {
			m.rejected = err
			m.Session.Invalid = true
			return EffectNone
		}
		m.round = round
		m.rejected = nil
		m.Session.Invalid = false
		m.Session.Processing = true
		return EffectResolve
	}
	return EffectNone
}

func (m *Machine) field(f Field) *string {
	if f == FieldRange {
		return &m.Session.RangeText
	}
	return &m.Session.GuessText
}

func (m *Machine) startRound() {
	m.Session.StartRound()
	m.rejected = nil
	m.Screen = InGame{Sub: Prompt{Focus: FieldRange}}
}

// Rejection returns why the last submit was refused, or nil.
func (m *Machine) Rejection() error {
	return m.rejected
}

// Round returns the round accepted by the last successful submit.
func (m *Machine) Round() Round {
	return m.round
}

// Draw performs the random draw for the pending round and records the
// outcome. A correct guess scores one point. It is a no-op returning
// OutcomeUnset when no round is being resolved.
func (m *Machine) Draw() session.Outcome {
	if !m.Session.Processing {
		return session.OutcomeUnset
	}
	drawn := Draw(m.rng, m.round)
	outcome := Judge(m.round, drawn)
	m.Session.Drawn = drawn
	m.Session.Outcome = outcome
	if outcome == session.OutcomeCorrect {
		m.Session.Score++
	}
	return outcome
}

// FinishRound stores the reply and moves to the end-of-round menu.
func (m *Machine) FinishRound(reply string) {
	m.Session.Reply = reply
	m.Session.Processing = false
	m.Screen = InGame{Sub: EndMenu{Item: EndRepeat}}
}

// LoadCatalogue installs a freshly fetched catalogue and enters the model
// menu with the first entry highlighted. An empty listing is rejected and the
// screen is left unchanged.
func (m *Machine) LoadCatalogue(items []string) error {
	if err := m.Catalogue.Load(items); err != nil {
		return err
	}
	m.Catalogue.Clamp(m.Capacity)
	m.Screen = ModelMenu{}
	return nil
}
