package game

// Command is an abstract user intent produced by the input classifier.
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdSelect
	CmdBack
	CmdQuit
	CmdAppend
	CmdDelete
	CmdSwitchFocus
	CmdConfirm
)

func (c Command) String() string {
	switch c {
	case CmdUp:
		return "up"
	case CmdDown:
		return "down"
	case CmdSelect:
		return "select"
	case CmdBack:
		return "back"
	case CmdQuit:
		return "quit"
	case CmdAppend:
		return "append"
	case CmdDelete:
		return "delete"
	case CmdSwitchFocus:
		return "switch-focus"
	case CmdConfirm:
		return "confirm"
	}
	return "none"
}

// Input is a command plus the text it carries. Only CmdAppend uses Text.
type Input struct {
	Command Command
	Text    string
}

// Effect tells the caller what must happen outside the state machine after a
// command has been applied.
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
	// EffectFetchModels asks for the model catalogue to be fetched and handed
	// back through Machine.LoadCatalogue.
	EffectFetchModels
	// EffectResolve asks for the round to be resolved: Machine.Draw, then the
	// remote reply, then Machine.FinishRound.
	EffectResolve
)
