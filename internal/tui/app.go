package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/kevinzwang/randy/internal/game"
	"github.com/kevinzwang/randy/internal/session"
)

// Version is set via ldflags at build time
var Version = "dev"

// Rows of the model menu taken by everything but the list: box border and
// padding, title, two spacer lines and the footer.
const modelMenuChrome = 8

// Remote is the OpenRouter surface the game needs.
type Remote interface {
	ListModels(ctx context.Context) ([]string, error)
	game.Responder
}

// Options configures a Model.
type Options struct {
	Remote Remote
	// Ledger records finished rounds. Nil disables the round tally.
	Ledger *session.Service
	Logger *log.Logger
	Model  string
	Seed   uint64
	Retry  game.RetryPolicy
}

// Custom messages
type modelsLoadedMsg struct {
	models []string
}

type replyMsg struct {
	text     string
	attempts int
}

type errMsg struct {
	err error
}

type Model struct {
	machine *game.Machine
	remote  Remote
	ledger  *session.Service
	logger  *log.Logger
	retry   game.RetryPolicy

	// Cancels in-flight requests when the program quits
	ctx    context.Context
	cancel context.CancelFunc

	// Window dimensions
	windowWidth  int
	windowHeight int

	spinner spinner.Model
	help    help.Model
	err     error

	// Ledger view of the last finished round
	round int
	tally session.Tally
}

func NewModel(opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = markerStyle

	h := help.New()
	h.ShortSeparator = " / "
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpDescStyle
	h.Styles.ShortSeparator = helpDescStyle

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		machine: game.NewMachine(game.NewRand(opts.Seed), opts.Model),
		remote:  opts.Remote,
		ledger:  opts.Ledger,
		logger:  logger,
		retry:   opts.Retry,
		ctx:     ctx,
		cancel:  cancel,
		spinner: s,
		help:    h,
	}
}

// Err returns the fatal error that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Machine exposes the game state.
func (m *Model) Machine() *game.Machine {
	return m.machine
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// --- Remote commands ---

func (m *Model) fetchModels() tea.Cmd {
	ctx, remote := m.ctx, m.remote
	return func() tea.Msg {
		models, err := remote.ListModels(ctx)
		if err != nil {
			return errMsg{fmt.Errorf("failed to list models: %w", err)}
		}
		return modelsLoadedMsg{models}
	}
}

func (m *Model) resolve(outcome session.Outcome) tea.Cmd {
	ctx, remote, retry := m.ctx, m.remote, m.retry
	model := m.machine.Catalogue.Chosen
	return func() tea.Msg {
		text, attempts, err := retry.Reply(ctx, remote, model, outcome)
		if err != nil {
			return errMsg{fmt.Errorf("failed to get a reply from %s: %w", model, err)}
		}
		return replyMsg{text: text, attempts: attempts}
	}
}

// --- Update ---

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.help.Width = msg.Width
		m.machine.Capacity = max(1, msg.Height-modelMenuChrome)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case modelsLoadedMsg:
		if err := m.machine.LoadCatalogue(msg.models); err != nil {
			return m.fail(err)
		}
		m.logger.Debug("catalogue loaded", "models", len(msg.models))
		return m, nil

	case replyMsg:
		m.machine.FinishRound(msg.text)
		m.recordRound(msg.attempts)
		return m, nil

	case errMsg:
		return m.fail(msg.err)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := Classify(msg, m.machine.Screen, m.machine.Session.Processing)
	if in.Command == game.CmdNone {
		return m, nil
	}

	before := m.machine.Screen
	effect := m.machine.Apply(in)
	if m.machine.Screen != before {
		m.logger.Debug("screen", "from", before, "to", m.machine.Screen, "command", in.Command)
	}

	switch effect {
	case game.EffectQuit:
		m.cancel()
		return m, tea.Quit
	case game.EffectFetchModels:
		return m, m.fetchModels()
	case game.EffectResolve:
		r := m.machine.Round()
		outcome := m.machine.Draw()
		m.logger.Info("round drawn",
			"start", r.Start, "end", r.End, "guess", r.Guess,
			"drawn", m.machine.Session.Drawn, "outcome", outcome)
		return m, m.resolve(outcome)
	}
	return m, nil
}

// fail stores a fatal error and ends the program.
func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("fatal", "err", err)
	m.err = err
	m.cancel()
	return m, tea.Quit
}

func (m *Model) recordRound(attempts int) {
	if m.ledger == nil {
		return
	}

	r, s := m.machine.Round(), m.machine.Session
	rec, err := m.ledger.RecordRound(session.Record{
		Model:    m.machine.Catalogue.Chosen,
		Start:    r.Start,
		End:      r.End,
		Guess:    r.Guess,
		Drawn:    s.Drawn,
		Outcome:  s.Outcome,
		Reply:    s.Reply,
		Attempts: attempts,
	})
	if err != nil {
		m.logger.Warn("could not record round", "err", err)
		return
	}

	tally, err := m.ledger.Tally()
	if err != nil {
		m.logger.Warn("could not count rounds", "err", err)
		return
	}
	m.tally = tally
	m.round = tally.Played
	m.logger.Debug("round recorded", "id", rec.ID, "attempts", attempts)
}
