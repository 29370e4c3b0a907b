package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kevinzwang/randy/internal/database"
	"github.com/kevinzwang/randy/internal/game"
	"github.com/kevinzwang/randy/internal/openrouter"
	"github.com/kevinzwang/randy/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	models     []string
	listErr    error
	replies    []string
	respondErr error
	asked      []string
}

func (f *fakeRemote) ListModels(ctx context.Context) ([]string, error) {
	return f.models, f.listErr
}

func (f *fakeRemote) Respond(ctx context.Context, model, outcome string) (string, error) {
	f.asked = append(f.asked, model+"|"+outcome)
	if f.respondErr != nil {
		return "", f.respondErr
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	text := f.replies[0]
	f.replies = f.replies[1:]
	return text, nil
}

func newTestModel(t *testing.T, remote *fakeRemote, ledger *session.Service) *Model {
	t.Helper()
	m := NewModel(Options{
		Remote: remote,
		Ledger: ledger,
		Model:  "qwen/qwen3-32b:free",
		Seed:   1,
		Retry:  game.RetryPolicy{MaxAttempts: 5},
	})
	// Height 11 leaves room for three catalogue rows.
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 11})
	return m
}

// press feeds keys one by one and returns the command of the last one.
func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func typeKeys(s string) []tea.KeyMsg {
	var out []tea.KeyMsg
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPlayRound(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	remote := &fakeRemote{replies: []string{"", "Well I'll be, partner!"}}
	m := newTestModel(t, remote, session.NewService(db))

	press(m, runes("l"))
	require.Equal(t, game.Screen(game.InGame{Sub: game.Prompt{Focus: game.FieldRange}}), m.Machine().Screen)
	assert.Contains(t, m.View(), "Input a range in the format n..m where n < m")

	press(m, typeKeys("1..10")...)
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	press(m, typeKeys("5")...)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Machine().Session.Processing)
	assert.NotEqual(t, session.OutcomeUnset, m.Machine().Session.Outcome)
	assert.Contains(t, m.View(), "Processing")

	// Typing is ignored while the reply is pending.
	press(m, typeKeys("9")...)
	assert.Equal(t, "5", m.Machine().Session.GuessText)

	msg := cmd()
	m.Update(msg)
	assert.Equal(t, game.Screen(game.InGame{Sub: game.EndMenu{Item: game.EndRepeat}}), m.Machine().Screen)
	assert.False(t, m.Machine().Session.Processing)
	assert.Equal(t, "Well I'll be, partner!", m.Machine().Session.Reply)
	assert.Len(t, remote.asked, 2)
	assert.Equal(t, "qwen/qwen3-32b:free|"+m.Machine().Session.Outcome.String(), remote.asked[0])

	view := m.View()
	assert.Contains(t, view, "Well I'll be, partner!")
	assert.Contains(t, view, "Continue for another game?")
	assert.Contains(t, view, "Round 1")

	recent, err := session.NewService(db).Recent(0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 2, recent[0].Attempts)
	assert.Equal(t, uint64(5), recent[0].Guess)

	// Another game keeps the score and starts from empty fields.
	score := m.Machine().Session.Score
	press(m, runes("l"))
	assert.Equal(t, game.Screen(game.InGame{Sub: game.Prompt{Focus: game.FieldRange}}), m.Machine().Screen)
	assert.Empty(t, m.Machine().Session.RangeText)
	assert.Equal(t, score, m.Machine().Session.Score)
}

func TestInvalidInputStaysOnPrompt(t *testing.T) {
	m := newTestModel(t, &fakeRemote{}, nil)

	press(m, runes("l"))
	press(m, typeKeys("10..1")...)
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	press(m, typeKeys("5")...)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, game.Screen(game.InGame{Sub: game.Prompt{Focus: game.FieldGuess}}), m.Machine().Screen)
	assert.True(t, m.Machine().Session.Invalid)
	assert.Contains(t, m.View(), "Incorrect input")
}

func TestModelMenu(t *testing.T) {
	models := make([]string, 5)
	for i := range models {
		models[i] = fmt.Sprintf("item%d", i)
	}
	m := newTestModel(t, &fakeRemote{models: models}, nil)

	press(m, runes("j"), runes("l"))
	require.Equal(t, game.Screen(game.OptionsMenu{Item: game.OptionsModel}), m.Machine().Screen)

	cmd := press(m, runes("l"))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Fetching models")

	m.Update(cmd())
	require.Equal(t, game.Screen(game.ModelMenu{}), m.Machine().Screen)
	assert.Equal(t, 3, m.Machine().Capacity)

	press(m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, "item3", m.Machine().Catalogue.Highlighted())
	assert.Equal(t, 1, m.Machine().Catalogue.Offset())
	press(m, runes("j"))
	assert.Equal(t, 2, m.Machine().Catalogue.Offset())

	view := m.View()
	assert.Contains(t, view, "item4")
	assert.NotContains(t, view, "item1")

	press(m, runes("l"))
	assert.Equal(t, "item4", m.Machine().Catalogue.Chosen)

	// Shrinking the window pulls the offset so the highlight stays visible.
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 9})
	m.View()
	assert.Equal(t, 4, m.Machine().Catalogue.Offset())

	press(m, runes("h"))
	assert.Equal(t, game.Screen(game.OptionsMenu{Item: game.OptionsModel}), m.Machine().Screen)
}

func TestEmptyCatalogueIsFatal(t *testing.T) {
	m := newTestModel(t, &fakeRemote{}, nil)
	m.Machine().Screen = game.OptionsMenu{Item: game.OptionsModel}

	cmd := press(m, runes("l"))
	_, cmd = m.Update(cmd())

	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), game.ErrEmptyCatalogue)
}

func TestRemoteErrorIsFatal(t *testing.T) {
	remote := &fakeRemote{respondErr: &openrouter.StatusError{Status: 402, Message: "Insufficient credits"}}
	m := newTestModel(t, remote, nil)

	press(m, runes("l"))
	press(m, typeKeys("1..3")...)
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	press(m, typeKeys("2")...)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = m.Update(cmd())

	assert.True(t, isQuit(cmd))
	var se *openrouter.StatusError
	require.True(t, errors.As(m.Err(), &se))
	assert.Equal(t, openrouter.CauseInsufficientCredits, se.Cause())
	assert.True(t, strings.Contains(openrouter.Describe(m.Err()), "insufficient credits"))
}

func TestListErrorIsFatal(t *testing.T) {
	m := newTestModel(t, &fakeRemote{listErr: errors.New("dial tcp: refused")}, nil)
	m.Machine().Screen = game.OptionsMenu{Item: game.OptionsModel}

	cmd := press(m, runes("l"))
	_, cmd = m.Update(cmd())

	assert.True(t, isQuit(cmd))
	assert.ErrorContains(t, m.Err(), "failed to list models")
}

func TestQuitFromAnyScreen(t *testing.T) {
	screens := []game.Screen{
		game.MainMenu{Item: game.MainOptions},
		game.OptionsMenu{Item: game.OptionsReturn},
		game.ModelMenu{},
		game.InGame{Sub: game.Prompt{Focus: game.FieldGuess}},
		game.InGame{Sub: game.EndMenu{Item: game.EndExit}},
	}

	for _, s := range screens {
		t.Run(s.String(), func(t *testing.T) {
			m := newTestModel(t, &fakeRemote{}, nil)
			m.Machine().Screen = s

			cmd := press(m, runes("q"))
			assert.True(t, isQuit(cmd))
			assert.True(t, m.Machine().Quit)
			assert.Error(t, m.ctx.Err())
			assert.NoError(t, m.Err())
		})
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := NewModel(Options{Remote: &fakeRemote{}})
	assert.Equal(t, "Loading...", m.View())
}
