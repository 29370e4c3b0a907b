package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/kevinzwang/randy/internal/game"
	"github.com/kevinzwang/randy/internal/session"
)

const (
	rangePrompt = "Input a range in the format n..m where n < m"
	guessPrompt = "Input a number in the above range"

	chosenMarker = "•"
	cursorBlock  = "█"

	maxReplyWidth = 60
)

var (
	mainItems    = []string{"Play", "Options", "Exit"}
	optionsItems = []string{"Model", "Return"}
	endItems     = []string{"Yes", "No"}
)

func (m *Model) View() string {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return "Loading..."
	}

	var content string
	switch s := m.machine.Screen.(type) {
	case game.MainMenu:
		content = m.viewMenu("Main menu", mainItems, int(s.Item), menuHelp)
	case game.OptionsMenu:
		content = m.viewOptionsMenu(s)
	case game.ModelMenu:
		content = m.viewModelMenu()
	case game.InGame:
		switch sub := s.Sub.(type) {
		case game.Prompt:
			content = m.viewPrompt(sub)
		case game.EndMenu:
			content = m.viewEndMenu(sub)
		}
	}

	return lipgloss.Place(m.windowWidth, m.windowHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewMenu(title string, items []string, selected int, bindings []key.Binding) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(renderItems(items, selected))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(bindings))
	return boxStyle.Render(b.String())
}

func (m *Model) viewOptionsMenu(s game.OptionsMenu) string {
	if !m.machine.Catalogue.Loading() {
		return m.viewMenu("Options menu", optionsItems, int(s.Item), subMenuHelp)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Options menu"))
	b.WriteString("\n\n")
	b.WriteString(m.spinner.View() + " Fetching models...")
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("(q) quit"))
	return boxStyle.Render(b.String())
}

// viewModelMenu renders the visible window of the catalogue. The offset is
// re-clamped here because the capacity follows the terminal height.
func (m *Model) viewModelMenu() string {
	c := m.machine.Catalogue
	capacity := m.machine.Capacity
	c.Clamp(capacity)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Model list"))
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %d/%d", c.HighlightedIndex()+1, c.Len())))
	b.WriteString("\n\n")

	maxWidth := max(10, m.windowWidth-12)
	rows := make([]string, 0, capacity)
	for i, id := range c.Visible(capacity) {
		marker := " "
		if id == c.Chosen {
			marker = markerStyle.Render(chosenMarker)
		}
		name := truncate(id, maxWidth)
		if c.Offset()+i == c.HighlightedIndex() {
			rows = append(rows, marker+" "+selectedItemStyle.Render("> "+name))
		} else {
			rows = append(rows, marker+" "+normalItemStyle.Render("  "+name))
		}
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(subMenuHelp))
	return boxStyle.Render(b.String())
}

func (m *Model) viewPrompt(p game.Prompt) string {
	s := m.machine.Session

	var b strings.Builder
	b.WriteString(promptStyle.Render(rangePrompt))
	b.WriteString("\n")
	b.WriteString(renderField(s.RangeText, p.Focus == game.FieldRange && !s.Processing))
	b.WriteString("\n")
	b.WriteString(promptStyle.Render(guessPrompt))
	b.WriteString("\n")
	b.WriteString(renderField(s.GuessText, p.Focus == game.FieldGuess && !s.Processing))
	b.WriteString("\n\n")

	switch {
	case s.Processing:
		b.WriteString(m.spinner.View() + statusStyle.Render(" • Processing • "))
	case s.Invalid:
		msg := "Incorrect input"
		if err := m.machine.Rejection(); err != nil {
			msg += ": " + err.Error()
		}
		b.WriteString(errorStyle.Render(msg))
	default:
		b.WriteString(statusStyle.Render(fmt.Sprintf("Model: %s", m.machine.Catalogue.Chosen)))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Score: %d", s.Score)))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(promptHelp))
	return boxStyle.Render(b.String())
}

func (m *Model) viewEndMenu(e game.EndMenu) string {
	s := m.machine.Session
	width := min(maxReplyWidth, max(20, m.windowWidth-10))

	title := incorrectTitleStyle.Render(s.Outcome.String())
	if s.Outcome == session.OutcomeCorrect {
		title = correctTitleStyle.Render(s.Outcome.String())
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(replyStyle.Width(width).Render(s.Reply))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("The number was %d. Score: %d", s.Drawn, s.Score)))
	if m.round > 0 {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("Round %d, won %d of %d", m.round, m.tally.Won, m.tally.Played)))
	}
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("Continue for another game?"))
	b.WriteString("\n")
	b.WriteString(renderItems(endItems, int(e.Item)))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(menuHelp))
	return boxStyle.Render(b.String())
}

func renderItems(items []string, selected int) string {
	rows := make([]string, len(items))
	for i, item := range items {
		if i == selected {
			rows[i] = selectedItemStyle.Render("> " + item)
		} else {
			rows[i] = normalItemStyle.Render("  " + item)
		}
	}
	return strings.Join(rows, "\n")
}

func renderField(text string, focused bool) string {
	if focused {
		return focusedFieldStyle.Width(30).Render(text + cursorBlock)
	}
	return fieldStyle.Width(30).Render(text)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
