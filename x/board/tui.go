package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/totegamma/purse/client"
	"github.com/totegamma/purse/core"
)

type mode int

const (
	modeBrowse mode = iota
	modeCreate
	modeConfirmDelete
)

// form input order
const (
	inputName = iota
	inputPlatinum
	inputGold
	inputElectrum
	inputSilver
	inputCopper
	inputCount
)

// RefreshMsg asks the model to re-fetch the list, e.g. when another client changed it
type RefreshMsg struct{}

type refreshedMsg struct{ err error }

type createdMsg struct{ err error }

type adjustedMsg struct{ err error }

type deletedMsg struct{ err error }

// Model is the bubbletea program of the terminal client
type Model struct {
	board *Board
	ctx   context.Context

	mode   mode
	cursor int
	field  int

	inputs []textinput.Model
	focus  int

	// character awaiting delete confirmation
	pending core.Character

	alert  string
	status string
}

// NewModel creates the terminal client model
func NewModel(ctx context.Context, board *Board) Model {
	inputs := make([]textinput.Model, inputCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.Width = 32
		if i == inputName {
			ti.Prompt = "name     > "
			ti.Placeholder = "Character name"
		} else {
			ti.Prompt = fmt.Sprintf("%-9s> ", DisplayOrder[i-1])
			ti.Placeholder = "0"
		}
		inputs[i] = ti
	}

	return Model{
		board:  board,
		ctx:    ctx,
		inputs: inputs,
	}
}

func (m Model) refresh() tea.Msg {
	return refreshedMsg{err: m.board.Refresh(m.ctx)}
}

func (m Model) Init() tea.Cmd {
	return m.refresh
}

func (m Model) selected() (core.Character, bool) {
	characters := m.board.Characters()
	if m.cursor < 0 || m.cursor >= len(characters) {
		return core.Character{}, false
	}
	return characters[m.cursor], true
}

func (m Model) form() Form {
	return Form{
		Name:     m.inputs[inputName].Value(),
		Platinum: m.inputs[inputPlatinum].Value(),
		Gold:     m.inputs[inputGold].Value(),
		Electrum: m.inputs[inputElectrum].Value(),
		Silver:   m.inputs[inputSilver].Value(),
		Copper:   m.inputs[inputCopper].Value(),
	}
}

func (m *Model) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = inputName
}

func (m *Model) clampCursor() {
	n := len(m.board.Characters())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		return m, m.refresh

	case refreshedMsg:
		if msg.err != nil {
			m.alert = "Failed to fetch characters: " + errorMessage(msg.err)
		}
		m.clampCursor()
		return m, nil

	case createdMsg:
		if msg.err != nil && !IsRefreshError(msg.err) {
			m.alert = "Failed to add character: " + errorMessage(msg.err)
			return m, nil
		}
		m.resetForm()
		m.mode = modeBrowse
		m.status = "Character added"
		m.alert = refreshAlert(msg.err)
		m.clampCursor()
		return m, nil

	case adjustedMsg:
		if msg.err != nil {
			m.status = "Update failed: " + errorMessage(msg.err)
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil && !IsRefreshError(msg.err) {
			m.alert = "Failed to delete character: " + errorMessage(msg.err)
		} else {
			m.status = "Character deleted"
			m.alert = refreshAlert(msg.err)
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeCreate:
			return m.updateCreate(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.alert = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.board.Characters())-1 {
			m.cursor++
		}
	case "left", "h":
		if m.field > 0 {
			m.field--
		}
	case "right", "l":
		if m.field < len(DisplayOrder)-1 {
			m.field++
		}
	case "+", "=":
		if c, ok := m.selected(); ok {
			field := DisplayOrder[m.field]
			return m, func() tea.Msg {
				return adjustedMsg{err: m.board.Increment(m.ctx, c.ID, field)}
			}
		}
	case "-", "_":
		if c, ok := m.selected(); ok {
			field := DisplayOrder[m.field]
			return m, func() tea.Msg {
				return adjustedMsg{err: m.board.Decrement(m.ctx, c.ID, field)}
			}
		}
	case "n":
		m.mode = modeCreate
		m.status = ""
		m.resetForm()
		return m, m.inputs[inputName].Focus()
	case "d":
		if c, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.pending = c
		}
	case "r":
		return m, m.refresh
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.pending
	m.mode = modeBrowse
	m.pending = core.Character{}

	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}

	ctx := m.ctx
	board := m.board
	return m, func() tea.Msg {
		_, err := board.Delete(ctx, pending.ID, func(c core.Character) bool {
			return c.ID == pending.ID
		})
		return deletedMsg{err: err}
	}
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.alert = ""
		m.resetForm()
		return m, nil
	case "tab", "down":
		return m, m.focusInput((m.focus + 1) % inputCount)
	case "shift+tab", "up":
		return m, m.focusInput((m.focus + inputCount - 1) % inputCount)
	case "enter":
		form := m.form()
		if strings.TrimSpace(form.Name) == "" {
			m.alert = ErrNameRequired.Error()
			return m, nil
		}
		m.alert = ""
		return m, func() tea.Msg {
			return createdMsg{err: m.board.Create(m.ctx, form)}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("purse"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeCreate:
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab: next field • enter: add • esc: cancel"))
	default:
		b.WriteString(Render(m.board.Characters(), m.cursor, DisplayOrder[m.field]))
		b.WriteString("\n\n")
		if m.mode == modeConfirmDelete {
			b.WriteString(alertStyle.Render(fmt.Sprintf("Are you sure you want to delete %s? (y/n)", m.pending.Name)))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓: character • ←/→: coin • +/-: adjust • n: new • d: delete • r: refresh • q: quit"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}
	if m.alert != "" {
		b.WriteString("\n")
		b.WriteString(alertStyle.Render(m.alert))
	}
	b.WriteString("\n")

	return b.String()
}

func refreshAlert(err error) string {
	if err == nil {
		return ""
	}
	return "Failed to fetch characters: " + errorMessage(errors.Cause(err))
}

func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
