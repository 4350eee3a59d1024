package board

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/totegamma/purse/core"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key(s))
	return next.(Model), cmd
}

// run executes cmd and feeds the resulting message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestModelInit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl)
	mockClient.EXPECT().List(gomock.Any()).Return([]core.Character{aragorn, gimli}, nil)

	m := NewModel(context.Background(), b)
	m = run(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "Aragorn")
	assert.Contains(t, view, "Gimli")
}

func TestModelEmptyView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, _ := setupBoard(t, ctrl)

	m := NewModel(context.Background(), b)
	assert.Contains(t, m.View(), EmptyMessage)
}

func TestModelIncrementSelected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl, aragorn, gimli)

	updated := gimli
	updated.Currency.Gold = 41
	mockClient.EXPECT().
		Update(gomock.Any(), gimliID, core.CharacterPatch{Currency: &core.CurrencyPatch{Gold: ptr(int64(41))}}).
		Return(updated, nil)

	m := NewModel(context.Background(), b)
	m, _ = press(t, m, "down")
	m, _ = press(t, m, "right")

	m, cmd := press(t, m, "+")
	m = run(t, m, cmd)

	assert.Equal(t, int64(41), b.Characters()[1].Currency.Gold)
	assert.Empty(t, m.alert)
}

func TestModelCreateBlankName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, _ := setupBoard(t, ctrl)

	m := NewModel(context.Background(), b)
	m, _ = press(t, m, "n")
	m, cmd := press(t, m, "enter")

	assert.Nil(t, cmd)
	assert.Equal(t, modeCreate, m.mode)
	assert.Contains(t, m.View(), "Please enter a character name")
}

func TestModelCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl)

	created := core.Character{ID: aragornID, Name: "Bo", Currency: core.Currency{Platinum: 3}}
	mockClient.EXPECT().Create(gomock.Any(), "Bo", core.Currency{Platinum: 3}).Return(created, nil)
	mockClient.EXPECT().List(gomock.Any()).Return([]core.Character{created}, nil)

	m := NewModel(context.Background(), b)
	m, _ = press(t, m, "n")
	m, _ = press(t, m, "B")
	m, _ = press(t, m, "o")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "3")

	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.View(), "Bo")
}

func TestModelDeleteConfirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl, aragorn)

	m := NewModel(context.Background(), b)
	m, _ = press(t, m, "d")
	assert.Contains(t, m.View(), "Are you sure you want to delete Aragorn? (y/n)")

	// declining leaves the board alone
	m, cmd := press(t, m, "n")
	assert.Nil(t, cmd)
	assert.Equal(t, modeBrowse, m.mode)

	mockClient.EXPECT().Delete(gomock.Any(), aragornID).Return(nil)
	mockClient.EXPECT().List(gomock.Any()).Return([]core.Character{}, nil)

	m, _ = press(t, m, "d")
	m, cmd = press(t, m, "y")
	m = run(t, m, cmd)

	assert.Empty(t, b.Characters())
	assert.Contains(t, m.View(), EmptyMessage)
}

func TestModelRefreshMsg(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl)
	mockClient.EXPECT().List(gomock.Any()).Return([]core.Character{gimli}, nil)

	m := NewModel(context.Background(), b)
	next, cmd := m.Update(RefreshMsg{})
	m = run(t, next.(Model), cmd)

	assert.Contains(t, m.View(), "Gimli")
}

func TestModelDeleteKeepsConfirmedCharacterAcrossRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl, aragorn, gimli)

	m := NewModel(context.Background(), b)
	m, _ = press(t, m, "down")
	m, _ = press(t, m, "d")
	assert.Contains(t, m.View(), "Are you sure you want to delete Gimli? (y/n)")

	// another client adds a character in front of the list before the answer
	legolas := core.Character{ID: "cnbk4l8k1u6e3mqfk3b0", Name: "Legolas"}
	mockClient.EXPECT().List(gomock.Any()).Return([]core.Character{legolas, aragorn, gimli}, nil)
	next, cmd := m.Update(RefreshMsg{})
	m = run(t, next.(Model), cmd)

	assert.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), "Are you sure you want to delete Gimli? (y/n)")

	mockClient.EXPECT().Delete(gomock.Any(), gimliID).Return(nil)
	mockClient.EXPECT().List(gomock.Any()).Return([]core.Character{legolas, aragorn}, nil)

	m, cmd = press(t, m, "y")
	m = run(t, m, cmd)

	assert.Equal(t, []core.Character{legolas, aragorn}, b.Characters())
	assert.Empty(t, m.alert)
}

func TestModelDeleteConfirmedCharacterGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl, aragorn, gimli)

	m := NewModel(context.Background(), b)
	m, _ = press(t, m, "d")

	// Aragorn was removed elsewhere; answering yes must not touch Gimli
	mockClient.EXPECT().List(gomock.Any()).Return([]core.Character{gimli}, nil)
	next, cmd := m.Update(RefreshMsg{})
	m = run(t, next.(Model), cmd)

	m, cmd = press(t, m, "y")
	m = run(t, m, cmd)

	assert.Equal(t, []core.Character{gimli}, b.Characters())
	assert.Contains(t, m.alert, "Failed to delete character")
}

func TestModelCreateSucceedsWhenRefreshFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl)

	mockClient.EXPECT().Create(gomock.Any(), "Gimli", core.Currency{}).Return(gimli, nil)
	mockClient.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

	m := NewModel(context.Background(), b)
	m, _ = press(t, m, "n")
	for _, r := range "Gimli" {
		m, _ = press(t, m, string(r))
	}

	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "", m.inputs[inputName].Value())
	assert.Equal(t, "Character added", m.status)
	assert.Equal(t, "Failed to fetch characters: timeout", m.alert)
	assert.NotContains(t, m.View(), "Failed to add character")
}

func TestModelDeleteSucceedsWhenRefreshFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, mockClient := setupBoard(t, ctrl, aragorn)

	mockClient.EXPECT().Delete(gomock.Any(), aragornID).Return(nil)
	mockClient.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

	m := NewModel(context.Background(), b)
	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "y")
	m = run(t, m, cmd)

	assert.Equal(t, "Character deleted", m.status)
	assert.Equal(t, "Failed to fetch characters: timeout", m.alert)
}
