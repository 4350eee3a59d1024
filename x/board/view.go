package board

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/totegamma/purse/core"
)

const EmptyMessage = "No characters found. Add a character to get started!"

// DisplayOrder lists denominations as they appear on a card, most valuable first
var DisplayOrder = []string{
	core.CurrencyPlatinum,
	core.CurrencyGold,
	core.CurrencyElectrum,
	core.CurrencySilver,
	core.CurrencyCopper,
}

var coinColors = map[string]lipgloss.Color{
	core.CurrencyPlatinum: lipgloss.Color("#E5E4E2"),
	core.CurrencyGold:     lipgloss.Color("#FFD700"),
	core.CurrencyElectrum: lipgloss.Color("#C9B037"),
	core.CurrencySilver:   lipgloss.Color("#C0C0C0"),
	core.CurrencyCopper:   lipgloss.Color("#B87333"),
}

var (
	muted  = lipgloss.Color("#888888")
	accent = lipgloss.Color("#FF00FF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted)

	selectedCardStyle = cardStyle.Copy().
				BorderForeground(accent)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Width(8).
			Align(lipgloss.Right)

	selectedValueStyle = valueStyle.Copy().
				Reverse(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(muted).
				Italic(true).
				Padding(1, 2)

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF3131")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted)
)

// RenderCard draws one character. field is the highlighted denomination, "" for none.
func RenderCard(character core.Character, selected bool, field string) string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(character.Name))
	b.WriteString("\n")

	for i, name := range DisplayOrder {
		value, _ := character.Currency.Get(name)

		vs := valueStyle
		if selected && name == field {
			vs = selectedValueStyle
		}

		b.WriteString(lipgloss.JoinHorizontal(
			lipgloss.Top,
			labelStyle.Foreground(coinColors[name]).Render(name),
			vs.Render(strconv.FormatInt(value, 10)),
		))
		if i < len(DisplayOrder)-1 {
			b.WriteString("\n")
		}
	}

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Render(b.String())
}

// Render rebuilds the whole list from scratch
func Render(characters []core.Character, selected int, field string) string {
	if len(characters) == 0 {
		return placeholderStyle.Render(EmptyMessage)
	}

	cards := make([]string, 0, len(characters))
	for i, character := range characters {
		cards = append(cards, RenderCard(character, i == selected, field))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
