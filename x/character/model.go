package character

import (
	"github.com/totegamma/purse/core"
)

type createRequest struct {
	Name     string              `json:"name"`
	Currency *core.CurrencyPatch `json:"currency"`
}

func (r createRequest) toCharacter() core.Character {
	character := core.Character{Name: r.Name}
	if r.Currency != nil {
		r.Currency.ApplyTo(&character.Currency)
	}
	return character
}
