package core

import (
	"time"
)

// Currency is the coin purse of a character
type Currency struct {
	Copper   int64 `json:"copper" gorm:"not null;default:0"`
	Silver   int64 `json:"silver" gorm:"not null;default:0"`
	Electrum int64 `json:"electrum" gorm:"not null;default:0"`
	Gold     int64 `json:"gold" gorm:"not null;default:0"`
	Platinum int64 `json:"platinum" gorm:"not null;default:0"`
}

// Character is the only resource purse stores
// mutable
type Character struct {
	ID        string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Name      string    `json:"name" gorm:"type:text;not null" validate:"required"`
	Currency  Currency  `json:"currency" gorm:"embedded;embeddedPrefix:currency_"`
	CreatedAt time.Time `json:"createdAt" gorm:"->;<-:create;autoCreateTime;index"`
}

// CurrencyPatch carries the currency fields a client wants to change.
// nil fields are left untouched.
type CurrencyPatch struct {
	Copper   *int64 `json:"copper,omitempty"`
	Silver   *int64 `json:"silver,omitempty"`
	Electrum *int64 `json:"electrum,omitempty"`
	Gold     *int64 `json:"gold,omitempty"`
	Platinum *int64 `json:"platinum,omitempty"`
}

// CharacterPatch is the body of a partial character update
type CharacterPatch struct {
	Name     *string        `json:"name,omitempty"`
	Currency *CurrencyPatch `json:"currency,omitempty"`
}

// CharacterEvent is published on CharacterEventChannel after every mutation
type CharacterEvent struct {
	Type      string     `json:"type"`
	ID        string     `json:"id"`
	Character *Character `json:"character,omitempty"`
}
