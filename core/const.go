package core

const (
	CurrencyCopper   = "copper"
	CurrencySilver   = "silver"
	CurrencyElectrum = "electrum"
	CurrencyGold     = "gold"
	CurrencyPlatinum = "platinum"
)

// CurrencyFields is the closed set of denominations, highest value last.
var CurrencyFields = []string{
	CurrencyCopper,
	CurrencySilver,
	CurrencyElectrum,
	CurrencyGold,
	CurrencyPlatinum,
}

const (
	CharacterEventChannel = "characters"

	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

const (
	MessageNameRequired     = "Character name is required"
	MessageInvalidJSON      = "Invalid JSON in request body"
	MessageInvalidID        = "Invalid character id"
	MessageNotFound         = "Character not found"
	MessageCharacterDeleted = "Character deleted"
)
