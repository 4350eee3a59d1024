package core

// Get returns the amount of the given denomination
func (c Currency) Get(field string) (int64, bool) {
	switch field {
	case CurrencyCopper:
		return c.Copper, true
	case CurrencySilver:
		return c.Silver, true
	case CurrencyElectrum:
		return c.Electrum, true
	case CurrencyGold:
		return c.Gold, true
	case CurrencyPlatinum:
		return c.Platinum, true
	}
	return 0, false
}

// Set overwrites the amount of the given denomination.
// It reports false for unknown field names.
func (c *Currency) Set(field string, value int64) bool {
	switch field {
	case CurrencyCopper:
		c.Copper = value
	case CurrencySilver:
		c.Silver = value
	case CurrencyElectrum:
		c.Electrum = value
	case CurrencyGold:
		c.Gold = value
	case CurrencyPlatinum:
		c.Platinum = value
	default:
		return false
	}
	return true
}

func (p CurrencyPatch) field(field string) *int64 {
	switch field {
	case CurrencyCopper:
		return p.Copper
	case CurrencySilver:
		return p.Silver
	case CurrencyElectrum:
		return p.Electrum
	case CurrencyGold:
		return p.Gold
	case CurrencyPlatinum:
		return p.Platinum
	}
	return nil
}

// Get returns the patched value of a denomination if the patch carries one
func (p CurrencyPatch) Get(field string) (int64, bool) {
	v := p.field(field)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Set marks a denomination to be changed to value
func (p *CurrencyPatch) Set(field string, value int64) bool {
	switch field {
	case CurrencyCopper:
		p.Copper = &value
	case CurrencySilver:
		p.Silver = &value
	case CurrencyElectrum:
		p.Electrum = &value
	case CurrencyGold:
		p.Gold = &value
	case CurrencyPlatinum:
		p.Platinum = &value
	default:
		return false
	}
	return true
}

// ApplyTo copies every present field of the patch onto target.
// Only the names in CurrencyFields are ever touched.
func (p CurrencyPatch) ApplyTo(target *Currency) {
	for _, name := range CurrencyFields {
		if v, ok := p.Get(name); ok {
			target.Set(name, v)
		}
	}
}

// NewCurrencyPatch returns a patch changing a single denomination
func NewCurrencyPatch(field string, value int64) (CurrencyPatch, bool) {
	var p CurrencyPatch
	ok := p.Set(field, value)
	return p, ok
}
