package money

import (
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyProvider supplies the active currency code and locale tag
type CurrencyProvider interface {
	CurrencySettings() (code, locale string)
}

// StaticCurrency is a CurrencyProvider with fixed settings
type StaticCurrency struct {
	Code   string
	Locale string
}

// CurrencySettings implements CurrencyProvider
func (s StaticCurrency) CurrencySettings() (string, string) {
	return s.Code, s.Locale
}

// Symbol returns the display symbol for an ISO 4217 code in the given locale,
// e.g. "$" for USD in en-US. Any lookup failure yields "".
func Symbol(code, locale string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return ""
	}

	tag := language.English
	if locale != "" {
		tag, err = language.Parse(locale)
		if err != nil {
			return ""
		}
	}

	// Format a zero amount and keep only the symbol around it
	formatted := message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(0)))
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || r == '.' || r == ',' {
			return -1
		}
		return r
	}, formatted))
}

// SymbolFor resolves the symbol for whatever the provider currently reports
func SymbolFor(p CurrencyProvider) string {
	if p == nil {
		return ""
	}
	return Symbol(p.CurrencySettings())
}
