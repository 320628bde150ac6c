package canon

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY", "₹": "INR",
}

var magnitudeMultipliers = map[string]int64{
	"thousand": 1_000,
	"million":  1_000_000,
	"billion":  1_000_000_000,
	"trillion": 1_000_000_000_000,
	"k":        1_000,
	"m":        1_000_000,
	"b":        1_000_000_000,
	"t":        1_000_000_000_000,
}

// MoneyParts is parseMoney's result: the multiplied amount plus the pieces
// that went into it, so callers can report the original text alongside the
// resolved value (spec §4.5's "metadata carries currency and original
// text").
type MoneyParts struct {
	Amount        decimal.Decimal
	Currency      string
	OriginalValue decimal.Decimal
	Magnitude     string
	Multiplier    int64
}

// parseMoney parses a money-pattern surface into an exact decimal amount
// and an ISO-4217 currency code, applying the magnitude-word multiplier
// table from entity_normalizer.py's amount_multipliers (§4.5).
func parseMoney(surface string) (MoneyParts, bool) {
	s := strings.TrimSpace(surface)
	currency := "USD"
	for sym, code := range currencySymbols {
		if strings.Contains(s, sym) {
			currency = code
			s = strings.ReplaceAll(s, sym, "")
			break
		}
	}
	for _, code := range []string{"USD", "EUR", "GBP", "CAD", "AUD"} {
		if strings.Contains(strings.ToUpper(s), code) {
			currency = code
			s = strings.ReplaceAll(strings.ToUpper(s), code, "")
			break
		}
	}
	s = strings.TrimSpace(strings.NewReplacer("dollars", "", "Dollars", "", "dollar", "", "Dollar", "").Replace(s))
	s = strings.TrimSpace(s)

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return MoneyParts{}, false
	}

	numText := strings.ReplaceAll(fields[0], ",", "")
	var multiplier int64 = 1
	var magnitude string

	if len(fields) > 1 {
		word := strings.ToLower(fields[1])
		if mult, ok := magnitudeMultipliers[word]; ok {
			multiplier = mult
			magnitude = word
		}
	} else if n := len(numText); n > 0 {
		last := strings.ToLower(numText[n-1:])
		if mult, ok := magnitudeMultipliers[last]; ok {
			multiplier = mult
			magnitude = last
			numText = numText[:n-1]
		}
	}

	base, err := decimal.NewFromString(numText)
	if err != nil {
		return MoneyParts{}, false
	}
	amount := base.Mul(decimal.NewFromInt(multiplier))
	return MoneyParts{
		Amount:        amount,
		Currency:      currency,
		OriginalValue: base,
		Magnitude:     magnitude,
		Multiplier:    multiplier,
	}, true
}

// formatMoney renders an exact decimal amount through go-money for a
// display-formatted metadata field (currency symbol, comma grouping, minor-
// unit rounding). The canonical form itself stays the bare decimal string
// spec §4.5 requires, not this display string.
func formatMoney(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		cur = money.GetCurrency("USD")
		currencyCode = "USD"
	}
	multiplier := decimal.New(1, int32(cur.Fraction))
	cents := amount.Mul(multiplier).Round(0).IntPart()
	m := money.New(cents, currencyCode)
	return m.Display()
}
