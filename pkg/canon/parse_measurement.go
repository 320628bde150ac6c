package canon

import (
	"strings"

	"github.com/shopspring/decimal"
)

// unitInfo carries a unit's measurement category and its multiplier to the
// category's SI base unit (meters, kilograms, liters, seconds; Fahrenheit/
// Celsius/Kelvin are handled separately since temperature conversion is
// affine, not linear).
type unitInfo struct {
	category string
	siUnit   string
	toSI     float64 // multiply value by this to get siUnit
}

var unitTable = map[string]unitInfo{
	"in": {"length", "m", 0.0254}, "inch": {"length", "m", 0.0254}, "inches": {"length", "m", 0.0254},
	"ft": {"length", "m", 0.3048}, "foot": {"length", "m", 0.3048}, "feet": {"length", "m", 0.3048},
	"yd": {"length", "m", 0.9144}, "yard": {"length", "m", 0.9144}, "yards": {"length", "m", 0.9144},
	"mi": {"length", "m", 1609.344}, "mile": {"length", "m", 1609.344}, "miles": {"length", "m", 1609.344},
	"mm": {"length", "m", 0.001}, "millimeters": {"length", "m", 0.001},
	"cm": {"length", "m", 0.01}, "centimeters": {"length", "m", 0.01},
	"m": {"length", "m", 1}, "meter": {"length", "m", 1}, "meters": {"length", "m", 1},
	"km": {"length", "m", 1000}, "kilometers": {"length", "m", 1000},

	"lb": {"weight", "kg", 0.45359237}, "lbs": {"weight", "kg", 0.45359237},
	"pound": {"weight", "kg", 0.45359237}, "pounds": {"weight", "kg", 0.45359237},
	"oz": {"weight", "kg", 0.028349523}, "ounce": {"weight", "kg", 0.028349523}, "ounces": {"weight", "kg", 0.028349523},
	"g": {"weight", "kg", 0.001}, "gram": {"weight", "kg", 0.001}, "grams": {"weight", "kg", 0.001},
	"kg": {"weight", "kg", 1}, "kilogram": {"weight", "kg", 1}, "kilograms": {"weight", "kg", 1},
	"ton": {"weight", "kg", 907.18474}, "tons": {"weight", "kg", 907.18474},

	"gal": {"volume", "l", 3.785411784}, "gallon": {"volume", "l", 3.785411784}, "gallons": {"volume", "l", 3.785411784},
	"qt": {"volume", "l", 0.946352946}, "quart": {"volume", "l", 0.946352946}, "quarts": {"volume", "l", 0.946352946},
	"pt": {"volume", "l", 0.473176473}, "pint": {"volume", "l", 0.473176473}, "pints": {"volume", "l", 0.473176473},
	"l": {"volume", "l", 1}, "liter": {"volume", "l", 1}, "liters": {"volume", "l", 1},
	"ml": {"volume", "l", 0.001}, "milliliters": {"volume", "l", 0.001},

	"sec": {"time", "s", 1}, "second": {"time", "s", 1}, "seconds": {"time", "s", 1},
	"min": {"time", "s", 60}, "minute": {"time", "s", 60}, "minutes": {"time", "s", 60},
	"hr": {"time", "s", 3600}, "hour": {"time", "s", 3600}, "hours": {"time", "s", 3600},
	"day": {"time", "s", 86400}, "days": {"time", "s", 86400},
	"week": {"time", "s", 604800}, "weeks": {"time", "s", 604800},
	"month": {"time", "s", 2629800}, "months": {"time", "s", 2629800},
	"year": {"time", "s", 31557600}, "years": {"time", "s", 31557600},
}

var temperatureUnits = map[string]string{"fahrenheit": "F", "celsius": "C", "kelvin": "K"}

// parseMeasurement splits a measurement surface into numeric value, unit
// token, and the unit's measurement category (§4.5).
func parseMeasurement(surface string) (value decimal.Decimal, unit, category string, ok bool) {
	s := strings.TrimSpace(surface)
	i := 0
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	numText := s[:i]
	unitText := strings.ToLower(strings.TrimSpace(s[i:]))
	if numText == "" || unitText == "" {
		return decimal.Zero, "", "", false
	}
	v, err := decimal.NewFromString(numText)
	if err != nil {
		return decimal.Zero, "", "", false
	}
	if _, ok := temperatureUnits[unitText]; ok {
		return v, unitText, "temperature", true
	}
	if info, ok := unitTable[unitText]; ok {
		return v, unitText, info.category, true
	}
	return decimal.Zero, "", "", false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// toSI converts value/unit to the category's SI base unit. Temperature
// conversion is affine (Fahrenheit/Celsius) so it bypasses the linear
// unitTable multiplier.
func toSI(value decimal.Decimal, unit, category string) (decimal.Decimal, string) {
	if category == "temperature" {
		return temperatureToCelsius(value, unit), "C"
	}
	info, ok := unitTable[unit]
	if !ok {
		return value, unit
	}
	return value.Mul(decimal.NewFromFloat(info.toSI)), info.siUnit
}

func temperatureToCelsius(value decimal.Decimal, unit string) decimal.Decimal {
	switch unit {
	case "fahrenheit":
		return value.Sub(decimal.NewFromInt(32)).Mul(decimal.NewFromInt(5)).Div(decimal.NewFromInt(9))
	case "kelvin":
		return value.Sub(decimal.NewFromFloat(273.15))
	default:
		return value
	}
}
