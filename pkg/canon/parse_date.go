package canon

import (
	"strconv"
	"strings"
)

var monthNumbers = map[string]int{
	"january": 1, "jan": 1, "february": 2, "feb": 2, "march": 3, "mar": 3,
	"april": 4, "apr": 4, "may": 5, "june": 6, "jun": 6, "july": 7, "jul": 7,
	"august": 8, "aug": 8, "september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10, "november": 11, "nov": 11, "december": 12, "dec": 12,
}

// parseDateISO converts a date surface matched by any of the date_* regex
// patterns into YYYY-MM-DD, following _parse_date_to_iso's three input
// shapes (§4.5).
func parseDateISO(surface string) (string, bool) {
	s := strings.TrimSpace(surface)

	if y, m, d, ok := parseISODate(s); ok {
		return formatISODate(y, m, d), true
	}
	if y, m, d, ok := parseSlashDate(s); ok {
		return formatISODate(y, m, d), true
	}
	if y, m, d, ok := parseMonthNameDate(s); ok {
		return formatISODate(y, m, d), true
	}
	return "", false
}

func parseISODate(s string) (y, m, d int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || len(parts[0]) != 4 {
		return 0, 0, 0, false
	}
	return y, m, d, true
}

func parseSlashDate(s string) (y, m, d int, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	m, err1 := strconv.Atoi(parts[0])
	d, err2 := strconv.Atoi(parts[1])
	yStr := parts[2]
	y, err3 := strconv.Atoi(yStr)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	if len(yStr) == 2 {
		if y < 70 {
			y += 2000
		} else {
			y += 1900
		}
	}
	return y, m, d, true
}

// parseMonthNameDate handles "August 15, 2024". A day-range surface like
// "August 15-17, 2024" is expected to have already been resolved by
// parseDateRange; if it reaches here anyway, only the first day is kept.
func parseMonthNameDate(s string) (y, m, d int, ok bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) < 3 {
		return 0, 0, 0, false
	}
	monthName := strings.ToLower(fields[0])
	mn, known := monthNumbers[monthName]
	if !known {
		return 0, 0, 0, false
	}
	dayField := fields[1]
	if idx := strings.Index(dayField, "-"); idx >= 0 {
		dayField = dayField[:idx]
	}
	day, err := strconv.Atoi(dayField)
	if err != nil {
		return 0, 0, 0, false
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, 0, false
	}
	return year, mn, day, true
}

// parseDateRange handles "Month D-D, YYYY" day-range surfaces (§4.5,
// §8 P7), returning both ends plus the inclusive day count. Ranges
// spanning a month or year boundary are not recognized; callers fall back
// to parseDateISO's single-date parse in that case.
func parseDateRange(s string) (startISO, endISO string, durationDays int, ok bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) < 3 {
		return "", "", 0, false
	}
	mn, known := monthNumbers[strings.ToLower(fields[0])]
	if !known {
		return "", "", 0, false
	}
	dayField := fields[1]
	idx := strings.Index(dayField, "-")
	if idx < 0 {
		return "", "", 0, false
	}
	startDay, err1 := strconv.Atoi(dayField[:idx])
	endDay, err2 := strconv.Atoi(dayField[idx+1:])
	if err1 != nil || err2 != nil || endDay < startDay {
		return "", "", 0, false
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", "", 0, false
	}
	startISO = formatISODate(year, mn, startDay)
	endISO = formatISODate(year, mn, endDay)
	return startISO, endISO, endDay - startDay + 1, true
}

func formatISODate(y, m, d int) string {
	return pad4(y) + "-" + pad2(m) + "-" + pad2(d)
}

func pad2(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

func pad4(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// parseTime24h converts "3:00 PM" / "15:00" / "3:00:00 pm" into HH:MM[:SS]
// 24-hour form, following _parse_time_to_24h (§4.5).
func parseTime24h(surface string) (string, bool) {
	s := strings.TrimSpace(surface)
	lower := strings.ToLower(s)
	pm := strings.Contains(lower, "pm")
	am := strings.Contains(lower, "am")
	numeric := strings.TrimSpace(strings.NewReplacer("am", "", "pm", "", "AM", "", "PM", "").Replace(s))

	parts := strings.Split(numeric, ":")
	if len(parts) < 2 {
		return "", false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return "", false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return "", false
	}
	second := 0
	if len(parts) == 3 {
		second, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			second = 0
		}
	}

	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}

	out := pad2(hour) + ":" + pad2(minute)
	if len(parts) == 3 {
		out += ":" + pad2(second)
	}
	return out, true
}
