package canon

import "strings"

var tollFreeAreaCodes = map[string]bool{
	"800": true, "888": true, "877": true, "866": true,
	"855": true, "844": true, "833": true, "822": true,
}

// parsePhoneE164 parses a North American phone surface into E.164 form
// plus a national-format string, following _parse_phone_to_e164's digit-
// count dispatch (§4.5). Only 10/11-digit NANP numbers are supported;
// anything else reports failure rather than guessing at a country code.
func parsePhoneE164(surface string) (e164, national, areaCode string, ok bool) {
	digits := digitsOnly(surface)

	var countryCode, local string
	switch {
	case len(digits) == 10:
		countryCode, areaCode, local = "1", digits[:3], digits[3:]
	case len(digits) == 11 && digits[0] == '1':
		countryCode, areaCode, local = "1", digits[1:4], digits[4:]
	default:
		return "", "", "", false
	}

	e164 = "+" + countryCode + areaCode + local
	national = "(" + areaCode + ") " + local[:3] + "-" + local[3:]
	return e164, national, areaCode, true
}

func phoneType(areaCode string) string {
	if tollFreeAreaCodes[areaCode] {
		return "toll_free"
	}
	return "standard"
}

func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
