package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	parenCodeRe   = regexp.MustCompile(`\s*\([A-Z]{3}\)\s*`)
	trailingCode  = regexp.MustCompile(`\s+[A-Z]{3}$`)
	stateZipRe    = regexp.MustCompile(`^[A-Za-z]{2}\.?\s+\d{5}(-\d{4})?$`)
	zipOnlyRe     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	venueSuffixes = []string{
		"international airport",
		"regional airport",
		"airport",
		"train station",
		"bus station",
		"station",
		"terminal",
		"port",
	}
	hotelChains = []string{
		"hotel", "hilton", "marriott", "hyatt", "sheraton", "westin",
		"holiday inn", "hampton inn", "courtyard", "residence inn",
		"doubletree", "embassy suites", "four seasons", "ritz-carlton",
		"best western", "comfort inn", "la quinta", "motel 6", "super 8",
		"fairfield inn", "ace hotel", "the", "w",
	}
)

// StripAirportCode removes a parenthesized or trailing 3-letter code from a
// location name: "Chicago (ORD)" and "Chicago ORD" both become "Chicago".
func StripAirportCode(name string) string {
	out := parenCodeRe.ReplaceAllString(name, " ")
	out = trailingCode.ReplaceAllString(strings.TrimSpace(out), "")
	return strings.TrimSpace(out)
}

// ExtractCity reduces a free-text location name to a best-effort city string.
// Strips airport codes and venue-type suffixes, then hotel-chain prefixes.
// Not guaranteed perfect; callers treat "" as unknown.
func ExtractCity(name string) string {
	s := StripAirportCode(name)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	for _, suffix := range venueSuffixes {
		if strings.HasSuffix(lower, suffix) {
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}
	if s == "" {
		return ""
	}
	if city := CityFromChainName(s); city != "" {
		return city
	}
	return s
}

// CityFromChainName strips known hotel-chain prefixes and returns the
// trailing word: "Ace Hotel Brooklyn" -> "Brooklyn". Returns "" when the
// name doesn't start with a known chain.
func CityFromChainName(name string) string {
	s := strings.TrimSpace(name)
	lower := strings.ToLower(s)
	stripped := false
	for changed := true; changed; {
		changed = false
		for _, chain := range hotelChains {
			if lower == chain {
				return ""
			}
			if strings.HasPrefix(lower, chain+" ") {
				s = strings.TrimSpace(s[len(chain)+1:])
				lower = strings.ToLower(s)
				stripped = true
				changed = true
			}
		}
	}
	if !stripped || s == "" {
		return ""
	}
	fields := strings.Fields(s)
	return fields[len(fields)-1]
}

// CityFromAddress pulls the city segment out of a comma-separated postal
// address by skipping street-number and "STATE ZIP" segments:
// "123 Main St, Brooklyn, NY 11201" -> "Brooklyn".
func CityFromAddress(address string) string {
	for _, part := range strings.Split(address, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if unicode.IsDigit(rune(part[0])) {
			continue
		}
		if stateZipRe.MatchString(part) || zipOnlyRe.MatchString(part) {
			continue
		}
		return part
	}
	return ""
}

// usStates maps USPS abbreviations to full state names.
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

// StateOfAddress returns the full name of the US state an address mentions,
// matching either the abbreviation as its own token or the full name.
func StateOfAddress(address string) string {
	if strings.TrimSpace(address) == "" {
		return ""
	}
	tokens := strings.FieldsFunc(address, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.'
	})
	for _, tok := range tokens {
		// Only an uppercase two-letter token counts as an abbreviation;
		// otherwise words like "in" or "la" match as states.
		if len(tok) == 2 && tok == strings.ToUpper(tok) {
			if full, ok := usStates[tok]; ok {
				return full
			}
		}
	}
	lower := strings.ToLower(address)
	for _, full := range usStates {
		if strings.Contains(lower, strings.ToLower(full)) {
			return full
		}
	}
	return ""
}

// SharedState returns the single US state mentioned by every address in the
// list, ok=false when the addresses disagree or any address names no state.
func SharedState(addresses []string) (string, bool) {
	if len(addresses) == 0 {
		return "", false
	}
	shared := ""
	for _, addr := range addresses {
		state := StateOfAddress(addr)
		if state == "" {
			return "", false
		}
		if shared == "" {
			shared = state
		} else if shared != state {
			return "", false
		}
	}
	return shared, true
}
