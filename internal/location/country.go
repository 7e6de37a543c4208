package location

import (
	"fmt"
	"strings"
)

// Recognized ISO 3166-1 alpha-2 codes. The geocoding provider accepts more,
// but anything outside this set is rejected before it reaches the network.
var countryCodes = map[string]struct{}{
	"US": {}, "GB": {}, "IN": {}, "JP": {}, "FR": {}, "DE": {}, "CA": {}, "AU": {},
	"BR": {}, "CN": {}, "ES": {}, "IT": {}, "MX": {}, "RU": {}, "KR": {}, "NG": {},
}

var countryNames = map[string]string{
	"united states":  "US",
	"usa":            "US",
	"united kingdom": "GB",
	"uk":             "GB",
	"india":          "IN",
	"japan":          "JP",
	"france":         "FR",
	"germany":        "DE",
	"canada":         "CA",
	"australia":      "AU",
	"brazil":         "BR",
	"china":          "CN",
	"spain":          "ES",
	"italy":          "IT",
	"mexico":         "MX",
	"russia":         "RU",
	"south korea":    "KR",
	"nigeria":        "NG",
}

// ResolveCountry canonicalizes a free-text country token to a two-letter code.
// An empty token means "no constraint" and resolves to the empty string.
// ResolveCountry is pure and total over its tables; it never calls the network.
func ResolveCountry(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", nil
	}

	if code := strings.ToUpper(token); isKnownCode(code) {
		return code, nil
	}
	if code, ok := countryNames[strings.ToLower(token)]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: %q; use a two-letter code (e.g. US, GB, IN, NG) or a country name (e.g. Japan, Nigeria)", ErrUnknownCountry, token)
}

func isKnownCode(code string) bool {
	_, ok := countryCodes[code]
	return ok
}
