package routing

import (
	"regexp"
	"strings"
)

// Destination is a single resolution request: where a parcel should go.
// It is transient, owned by the caller, and normalized before any lookup.
type Destination struct {
	Country     string `json:"country"`
	PostCode    string `json:"postcode"`
	City        string `json:"city"`
	ServiceCode string `json:"service"`
}

// countryPrefix matches a leading country code embedded in a postcode,
// separated by a hyphen: "FR-66400", "CH-9491" and the single-letter legacy
// form "F-66400". Whitespace separators are gone by the time this runs.
var countryPrefix = regexp.MustCompile(`^([A-Z]{1,2})-`)

// legacyPrefixes maps single-letter legacy country prefixes to ISO codes.
var legacyPrefixes = map[string]string{
	"F": "FR",
}

// Normalizer canonicalizes raw destination input into a matchable key.
// Normalization is idempotent: applying it twice yields the same result.
type Normalizer struct {
	// OriginCountry is assumed for destinations that carry no country code
	// and no usable embedded prefix.
	OriginCountry string
}

// Normalize applies the canonicalization rules in order: uppercase the
// country, strip all whitespace from the postcode, strip an embedded country
// prefix, and trim the city. An explicitly supplied country always takes
// precedence over an embedded prefix; without one, the origin country is
// assumed before any prefix-against-country comparison runs.
func (n *Normalizer) Normalize(d Destination) Destination {
	d.Country = strings.ToUpper(strings.TrimSpace(d.Country))
	d.PostCode = strings.ToUpper(strings.Join(strings.Fields(d.PostCode), ""))
	d.City = strings.TrimSpace(d.City)
	d.ServiceCode = strings.TrimSpace(d.ServiceCode)

	stripped := false
	if m := countryPrefix.FindStringSubmatch(d.PostCode); m != nil && len(d.PostCode) > len(m[0]) {
		prefix := m[1]
		if iso, ok := legacyPrefixes[prefix]; ok {
			prefix = iso
		}
		// Only two-letter prefixes and the known legacy letters are country
		// prefixes; any other bare letter stays part of the postcode.
		if len(prefix) == 2 {
			d.PostCode = d.PostCode[len(m[0]):]
			if d.Country == "" {
				d.Country = prefix
			}
			stripped = true
		}
	}

	if !stripped {
		if d.Country == "" {
			d.Country = strings.ToUpper(n.OriginCountry)
		}
		// Without a separator the prefix is only stripped when it repeats the
		// effective country and digits follow, so alphanumeric postcodes like
		// GB "GU148HN" survive intact.
		rest := strings.TrimPrefix(d.PostCode, d.Country)
		if rest != d.PostCode && rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			d.PostCode = rest
		}
	}

	return d
}
