package location

import "fmt"

// Cities whose detail label carries the administrative district instead of the
// plain country code.
var indiaDistricts = map[string]string{
	"Hyderabad": "Hyderabad District",
	"Mumbai":    "Mumbai District",
	"Delhi":     "Delhi District",
	"Bangalore": "Bangalore Urban District",
	"Chennai":   "Chennai District",
}

// Selection identifies one candidate out of a previously offered list by its
// position in that list. Passing the index end-to-end avoids re-matching
// candidates by their formatted display string.
type Selection struct {
	Index int
}

// SelectionByLabel resolves a display label such as "London, GB" to a
// Selection against the given candidate list. Useful for text-driven callers
// (voice input); the exact match requirement mirrors what users see.
func SelectionByLabel(cands []Candidate, label string) (*Selection, error) {
	for i, c := range cands {
		if c.Label() == label {
			return &Selection{Index: i}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoMatchingCandidate, label)
}

// Choose applies the disambiguation policy to a non-empty candidate list.
// It returns either the chosen candidate, or the full list when neither a
// selection nor a country constraint allows a deterministic pick. The list is
// returned in provider order, unchanged.
//
// When a country constraint is present the candidates are filtered to that
// country and the first match wins even if several remain. This mirrors the
// behavior users already rely on.
func Choose(cands []Candidate, sel *Selection, countryCode string) (Candidate, []Candidate, error) {
	if sel != nil {
		if sel.Index < 0 || sel.Index >= len(cands) {
			return Candidate{}, nil, fmt.Errorf("%w: selection %d out of %d candidates", ErrNoMatchingCandidate, sel.Index, len(cands))
		}
		return cands[sel.Index], nil, nil
	}
	if countryCode != "" {
		for _, c := range cands {
			if c.Country == countryCode {
				return c, nil, nil
			}
		}
		return Candidate{}, nil, fmt.Errorf("%w: no candidate in %s", ErrNoMatchingCandidate, countryCode)
	}
	if len(cands) == 1 {
		return cands[0], nil, nil
	}
	return Candidate{}, cands, nil
}

// DetailLabel is the finer-grained location line shown under the city name
// for manually resolved queries.
func (c Candidate) DetailLabel() string {
	if c.Country == "IN" {
		if district, ok := indiaDistricts[c.Name]; ok {
			return c.Name + ", " + district
		}
	}
	return c.Label()
}
