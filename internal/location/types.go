package location

import "errors"

var (
	// ErrInvalidInput is returned for empty or unparseable queries.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCoordinates is returned for malformed or out-of-range lat/lon input.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrUnknownCountry is returned when a country token matches neither a code nor a name.
	ErrUnknownCountry = errors.New("unknown country")
	// ErrNoMatchingCandidate is returned when a caller selection does not identify
	// any of the offered geocoding candidates.
	ErrNoMatchingCandidate = errors.New("no matching candidate")
)

// Kind discriminates the variants of a Query.
type Kind int

const (
	// KindCity is a free-text "city" or "city,country" query.
	KindCity Kind = iota
	// KindCoordinates is an explicit lat/lon pair typed by the user.
	KindCoordinates
	// KindDevice is a lat/lon pair supplied by the device geolocation provider.
	KindDevice
)

// Query is the normalized form of user input. Exactly one variant is
// populated: City/Country for KindCity, Lat/Lon for the other two kinds.
type Query struct {
	Kind    Kind
	City    string
	Country string // raw country token, not yet canonicalized
	Lat     float64
	Lon     float64
	Raw     string // original input, kept for last-location persistence
}

// Candidate is a single geocoding match in provider order.
type Candidate struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Label formats the candidate the way it is shown to users, e.g. "London, GB".
func (c Candidate) Label() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + ", " + c.Country
}

// Resolved is the single place a query settled on. It is created once per
// query and never mutated afterwards.
type Resolved struct {
	Lat         float64
	Lon         float64
	DisplayName string
	Detail      string // district or country detail, empty for automatic queries
}
