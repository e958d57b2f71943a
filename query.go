package serp

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Limits accepted for the per-request result count and stream page size.
const (
	MinLimit = 1
	MaxLimit = 100
)

// Device selects the device class results are rendered for.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
)

func (d Device) IsValid() bool {
	switch d {
	case DeviceDesktop, DeviceMobile, DeviceTablet:
		return true
	}
	return false
}

func (d Device) String() string { return string(d) }

// SafeSearch controls content filtering.
type SafeSearch string

const (
	SafeSearchActive SafeSearch = "active"
	SafeSearchOff    SafeSearch = "off"
)

func (s SafeSearch) IsValid() bool {
	switch s {
	case SafeSearchActive, SafeSearchOff:
		return true
	}
	return false
}

func (s SafeSearch) String() string { return string(s) }

// SearchType is the search specialization. The value doubles as the wire
// parameter ("tbm"); web search is the default and sends none.
type SearchType string

const (
	SearchTypeWeb      SearchType = ""
	SearchTypeImages   SearchType = "isch"
	SearchTypeVideos   SearchType = "vid"
	SearchTypeNews     SearchType = "nws"
	SearchTypeShopping SearchType = "shop"
	SearchTypeLocal    SearchType = "lcl"
)

func (t SearchType) IsValid() bool {
	switch t {
	case SearchTypeWeb, SearchTypeImages, SearchTypeVideos, SearchTypeNews,
		SearchTypeShopping, SearchTypeLocal:
		return true
	}
	return false
}

func (t SearchType) String() string { return string(t) }

// Query is a validated, immutable search request. Construct one with
// NewQuery; a Query that passed Build never changes and is cheap to copy
// across retry attempts and stream pages.
type Query struct {
	term       string
	language   string
	country    string
	domain     string
	limit      int // 0 means server default
	offset     int
	device     Device
	safe       SafeSearch
	searchType SearchType
	location   string
}

func (q Query) Term() string           { return q.term }
func (q Query) Language() string       { return q.language }
func (q Query) Country() string        { return q.country }
func (q Query) Domain() string         { return q.domain }
func (q Query) Limit() int             { return q.limit }
func (q Query) Offset() int            { return q.offset }
func (q Query) Device() Device         { return q.device }
func (q Query) SafeSearch() SafeSearch { return q.safe }
func (q Query) SearchType() SearchType { return q.searchType }
func (q Query) Location() string       { return q.location }

// Values renders the query as wire parameters. The credential is not
// part of the query; the client attaches it at request time.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("q", q.term)
	if q.language != "" {
		v.Set("hl", q.language)
	}
	if q.country != "" {
		v.Set("gl", q.country)
	}
	if q.domain != "" {
		v.Set("google_domain", q.domain)
	}
	if q.limit > 0 {
		v.Set("num", strconv.Itoa(q.limit))
	}
	if q.offset > 0 {
		v.Set("start", strconv.Itoa(q.offset))
	}
	if q.device != "" {
		v.Set("device", string(q.device))
	}
	if q.safe != "" {
		v.Set("safe", string(q.safe))
	}
	if q.searchType != SearchTypeWeb {
		v.Set("tbm", string(q.searchType))
	}
	if q.location != "" {
		v.Set("location", q.location)
	}
	return v
}

// withPage returns a copy positioned for a single result page. The page
// size is validated by StreamConfig, so Build is not re-run here.
func (q Query) withPage(offset, limit int) Query {
	q.offset = offset
	q.limit = limit
	return q
}

// QueryBuilder assembles a Query. Builders have value semantics: every
// modifier returns an updated copy, so a partially configured builder
// can be branched without the branches aliasing each other. Validation
// happens once, in Build.
type QueryBuilder struct {
	q        Query
	limitSet bool
	types    []SearchType
}

// NewQuery starts building a search request for term.
func NewQuery(term string) QueryBuilder {
	return QueryBuilder{q: Query{term: term}}
}

// Language sets the interface language ("hl"), e.g. "en", "de", "ja".
func (b QueryBuilder) Language(hl string) QueryBuilder {
	b.q.language = hl
	return b
}

// Country sets the country for results ("gl"), e.g. "us", "uk", "jp".
func (b QueryBuilder) Country(gl string) QueryBuilder {
	b.q.country = gl
	return b
}

// Domain sets the Google domain to query, e.g. "google.co.uk".
func (b QueryBuilder) Domain(domain string) QueryBuilder {
	b.q.domain = domain
	return b
}

// Limit sets the number of results per response (1-100). Out-of-range
// values are rejected by Build, never clamped.
func (b QueryBuilder) Limit(n int) QueryBuilder {
	b.q.limit = n
	b.limitSet = true
	return b
}

// Offset sets the result offset for pagination ("start").
func (b QueryBuilder) Offset(n int) QueryBuilder {
	b.q.offset = n
	return b
}

// Device sets the device class.
func (b QueryBuilder) Device(d Device) QueryBuilder {
	b.q.device = d
	return b
}

// SafeSearch sets the content filtering mode.
func (b QueryBuilder) SafeSearch(s SafeSearch) QueryBuilder {
	b.q.safe = s
	return b
}

// Location sets the geographic location, e.g. "Austin, Texas".
func (b QueryBuilder) Location(location string) QueryBuilder {
	b.q.location = location
	return b
}

func (b QueryBuilder) searchTyped(t SearchType) QueryBuilder {
	// full copy keeps branched builders independent
	b.types = append(append([]SearchType(nil), b.types...), t)
	return b
}

// Images configures an image search.
func (b QueryBuilder) Images() QueryBuilder { return b.searchTyped(SearchTypeImages) }

// Videos configures a video search.
func (b QueryBuilder) Videos() QueryBuilder { return b.searchTyped(SearchTypeVideos) }

// News configures a news search.
func (b QueryBuilder) News() QueryBuilder { return b.searchTyped(SearchTypeNews) }

// Shopping configures a shopping search.
func (b QueryBuilder) Shopping() QueryBuilder { return b.searchTyped(SearchTypeShopping) }

// Local configures a local search around the given location.
func (b QueryBuilder) Local(location string) QueryBuilder {
	b.q.location = location
	return b.searchTyped(SearchTypeLocal)
}

// Build validates every constraint at once and returns the immutable
// query. On failure it returns a *ValidationError listing all
// violations; no network I/O happens during construction.
func (b QueryBuilder) Build() (Query, error) {
	var merr *multierror.Error

	q := b.q
	q.term = strings.TrimSpace(q.term)
	if q.term == "" {
		merr = multierror.Append(merr, ErrEmptyTerm)
	}
	if b.limitSet && (q.limit < MinLimit || q.limit > MaxLimit) {
		merr = multierror.Append(merr, ErrLimitOutOfRange)
	}
	if q.offset < 0 {
		merr = multierror.Append(merr, ErrNegativeOffset)
	}
	if q.device != "" && !q.device.IsValid() {
		merr = multierror.Append(merr, ErrInvalidDevice)
	}
	if q.safe != "" && !q.safe.IsValid() {
		merr = multierror.Append(merr, ErrInvalidSafeSearch)
	}

	for _, t := range b.types {
		if q.searchType != SearchTypeWeb && t != q.searchType {
			merr = multierror.Append(merr, ErrConflictingSearchTypes)
			break
		}
		q.searchType = t
	}

	if merr != nil {
		return Query{}, &ValidationError{Violations: merr.Errors}
	}
	return q, nil
}
