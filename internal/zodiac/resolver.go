package zodiac

import (
	"log/slog"

	"github.com/zapponejosh/zodiac-api/internal/cache"
	"github.com/zapponejosh/zodiac-api/internal/calendar"
)

// DefaultSignCacheSize bounds the number of memoized date resolutions.
const DefaultSignCacheSize = 100

// Sign is the resolved zodiac position of one date.
type Sign struct {
	Date           string            `json:"date"`
	Animal         Animal            `json:"animal"`
	Element        Element           `json:"element"`
	EffectiveYear  int               `json:"effective_year"`
	BirthYear      int               `json:"birth_year"`
	LunarBoundary  calendar.Boundary `json:"lunar_boundary"`
	BoundarySource calendar.Source   `json:"boundary_source"`
	OutOfRange     bool              `json:"out_of_range"`
	Profile        Profile           `json:"profile"`
}

// Resolver turns dates into Signs. Boundaries and Signs are memoized in
// caches owned by the resolver, so separate resolvers never share state.
type Resolver struct {
	ephemeris  *calendar.Ephemeris
	catalog    *Catalog
	boundaries *cache.Memo[int, calendar.Resolution]
	signs      *cache.Memo[string, Sign]
	logger     *slog.Logger

	signCacheSize int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCatalog replaces the built-in profile catalog.
func WithCatalog(c *Catalog) Option {
	return func(r *Resolver) { r.catalog = c }
}

// WithSignCacheSize sets the FIFO capacity of the sign cache.
func WithSignCacheSize(n int) Option {
	return func(r *Resolver) { r.signCacheSize = n }
}

// WithLogger sets the resolver's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver creates a resolver over e.
func NewResolver(e *calendar.Ephemeris, opts ...Option) *Resolver {
	r := &Resolver{
		ephemeris:     e,
		signCacheSize: DefaultSignCacheSize,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.catalog == nil {
		r.catalog = DefaultCatalog()
	}
	if r.signCacheSize < 1 {
		r.signCacheSize = 1
	}

	// Room for every supported year.
	r.boundaries = cache.New[int, calendar.Resolution](e.MaxYear() - e.MinYear() + 1)
	r.signs = cache.New[string, Sign](r.signCacheSize)
	return r
}

// Boundary returns the lunar new year boundary for year. Years outside the
// supported range are resolved on every call and never cached.
func (r *Resolver) Boundary(year int) calendar.Resolution {
	if year < r.ephemeris.MinYear() || year > r.ephemeris.MaxYear() {
		return r.ephemeris.Resolve(year)
	}
	res, _ := r.boundaries.GetOrCompute(year, func() (calendar.Resolution, error) {
		return r.ephemeris.Resolve(year), nil
	})
	return res
}

// ResolveSign parses input as YYYY-MM-DD and resolves it. Results are cached
// by the raw input string. Unparseable input returns an error matching
// calendar.ErrInvalidDate and is not cached.
func (r *Resolver) ResolveSign(input string) (Sign, error) {
	s, err := r.signs.GetOrCompute(input, func() (Sign, error) {
		d, err := calendar.ParseDate(input)
		if err != nil {
			return Sign{}, err
		}
		return r.ResolveDate(d), nil
	})
	if err != nil {
		return Sign{}, err
	}
	s.Profile = s.Profile.clone()
	return s, nil
}

// ResolveDate resolves an already parsed civil date.
func (r *Resolver) ResolveDate(d calendar.Date) Sign {
	res := r.Boundary(d.Year)

	effectiveYear := d.Year
	if d.Before(res.Boundary) {
		effectiveYear--
	}

	animal := AnimalForYear(effectiveYear)
	if res.OutOfRange() {
		r.logger.Debug("sign resolved with fallback boundary",
			slog.String("date", d.String()),
			slog.Int("effective_year", effectiveYear),
		)
	}

	return Sign{
		Date:           d.String(),
		Animal:         animal,
		Element:        ElementForYear(effectiveYear),
		EffectiveYear:  effectiveYear,
		BirthYear:      d.Year,
		LunarBoundary:  res.Boundary,
		BoundarySource: res.Source,
		OutOfRange:     res.OutOfRange(),
		Profile:        r.catalog.Lookup(animal),
	}
}

// SupportedRange returns the inclusive year range of the ephemeris.
func (r *Resolver) SupportedRange() (minYear, maxYear int) {
	return r.ephemeris.MinYear(), r.ephemeris.MaxYear()
}

// CacheStats reports the sign and boundary cache counters.
func (r *Resolver) CacheStats() (signs, boundaries cache.Stats) {
	return r.signs.Stats(), r.boundaries.Stats()
}
