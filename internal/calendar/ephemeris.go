package calendar

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Supported year range of the built-in table.
const (
	DefaultMinYear = 1900
	DefaultMaxYear = 2100
)

// DriftDaysPerYear is the empirical mean shift of the lunar new year from
// one Gregorian year to the next, used when a year has no table entry.
const DriftDaysPerYear = 11

// The lunar new year always falls inside [WindowStart, WindowEnd].
var (
	WindowStart = Boundary{Month: time.January, Day: 21}
	WindowEnd   = Boundary{Month: time.February, Day: 20}
)

// FallbackBoundary is returned for years outside the supported range.
var FallbackBoundary = Boundary{Month: time.February, Day: 4}

// Boundary is the month/day on which a Gregorian year's lunar new year falls.
type Boundary struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// String formats the boundary as MM-DD.
func (b Boundary) String() string {
	return fmt.Sprintf("%02d-%02d", int(b.Month), b.Day)
}

// InWindow reports whether b lies inside the traditional window.
func (b Boundary) InWindow() bool {
	return !b.before(WindowStart) && !WindowEnd.before(b)
}

func (b Boundary) before(o Boundary) bool {
	if b.Month != o.Month {
		return b.Month < o.Month
	}
	return b.Day < o.Day
}

// Source says where a boundary came from.
type Source string

const (
	SourceTable        Source = "table"
	SourceInterpolated Source = "interpolated"
	SourceFallback     Source = "fallback"
)

// Resolution is the answer for one year.
type Resolution struct {
	Year     int      `json:"year"`
	Boundary Boundary `json:"boundary"`
	Source   Source   `json:"source"`
}

// OutOfRange reports the non-fatal advisory: the year was outside the
// supported range and the fallback boundary was used.
func (r Resolution) OutOfRange() bool {
	return r.Source == SourceFallback
}

// Ephemeris resolves lunar new year boundaries from a static table.
// It holds no cache; every call is a pure function of the year and the table.
type Ephemeris struct {
	table   map[int]Boundary
	years   []int // tabulated years inside [minYear, maxYear], ascending
	minYear int
	maxYear int
	logger  *slog.Logger
}

// NewEphemeris builds a resolver over table for the supported range
// [minYear, maxYear]. Entries outside the range are ignored. Every entry
// must lie inside the traditional window, and at least one must fall in range.
func NewEphemeris(table map[int]Boundary, minYear, maxYear int, logger *slog.Logger) (*Ephemeris, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if minYear > maxYear {
		return nil, fmt.Errorf("min year %d is after max year %d", minYear, maxYear)
	}

	var errs []error
	own := make(map[int]Boundary, len(table))
	years := make([]int, 0, len(table))
	for year, b := range table {
		if !b.InWindow() {
			errs = append(errs, fmt.Errorf("year %d: boundary %s outside %s..%s", year, b, WindowStart, WindowEnd))
			continue
		}
		if year < minYear || year > maxYear {
			continue
		}
		own[year] = b
		years = append(years, year)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no table entries between %d and %d", minYear, maxYear)
	}
	slices.Sort(years)

	return &Ephemeris{
		table:   own,
		years:   years,
		minYear: minYear,
		maxYear: maxYear,
		logger:  logger,
	}, nil
}

// NewDefaultEphemeris uses the built-in 1900-2100 table.
func NewDefaultEphemeris(minYear, maxYear int, logger *slog.Logger) (*Ephemeris, error) {
	return NewEphemeris(LunarNewYearTable(), minYear, maxYear, logger)
}

// MinYear returns the first supported year.
func (e *Ephemeris) MinYear() int { return e.minYear }

// MaxYear returns the last supported year.
func (e *Ephemeris) MaxYear() int { return e.maxYear }

// Resolve returns the lunar new year boundary for year.
//
// Tabulated years come back verbatim. Years outside the supported range get
// FallbackBoundary and a WARN log line; they are never an error. In-range
// gaps are interpolated from the nearest tabulated year.
func (e *Ephemeris) Resolve(year int) Resolution {
	if year < e.minYear || year > e.maxYear {
		e.logger.Warn("year outside supported range, using fallback boundary",
			slog.Int("year", year),
			slog.Int("min_year", e.minYear),
			slog.Int("max_year", e.maxYear),
			slog.String("fallback", FallbackBoundary.String()),
		)
		return Resolution{Year: year, Boundary: FallbackBoundary, Source: SourceFallback}
	}

	if b, ok := e.table[year]; ok {
		return Resolution{Year: year, Boundary: b, Source: SourceTable}
	}

	return Resolution{Year: year, Boundary: e.interpolate(year), Source: SourceInterpolated}
}

// interpolate shifts the nearest tabulated boundary by the mean drift and
// clamps the result into the window. Ties go to the earlier year.
func (e *Ephemeris) interpolate(year int) Boundary {
	closest := e.nearest(year)
	base := e.table[closest]

	shift := (year - closest) * DriftDaysPerYear
	shifted := time.Date(closest, base.Month, base.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, shift)

	return clampToWindow(shifted)
}

func (e *Ephemeris) nearest(year int) int {
	closest := e.years[0]
	minDiff := abs(year - closest)
	for _, y := range e.years {
		if diff := abs(year - y); diff < minDiff {
			minDiff = diff
			closest = y
		}
	}
	return closest
}

// clampToWindow maps a shifted date onto [WindowStart, WindowEnd].
// December approaches the window from below and clamps to the start;
// March through November clamp to the end.
func clampToWindow(t time.Time) Boundary {
	b := Boundary{Month: t.Month(), Day: t.Day()}
	switch {
	case b.InWindow():
		return b
	case t.Month() == time.December, b.before(WindowStart):
		return WindowStart
	default:
		return WindowEnd
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
