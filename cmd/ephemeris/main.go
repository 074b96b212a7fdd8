package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/zapponejosh/zodiac-api/internal/calendar"
	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

// This tool prints the lunar new year boundary of each year in a range,
// with the animal and element it opens. With -audit it instead measures how
// far gap interpolation lands from the tabulated dates by dropping one
// year at a time from the table.

func main() {
	start := flag.Int("start", time.Now().Year()-5, "First year to print")
	end := flag.Int("end", time.Now().Year()+5, "Last year to print")
	audit := flag.Bool("audit", false, "Run a leave-one-out interpolation audit over the table")
	flag.Parse()

	if *end < *start {
		fmt.Fprintf(os.Stderr, "end year %d is before start year %d\n", *end, *start)
		os.Exit(2)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	if *audit {
		if err := runAudit(*start, *end, quiet); err != nil {
			fmt.Fprintf(os.Stderr, "audit: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ephemeris, err := calendar.NewDefaultEphemeris(calendar.DefaultMinYear, calendar.DefaultMaxYear, quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build ephemeris: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Lunar New Year Boundaries %d-%d ===\n\n", *start, *end)
	fmt.Printf("  %-6s %-7s %-13s %-8s %s\n", "Year", "Starts", "Source", "Element", "Animal")

	for year := *start; year <= *end; year++ {
		res := ephemeris.Resolve(year)
		fmt.Printf("  %-6d %-7s %-13s %-8s %s\n",
			year, res.Boundary, res.Source,
			zodiac.ElementForYear(year), zodiac.AnimalForYear(year))
	}
	fmt.Println()
	fmt.Printf("Supported range: %d-%d; other years use %s\n",
		ephemeris.MinYear(), ephemeris.MaxYear(), calendar.FallbackBoundary)
}

// auditResult is the interpolation error for one held-out year.
type auditResult struct {
	Year      int
	Actual    calendar.Boundary
	Estimated calendar.Boundary
	ErrorDays int
}

// runAudit rebuilds the ephemeris without each tabulated year in
// [start, end] and compares the interpolated boundary with the real one.
func runAudit(start, end int, logger *slog.Logger) error {
	table := calendar.LunarNewYearTable()
	years := slices.Sorted(maps.Keys(table))

	fmt.Printf("=== Interpolation Audit %d-%d ===\n\n", start, end)

	var results []auditResult
	for _, year := range years {
		if year < start || year > end {
			continue
		}

		held := maps.Clone(table)
		actual := held[year]
		delete(held, year)

		e, err := calendar.NewEphemeris(held, calendar.DefaultMinYear, calendar.DefaultMaxYear, logger)
		if err != nil {
			return fmt.Errorf("rebuild without %d: %w", year, err)
		}

		estimated := e.Resolve(year).Boundary
		results = append(results, auditResult{
			Year:      year,
			Actual:    actual,
			Estimated: estimated,
			ErrorDays: dayOfYear(year, estimated) - dayOfYear(year, actual),
		})
	}

	if len(results) == 0 {
		fmt.Println("No tabulated years in range.")
		return nil
	}

	totalAbs, worst := 0, results[0]
	exact := 0
	for _, r := range results {
		totalAbs += abs(r.ErrorDays)
		if abs(r.ErrorDays) > abs(worst.ErrorDays) {
			worst = r
		}
		if r.ErrorDays == 0 {
			exact++
		}
		status := "✓"
		if r.ErrorDays != 0 {
			status = "✗"
		}
		fmt.Printf("  %s %d: actual %s, estimated %s (%+d days)\n",
			status, r.Year, r.Actual, r.Estimated, r.ErrorDays)
	}

	fmt.Println()
	fmt.Printf("Years audited:   %d\n", len(results))
	fmt.Printf("Exact estimates: %d (%.1f%%)\n", exact, float64(exact)/float64(len(results))*100)
	fmt.Printf("Mean |error|:    %.1f days\n", float64(totalAbs)/float64(len(results)))
	fmt.Printf("Worst:           %d (%+d days)\n", worst.Year, worst.ErrorDays)
	return nil
}

func dayOfYear(year int, b calendar.Boundary) int {
	return time.Date(year, b.Month, b.Day, 0, 0, 0, 0, time.UTC).YearDay()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
