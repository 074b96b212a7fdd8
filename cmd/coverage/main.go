package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/zapponejosh/zodiac-api/internal/calendar"
	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

// This tool resolves every day of a year range, either against a running
// API or in-process, and checks that each year's lunar new year boundary
// behaves: one animal change, inside the January/February window.

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// TestResult holds the result for a single date
type TestResult struct {
	Date          string          `json:"date"`
	Success       bool            `json:"success"`
	Animal        zodiac.Animal   `json:"animal"`
	Element       zodiac.Element  `json:"element"`
	EffectiveYear int             `json:"effective_year"`
	Source        calendar.Source `json:"source,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// resolveFunc resolves one date.
type resolveFunc func(date string) (zodiac.Sign, error)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	local := flag.Bool("local", false, "Resolve in-process instead of calling the API")
	startYear := flag.Int("start", 2024, "Start year")
	years := flag.Int("years", 4, "Number of years to test")
	verbose := flag.Bool("v", false, "Verbose output (show each date)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Zodiac API - Full Coverage Test")
	fmt.Println("================================================================")
	if *local {
		fmt.Println("Mode:        in-process")
	} else {
		fmt.Printf("Base URL:    %s\n", *baseURL)
	}
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Printf("Total Years: %d\n", *years)
	fmt.Println()

	var resolve resolveFunc
	if *local {
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		ephemeris, err := calendar.NewDefaultEphemeris(calendar.DefaultMinYear, calendar.DefaultMaxYear, quiet)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		// One entry per day would only churn the cache.
		resolve = zodiac.NewResolver(ephemeris, zodiac.WithLogger(quiet), zodiac.WithSignCacheSize(1)).ResolveSign
	} else {
		client := &http.Client{Timeout: 5 * time.Second}
		if _, err := client.Get(*baseURL + "/health"); err != nil {
			fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
			fmt.Println("Make sure the API server is running, or use -local.")
			os.Exit(1)
		}
		resolve = remoteResolver(client, *baseURL)
	}

	results := testAllDates(resolve, *startYear, endYear, *verbose)

	analysis := analyzeResults(results)

	printSummary(analysis, *startYear, endYear)
	printAnimals(analysis)
	printFailures(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	if analysis.TotalFailed > 0 || len(analysis.YearProblems) > 0 {
		os.Exit(1)
	}
}

func remoteResolver(client *http.Client, baseURL string) resolveFunc {
	return func(date string) (zodiac.Sign, error) {
		resp, err := client.Get(fmt.Sprintf("%s/api/v1/signs/%s", baseURL, date))
		if err != nil {
			return zodiac.Sign{}, fmt.Errorf("connection error: %w", err)
		}
		defer resp.Body.Close()

		var apiResp APIResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
			return zodiac.Sign{}, fmt.Errorf("parse error: %w", err)
		}
		if !apiResp.Success {
			if apiResp.Error != nil {
				return zodiac.Sign{}, fmt.Errorf("%s: %s", apiResp.Error.Code, apiResp.Error.Message)
			}
			return zodiac.Sign{}, fmt.Errorf("unknown error (status %d)", resp.StatusCode)
		}

		var sign zodiac.Sign
		if err := json.Unmarshal(apiResp.Data, &sign); err != nil {
			return zodiac.Sign{}, fmt.Errorf("data parse error: %w", err)
		}
		return sign, nil
	}
}

func testAllDates(resolve resolveFunc, startYear, endYear int, verbose bool) []TestResult {
	var results []TestResult

	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	fmt.Printf("Testing %d days...\n\n", totalDays)

	tested := 0
	failed := 0
	lastProgress := -1

	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		dateStr := current.Format(calendar.DateLayout)
		result := TestResult{Date: dateStr}

		sign, err := resolve(dateStr)
		if err != nil {
			result.Error = err.Error()
			failed++
		} else {
			result.Success = true
			result.Animal = sign.Animal
			result.Element = sign.Element
			result.EffectiveYear = sign.EffectiveYear
			result.Source = sign.BoundarySource
		}
		results = append(results, result)
		tested++

		progress := (tested * 100) / totalDays
		if progress != lastProgress && progress%5 == 0 {
			fmt.Printf("  Progress: %d%% (%d/%d) - Failures: %d\n", progress, tested, totalDays, failed)
			lastProgress = progress
		}

		if verbose {
			status := "✓"
			if !result.Success {
				status = "✗"
			}
			fmt.Printf("  %s %s: %s %s [%d, %s]\n",
				status, dateStr, result.Element, result.Animal, result.EffectiveYear, result.Source)
			if !result.Success {
				fmt.Printf("      Error: %s\n", result.Error)
			}
		}
	}

	fmt.Println()
	return results
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays    int                `json:"total_days"`
	TotalSuccess int                `json:"total_success"`
	TotalFailed  int                `json:"total_failed"`
	ByAnimal     map[string]int     `json:"by_animal"`
	ByYear       map[int]*YearStats `json:"by_year"`
	YearProblems []string           `json:"year_problems"`
	AllFailures  []TestResult       `json:"failures"`
}

type YearStats struct {
	Year        int             `json:"year"`
	TotalDays   int             `json:"total_days"`
	SuccessDays int             `json:"success_days"`
	FailedDays  int             `json:"failed_days"`
	Transitions int             `json:"transitions"`
	NewYear     string          `json:"new_year,omitempty"`
	Source      calendar.Source `json:"source,omitempty"`
}

func analyzeResults(results []TestResult) *Analysis {
	analysis := &Analysis{
		ByAnimal: make(map[string]int),
		ByYear:   make(map[int]*YearStats),
	}

	var prev *TestResult
	for i := range results {
		r := &results[i]
		analysis.TotalDays++

		date, _ := time.Parse(calendar.DateLayout, r.Date)
		year := date.Year()

		if _, ok := analysis.ByYear[year]; !ok {
			analysis.ByYear[year] = &YearStats{Year: year}
		}
		ys := analysis.ByYear[year]
		ys.TotalDays++

		if !r.Success {
			analysis.TotalFailed++
			ys.FailedDays++
			analysis.AllFailures = append(analysis.AllFailures, *r)
			prev = nil
			continue
		}

		analysis.TotalSuccess++
		ys.SuccessDays++
		analysis.ByAnimal[r.Animal.String()]++

		if prev != nil && prev.EffectiveYear != r.EffectiveYear {
			ys.Transitions++
			ys.NewYear = r.Date
			ys.Source = r.Source

			b := calendar.Boundary{Month: date.Month(), Day: date.Day()}
			if !b.InWindow() {
				analysis.YearProblems = append(analysis.YearProblems,
					fmt.Sprintf("%d: new year on %s, outside %s..%s", year, r.Date, calendar.WindowStart, calendar.WindowEnd))
			}
			if r.EffectiveYear != year {
				analysis.YearProblems = append(analysis.YearProblems,
					fmt.Sprintf("%d: effective year after new year is %d", year, r.EffectiveYear))
			}
		}
		prev = r
	}

	for year, ys := range analysis.ByYear {
		if ys.Transitions > 1 {
			analysis.YearProblems = append(analysis.YearProblems,
				fmt.Sprintf("%d: %d animal changes, want 1", year, ys.Transitions))
		}
	}
	sort.Strings(analysis.YearProblems)

	return analysis
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Successful:        %d (%.1f%%)\n", analysis.TotalSuccess,
		float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:            %d (%.1f%%)\n", analysis.TotalFailed,
		float64(analysis.TotalFailed)/float64(analysis.TotalDays)*100)
	fmt.Println()

	fmt.Println("By Year:")
	for year := startYear; year <= endYear; year++ {
		stats, ok := analysis.ByYear[year]
		if !ok {
			continue
		}
		status := "✓"
		if stats.FailedDays > 0 {
			status = "✗"
		}
		newYear := stats.NewYear
		if newYear == "" {
			newYear = "(none seen)"
		}
		fmt.Printf("  %s %d: %d/%d days, new year %s [%s]\n",
			status, year, stats.SuccessDays, stats.TotalDays, newYear, stats.Source)
	}
	fmt.Println()
}

func printAnimals(analysis *Analysis) {
	fmt.Println("Days per animal:")
	for _, a := range zodiac.Animals() {
		fmt.Printf("  %-8s %d\n", a, analysis.ByAnimal[a.String()])
	}
	fmt.Println()
}

func printFailures(analysis *Analysis) {
	if analysis.TotalFailed == 0 && len(analysis.YearProblems) == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	if len(analysis.YearProblems) > 0 {
		fmt.Println("================================================================")
		fmt.Println("BOUNDARY PROBLEMS")
		fmt.Println("================================================================")
		for _, p := range analysis.YearProblems {
			fmt.Printf("  - %s\n", p)
		}
		fmt.Println()
	}

	if analysis.TotalFailed == 0 {
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES (Date | Error)")
	fmt.Println("================================================================")

	// Group by error type
	errorGroups := make(map[string][]TestResult)
	for _, f := range analysis.AllFailures {
		errorGroups[f.Error] = append(errorGroups[f.Error], f)
	}

	shown := 0
	for errorType, failures := range errorGroups {
		fmt.Printf("\nError: %s (%d occurrences)\n", errorType, len(failures))
		for _, f := range failures {
			if shown >= 50 {
				break
			}
			fmt.Printf("  %s\n", f.Date)
			shown++
		}
		if shown >= 50 {
			fmt.Printf("(Showing first 50 of %d failures)\n", analysis.TotalFailed)
			break
		}
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	output := struct {
		GeneratedAt string    `json:"generated_at"`
		Analysis    *Analysis `json:"analysis"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Analysis:    analysis,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
