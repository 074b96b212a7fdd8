// Command import loads a browser history export into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -json history.json -db data/zodiac.db -api-key $API_KEY
//
// The input is the JSON array the web calculator keeps in local storage,
// newest first:
//
//	[{"date1": "1990-05-15", "date2": "1995-05-01",
//	  "result1": "Cavalo Metal", "result2": "Porco Madeira",
//	  "timestamp": 1718000000000}]
//
// This tool:
// 1. Creates/opens the SQLite database
// 2. Runs migrations to ensure schema is current
// 3. Re-resolves every date and checks it against the stored result
// 4. Imports the entries oldest first in a single transaction
//
// Entries repeating the previous one are skipped and only the newest
// -keep entries survive, as for entries recorded through the API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/zodiac-api/internal/api"
	"github.com/zapponejosh/zodiac-api/internal/calendar"
	"github.com/zapponejosh/zodiac-api/internal/database"
	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

// StoredEntry is one entry of the local storage export.
type StoredEntry struct {
	Date1     string  `json:"date1"`
	Date2     string  `json:"date2"`
	Result1   string  `json:"result1"`
	Result2   *string `json:"result2"`
	Timestamp int64   `json:"timestamp"` // Unix milliseconds
}

func main() {
	jsonPath := flag.String("json", "history.json", "Path to the exported history JSON")
	dbPath := flag.String("db", "data/zodiac.db", "Path to SQLite database")
	apiKey := flag.String("api-key", "", "API key whose history receives the entries (empty: default client)")
	keep := flag.Int("keep", 5, "Entries kept per client")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*jsonPath, *dbPath, api.UserIDForKey(*apiKey), *keep, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(jsonPath, dbPath, userID string, keep int, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse JSON
	// =========================================================================
	logger.Info("reading JSON file", slog.String("path", jsonPath))

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("read JSON file: %w", err)
	}

	var stored []StoredEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	logger.Info("parsed JSON", slog.Int("entries", len(stored)))

	// =========================================================================
	// Step 2: Resolve entries
	// =========================================================================
	ephemeris, err := calendar.NewDefaultEphemeris(calendar.DefaultMinYear, calendar.DefaultMaxYear, logger)
	if err != nil {
		return fmt.Errorf("build ephemeris: %w", err)
	}
	resolver := zodiac.NewResolver(ephemeris, zodiac.WithLogger(logger))

	entries, mismatches, err := convertEntries(stored, userID, resolver, logger)
	if err != nil {
		return err
	}

	// =========================================================================
	// Step 3: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 4: Import in a transaction
	// =========================================================================
	inserted, err := db.ImportHistory(ctx, entries, keep)
	if err != nil {
		return fmt.Errorf("import history: %w", err)
	}

	kept, err := db.ListHistory(ctx, userID, 0)
	if err != nil {
		return fmt.Errorf("verify import: %w", err)
	}

	elapsed := time.Since(startTime)

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Entries read:        %d\n", len(stored))
	fmt.Printf("Entries inserted:    %d\n", inserted)
	fmt.Printf("Result mismatches:   %d\n", mismatches)
	fmt.Printf("History size now:    %d\n", len(kept))
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// convertEntries turns the newest-first export into history entries,
// oldest first. Dates are resolved again; a stored result that disagrees
// with the resolution is logged and counted, and the resolution wins.
func convertEntries(stored []StoredEntry, userID string, resolver *zodiac.Resolver, logger *slog.Logger) ([]database.HistoryEntry, int, error) {
	entries := make([]database.HistoryEntry, 0, len(stored))
	mismatches := 0

	for i := len(stored) - 1; i >= 0; i-- {
		s := stored[i]

		first, err := resolver.ResolveSign(s.Date1)
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d: %w", i, err)
		}
		if !matchesResult(first, s.Result1) {
			mismatches++
			logger.Warn("stored result differs",
				slog.String("date", s.Date1),
				slog.String("stored", s.Result1),
				slog.String("resolved", first.Animal.String()+" "+first.Element.String()),
			)
		}

		entry := database.HistoryEntry{
			UserID: userID,
			First:  database.SubjectOf(first),
		}
		if s.Timestamp > 0 {
			entry.CreatedAt = time.UnixMilli(s.Timestamp).UTC().Truncate(time.Second)
		}

		if s.Date2 != "" {
			second, err := resolver.ResolveSign(s.Date2)
			if err != nil {
				return nil, 0, fmt.Errorf("entry %d: %w", i, err)
			}
			if s.Result2 != nil && !matchesResult(second, *s.Result2) {
				mismatches++
				logger.Warn("stored result differs",
					slog.String("date", s.Date2),
					slog.String("stored", *s.Result2),
					slog.String("resolved", second.Animal.String()+" "+second.Element.String()),
				)
			}
			subject := database.SubjectOf(second)
			score := zodiac.Score(first, second)
			entry.Second = &subject
			entry.Score = &score
		}

		entries = append(entries, entry)
	}

	return entries, mismatches, nil
}

// matchesResult reports whether a stored "Animal Element" label names the
// sign's animal and element, in any supported language.
func matchesResult(sign zodiac.Sign, result string) bool {
	fields := strings.Fields(result)
	if len(fields) != 2 {
		return false
	}
	animal, err := zodiac.ParseAnimal(fields[0])
	if err != nil {
		return false
	}
	element, err := zodiac.ParseElement(fields[1])
	if err != nil {
		return false
	}
	return animal == sign.Animal && element == sign.Element
}
