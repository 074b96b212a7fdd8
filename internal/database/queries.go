package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// formatTimestamp renders t the way SQLite's datetime('now') does.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const historyColumns = `
	id, user_id,
	first_date, first_animal, first_element,
	second_date, second_animal, second_element,
	score, created_at`

// scanHistoryEntry reads one history_entries row, parsing the stored
// animal and element names back into their typed values.
func scanHistoryEntry(row rowScanner) (*HistoryEntry, error) {
	var (
		e                                       HistoryEntry
		firstAnimal, firstElement               string
		secondDate, secondAnimal, secondElement sql.NullString
		score                                   sql.NullInt64
		createdAt                               string
	)

	err := row.Scan(
		&e.ID, &e.UserID,
		&e.First.Date, &firstAnimal, &firstElement,
		&secondDate, &secondAnimal, &secondElement,
		&score, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if e.First.Animal, err = zodiac.ParseAnimal(firstAnimal); err != nil {
		return nil, fmt.Errorf("history entry %d: %w", e.ID, err)
	}
	if e.First.Element, err = zodiac.ParseElement(firstElement); err != nil {
		return nil, fmt.Errorf("history entry %d: %w", e.ID, err)
	}

	if secondDate.Valid {
		second := Subject{Date: secondDate.String}
		if second.Animal, err = zodiac.ParseAnimal(secondAnimal.String); err != nil {
			return nil, fmt.Errorf("history entry %d: %w", e.ID, err)
		}
		if second.Element, err = zodiac.ParseElement(secondElement.String); err != nil {
			return nil, fmt.Errorf("history entry %d: %w", e.ID, err)
		}
		e.Second = &second
	}

	if score.Valid {
		s := int(score.Int64)
		e.Score = &s
	}

	e.CreatedAt = parseTimestamp(createdAt)
	return &e, nil
}

// =============================================================================
// History Queries
// =============================================================================

// AddHistory records a calculation for entry.UserID and trims the client's
// history to its newest keep entries (keep <= 0 keeps everything).
//
// When the client's most recent entry was made from the same dates the call
// is a no-op and returns false. On insert, entry.ID and entry.CreatedAt
// are populated.
func (db *DB) AddHistory(ctx context.Context, entry *HistoryEntry, keep int) (bool, error) {
	var added bool
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		added, err = addHistoryTx(ctx, tx, entry, keep)
		return err
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// ImportHistory records entries oldest first in a single transaction, with
// the same de-duplication and trimming as AddHistory. It returns the number
// of entries inserted.
func (db *DB) ImportHistory(ctx context.Context, entries []HistoryEntry, keep int) (int, error) {
	inserted := 0
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		for i := range entries {
			added, err := addHistoryTx(ctx, tx, &entries[i], keep)
			if err != nil {
				return fmt.Errorf("import entry %d: %w", i, err)
			}
			if added {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func addHistoryTx(ctx context.Context, tx *sql.Tx, entry *HistoryEntry, keep int) (bool, error) {
	latest, err := scanHistoryEntry(tx.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM history_entries
		 WHERE user_id = ? ORDER BY id DESC LIMIT 1`, entry.UserID))
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return false, fmt.Errorf("query latest history entry: %w", err)
	case latest.sameDates(entry):
		return false, nil
	}

	var secondDate, secondAnimal, secondElement sql.NullString
	if entry.Second != nil {
		secondDate = sql.NullString{String: entry.Second.Date, Valid: true}
		secondAnimal = sql.NullString{String: entry.Second.Animal.String(), Valid: true}
		secondElement = sql.NullString{String: entry.Second.Element.String(), Valid: true}
	}
	var score sql.NullInt64
	if entry.Score != nil {
		score = sql.NullInt64{Int64: int64(*entry.Score), Valid: true}
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO history_entries (
			user_id,
			first_date, first_animal, first_element,
			second_date, second_animal, second_element,
			score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID,
		entry.First.Date, entry.First.Animal.String(), entry.First.Element.String(),
		secondDate, secondAnimal, secondElement,
		score, formatTimestamp(entry.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert history entry: %w", err)
	}

	entry.ID, err = result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("get history entry id: %w", err)
	}

	if keep > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM history_entries
			WHERE user_id = ? AND id NOT IN (
				SELECT id FROM history_entries
				WHERE user_id = ? ORDER BY id DESC LIMIT ?
			)`, entry.UserID, entry.UserID, keep)
		if err != nil {
			return false, fmt.Errorf("trim history: %w", err)
		}
	}

	return true, nil
}

// ListHistory returns a client's history, newest first. A limit <= 0
// returns every entry.
func (db *DB) ListHistory(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+historyColumns+` FROM history_entries
		 WHERE user_id = ? ORDER BY id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		e, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return entries, nil
}

// GetHistoryEntry returns one entry owned by userID.
func (db *DB) GetHistoryEntry(ctx context.Context, userID string, id int64) (*HistoryEntry, error) {
	e, err := scanHistoryEntry(db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM history_entries
		 WHERE user_id = ? AND id = ?`, userID, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query history entry: %w", err)
	}
	return e, nil
}

// ClearHistory deletes every entry of a client and returns how many
// were removed.
func (db *DB) ClearHistory(ctx context.Context, userID string) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM history_entries WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return n, nil
}
