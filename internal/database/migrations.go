package database

// migrationsSQL contains all database migrations, applied in version order.
var migrationsSQL = map[int]string{
	1: migrationV1History,
}

// migrationV1History creates the calculation history table.
//
// One row is one calculation: a first date and an optional second date,
// the resolved animal/element of each and, for pairs, the synergy score.
// Animals and elements are stored by their canonical English name.
const migrationV1History = `
CREATE TABLE IF NOT EXISTS history_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Client identifier (hash of the API key, "default" without one)
    user_id TEXT NOT NULL,

    first_date TEXT NOT NULL,
    first_animal TEXT NOT NULL,
    first_element TEXT NOT NULL,

    -- Second subject is optional; all three are NULL together
    second_date TEXT,
    second_animal TEXT,
    second_element TEXT,

    score INTEGER CHECK (score IS NULL OR (score BETWEEN 30 AND 100)),

    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Newest-first listing per client
CREATE INDEX IF NOT EXISTS idx_history_entries_user
    ON history_entries(user_id, id DESC);
`
