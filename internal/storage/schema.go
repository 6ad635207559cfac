package storage

const schemaSQL = `
-- Apps table holds one row per successfully scraped listing. The date
-- column is the snapshot batch date and acts as the overwrite key:
-- loading a snapshot replaces all rows for its date.
CREATE TABLE IF NOT EXISTS apps (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    version TEXT,
    ranking INTEGER,
    url TEXT NOT NULL,
    date TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_apps_date ON apps(date);
CREATE INDEX IF NOT EXISTS idx_apps_ranking ON apps(ranking);

-- Errors table holds failure records from the same snapshots.
CREATE TABLE IF NOT EXISTS errors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    url TEXT NOT NULL,
    error_message TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_errors_timestamp ON errors(timestamp);
`
