package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS media_cache (
			path TEXT PRIMARY KEY,
			known INTEGER NOT NULL,
			media_type TEXT,
			title TEXT,
			year INTEGER,
			season INTEGER,
			episode INTEGER,
			episodes TEXT,
			cached_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_media_cache_cached_at ON media_cache(cached_at);

		CREATE TABLE IF NOT EXISTS scrobbles (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			verb TEXT NOT NULL,
			state INTEGER NOT NULL,
			progress REAL NOT NULL,
			media_type TEXT NOT NULL,
			title TEXT NOT NULL,
			year INTEGER,
			season INTEGER,
			episode INTEGER,
			observed_at INTEGER NOT NULL,
			recorded_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_scrobbles_recorded_at ON scrobbles(recorded_at DESC);

		CREATE TABLE IF NOT EXISTS lastfm_session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			username TEXT NOT NULL,
			session_key TEXT NOT NULL,
			linked_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
