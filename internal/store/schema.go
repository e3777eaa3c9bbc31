package store

import (
	"database/sql"
	"fmt"
)

// migrate creates any missing tables and indexes. Statements are
// idempotent; the schema has no versioned migrations yet.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			chapter TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'quick',
			difficulty INTEGER NOT NULL DEFAULT 1,
			tags TEXT NOT NULL DEFAULT '[]',
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			page INTEGER NOT NULL DEFAULT 0,
			image TEXT NOT NULL DEFAULT '',
			conditions TEXT NOT NULL DEFAULT '[]',
			misconceptions TEXT NOT NULL DEFAULT '[]',
			review_count INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			confidence INTEGER NOT NULL DEFAULT 50,
			last_reviewed TEXT,
			next_review TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_subject ON cards (subject)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_chapter ON cards (chapter)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_next_review ON cards (next_review)`,

		`CREATE TABLE IF NOT EXISTS review_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp TEXT NOT NULL,
			session_id TEXT NOT NULL,
			card_id TEXT NOT NULL,
			quality INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			confidence_before INTEGER NOT NULL,
			confidence_after INTEGER NOT NULL,
			next_review TEXT NOT NULL,
			time_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_review_events_card ON review_events (card_id)`,
		`CREATE INDEX IF NOT EXISTS idx_review_events_session ON review_events (session_id)`,

		`CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp TEXT NOT NULL,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			mode TEXT NOT NULL,
			cards_studied INTEGER NOT NULL,
			correct_count INTEGER NOT NULL,
			max_streak INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events (session_id)`,

		`CREATE TABLE IF NOT EXISTS llm_request_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL,
			output_tokens INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}
