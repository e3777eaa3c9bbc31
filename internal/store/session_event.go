package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, timestamp, session_id, action, mode,
		 cards_studied, correct_count, max_streak, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC().Format(time.RFC3339),
		data.SessionID, data.Action, data.Mode,
		data.CardsStudied, data.CorrectCount, data.MaxStreak, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	q := `SELECT id, timestamp, session_id, action, mode,
			cards_studied, correct_count, max_streak, duration_secs
		FROM session_events
		WHERE action = 'completed'
		ORDER BY sequence DESC`
	if limit > 0 {
		q += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var ts string
		err := rows.Scan(&rec.ID, &ts, &rec.SessionID, &rec.Action, &rec.Mode,
			&rec.CardsStudied, &rec.CorrectCount, &rec.MaxStreak, &rec.DurationSecs)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
