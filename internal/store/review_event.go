package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO review_events
		(sequence, timestamp, session_id, card_id, quality, correct,
		 confidence_before, confidence_after, next_review, time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC().Format(time.RFC3339),
		data.SessionID, data.CardID, data.Quality, boolInt(data.Correct),
		data.ConfidenceBefore, data.ConfidenceAfter,
		data.NextReview.UTC().Format(time.RFC3339), data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) ReviewsSince(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_events WHERE timestamp >= ?`,
		t.UTC().Format(time.RFC3339),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
