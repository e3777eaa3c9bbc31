package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ksuda/kioku/internal/card"
)

// cardRepo implements CardRepo on the cards table.
type cardRepo struct {
	db *sql.DB
}

const cardColumns = `id, subject, chapter, type, difficulty, tags,
	question, answer, page, image, conditions, misconceptions,
	review_count, correct_count, confidence, last_reviewed, next_review`

func (r *cardRepo) All(ctx context.Context) ([]*card.Card, error) {
	return r.query(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY id`)
}

func (r *cardRepo) Filter(ctx context.Context, subject, chapter string) ([]*card.Card, error) {
	q := `SELECT ` + cardColumns + ` FROM cards WHERE 1=1`
	var args []any
	if subject != "" {
		q += ` AND subject = ?`
		args = append(args, subject)
	}
	if chapter != "" {
		q += ` AND chapter = ?`
		args = append(args, chapter)
	}
	q += ` ORDER BY id`
	return r.query(ctx, q, args...)
}

func (r *cardRepo) query(ctx context.Context, q string, args ...any) ([]*card.Card, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []*card.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepo) Insert(ctx context.Context, cards []*card.Card) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	// Content columns only: re-importing a card must not clobber its
	// review progress.
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cards
		(id, subject, chapter, type, difficulty, tags, question, answer,
		 page, image, conditions, misconceptions, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			chapter = excluded.chapter,
			type = excluded.type,
			difficulty = excluded.difficulty,
			tags = excluded.tags,
			question = excluded.question,
			answer = excluded.answer,
			page = excluded.page,
			image = excluded.image,
			conditions = excluded.conditions,
			misconceptions = excluded.misconceptions`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, c := range cards {
		confidence := c.Confidence
		if confidence == 0 {
			confidence = card.DefaultConfidence
		}
		_, err := stmt.ExecContext(ctx,
			c.ID, string(c.Subject), c.Chapter, string(c.Type), c.Difficulty,
			marshalStrings(c.Tags), c.Question, c.Answer, c.Page, c.Image,
			marshalStrings(c.Conditions), marshalStrings(c.Misconceptions),
			confidence,
		)
		if err != nil {
			return 0, fmt.Errorf("insert card %q: %w", c.ID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return written, nil
}

func (r *cardRepo) UpdateReviewState(ctx context.Context, c *card.Card) error {
	_, err := r.db.ExecContext(ctx, `UPDATE cards SET
			review_count = ?,
			correct_count = ?,
			confidence = ?,
			last_reviewed = ?,
			next_review = ?
		WHERE id = ?`,
		c.ReviewCount, c.CorrectCount, c.Confidence,
		nullTime(c.LastReviewed), nullTime(c.NextReview), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update review state for %q: %w", c.ID, err)
	}
	return nil
}

func (r *cardRepo) ResetReviewState(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE cards SET
		review_count = 0,
		correct_count = 0,
		confidence = ?,
		last_reviewed = NULL,
		next_review = NULL`,
		card.DefaultConfidence,
	)
	if err != nil {
		return fmt.Errorf("reset review state: %w", err)
	}
	return nil
}

func (r *cardRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

func (r *cardRepo) Chapters(ctx context.Context, subject string) ([]string, error) {
	q := `SELECT DISTINCT chapter FROM cards`
	var args []any
	if subject != "" {
		q += ` WHERE subject = ?`
		args = append(args, subject)
	}
	q += ` ORDER BY chapter`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []string
	for rows.Next() {
		var ch string
		if err := rows.Scan(&ch); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// scanCard reads one card row.
func scanCard(rows *sql.Rows) (*card.Card, error) {
	var (
		c                            card.Card
		subject, cardType            string
		tags, conditions, misconcpts string
		lastReviewed, nextReview     sql.NullString
	)
	err := rows.Scan(
		&c.ID, &subject, &c.Chapter, &cardType, &c.Difficulty, &tags,
		&c.Question, &c.Answer, &c.Page, &c.Image, &conditions, &misconcpts,
		&c.ReviewCount, &c.CorrectCount, &c.Confidence, &lastReviewed, &nextReview,
	)
	if err != nil {
		return nil, fmt.Errorf("scan card: %w", err)
	}

	c.Subject = card.Subject(subject)
	c.Type = card.Type(cardType)
	c.Tags = unmarshalStrings(tags)
	c.Conditions = unmarshalStrings(conditions)
	c.Misconceptions = unmarshalStrings(misconcpts)
	c.LastReviewed = parseNullTime(lastReviewed)
	c.NextReview = parseNullTime(nextReview)
	return &c, nil
}

func marshalStrings(ss []string) string {
	if len(ss) == 0 {
		return "[]"
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalStrings(s string) []string {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullTime(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}
