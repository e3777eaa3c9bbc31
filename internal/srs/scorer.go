// Package srs implements the spaced-repetition engine: scoring recall
// quality into confidence and next-due updates, ranking cards by review
// priority, and assembling bounded study decks.
package srs

import (
	"time"

	"github.com/ksuda/kioku/internal/card"
)

// Quality is the recall signal for one presentation.
// 0 = total blackout, 3 = the pass/fail boundary, 5 = perfect instant recall.
const (
	QualityMin  = 0
	QualityPass = 3
	QualityMax  = 5
)

// Confidence adjustment per quality step above/below the pass boundary.
const (
	confidenceGainStep = 15
	confidenceLossStep = 20
)

// baseIntervalDays maps the post-update confidence to a base review
// interval. Thresholds are checked highest-first.
func baseIntervalDays(confidence int) float64 {
	switch {
	case confidence >= 90:
		return 7
	case confidence >= 70:
		return 3
	case confidence >= 50:
		return 1
	case confidence >= 30:
		return 0.25 // 6 hours
	default:
		return 0.042 // about an hour
	}
}

// Score computes the review-state update for grading a card with the
// given quality at time now. It returns the new confidence and the next
// scheduled review time without mutating the card; Commit applies them.
//
// The success-rate multiplier uses the card's counts as they stand
// before this presentation is recorded, and its boundaries are strict:
// exactly 0.8 or exactly 0.5 leaves the interval unchanged.
func Score(c *card.Card, quality int, now time.Time) (confidence int, nextReview time.Time) {
	confidence = c.ConfidenceOrDefault()
	if quality >= QualityPass {
		confidence += (quality - QualityPass) * confidenceGainStep
	} else {
		confidence -= (QualityPass - quality) * confidenceLossStep
	}
	confidence = clamp(confidence, 0, 100)

	interval := baseIntervalDays(confidence)
	if c.ReviewCount > 0 {
		switch rate := c.SuccessRate(); {
		case rate > 0.8:
			interval *= 1.5
		case rate < 0.5:
			interval *= 0.5
		}
	}

	nextReview = now.Add(time.Duration(interval * 24 * float64(time.Hour)))
	return confidence, nextReview
}

// Commit applies a scored presentation to the card: confidence and
// schedule from Score, plus the presentation counters. Call it exactly
// once per graded card, then persist before the next deck is built.
func Commit(c *card.Card, quality int, now time.Time) {
	confidence, nextReview := Score(c, quality, now)

	c.Confidence = confidence
	c.NextReview = &nextReview
	c.ReviewCount++
	if quality >= QualityPass {
		c.CorrectCount++
	}
	reviewedAt := now
	c.LastReviewed = &reviewedAt
}

// Priority ranks a card for deck inclusion. Lower is more urgent.
//
// A never-reviewed card is maximally urgent within its bucket and always
// scores 0, ignoring every other term. Otherwise the base is the signed
// distance to the due date in days (negative when overdue), pulled
// further down by low confidence and high difficulty.
func Priority(c *card.Card, now time.Time) float64 {
	if c.IsNew() {
		return 0
	}

	var base float64
	if c.NextReview != nil {
		base = c.NextReview.Sub(now).Hours() / 24
	}

	p := base
	p -= float64(100-c.ConfidenceOrDefault()) / 50
	p -= float64(c.Difficulty) * 2
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
