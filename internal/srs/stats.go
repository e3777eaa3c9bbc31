package srs

import (
	"sort"

	"github.com/ksuda/kioku/internal/card"
)

// Confidence bands for the dashboard counters.
const (
	masteredThreshold = 80
	learningThreshold = 30
	weakThreshold     = 50
)

// TopicWeakness reports how weak a topic tag is: the fraction of its
// cards sitting below the weak-confidence threshold.
type TopicWeakness struct {
	Tag          string
	WeakFraction float64
	CardCount    int
}

// PoolStats summarizes the review state of a card pool.
type PoolStats struct {
	Mastered          int // confidence >= 80
	Learning          int // 30 <= confidence < 80
	New               int // never reviewed
	AverageConfidence float64
	WeakestTopics     []TopicWeakness // up to 3, weakest first
}

// Stats computes dashboard statistics over the whole pool.
func Stats(pool []*card.Card) PoolStats {
	var stats PoolStats
	if len(pool) == 0 {
		return stats
	}

	type tagCount struct{ weak, total int }
	tags := make(map[string]*tagCount)

	sum := 0
	for _, c := range pool {
		conf := c.Confidence
		sum += conf

		switch {
		case conf >= masteredThreshold:
			stats.Mastered++
		case conf >= learningThreshold:
			stats.Learning++
		}
		if c.IsNew() {
			stats.New++
		}

		for _, tag := range c.Tags {
			tc := tags[tag]
			if tc == nil {
				tc = &tagCount{}
				tags[tag] = tc
			}
			tc.total++
			if conf < weakThreshold {
				tc.weak++
			}
		}
	}
	stats.AverageConfidence = float64(sum) / float64(len(pool))

	var weakest []TopicWeakness
	for tag, tc := range tags {
		frac := float64(tc.weak) / float64(tc.total)
		if frac > 0.5 {
			weakest = append(weakest, TopicWeakness{
				Tag:          tag,
				WeakFraction: frac,
				CardCount:    tc.total,
			})
		}
	}
	sort.Slice(weakest, func(i, j int) bool {
		if weakest[i].WeakFraction != weakest[j].WeakFraction {
			return weakest[i].WeakFraction > weakest[j].WeakFraction
		}
		return weakest[i].Tag < weakest[j].Tag
	})
	if len(weakest) > 3 {
		weakest = weakest[:3]
	}
	stats.WeakestTopics = weakest

	return stats
}
