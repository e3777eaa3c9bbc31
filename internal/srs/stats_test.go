package srs

import (
	"testing"

	"github.com/ksuda/kioku/internal/card"
)

func taggedCard(id string, confidence, reviewCount int, tags ...string) *card.Card {
	return &card.Card{
		ID:          id,
		Confidence:  confidence,
		ReviewCount: reviewCount,
		Tags:        tags,
	}
}

func TestStats_EmptyPool(t *testing.T) {
	s := Stats(nil)
	if s.Mastered != 0 || s.Learning != 0 || s.New != 0 || s.AverageConfidence != 0 {
		t.Errorf("empty pool stats = %+v, want zeros", s)
	}
	if len(s.WeakestTopics) != 0 {
		t.Errorf("empty pool has weakest topics: %v", s.WeakestTopics)
	}
}

func TestStats_Bands(t *testing.T) {
	pool := []*card.Card{
		taggedCard("a", 95, 12), // mastered
		taggedCard("b", 80, 8),  // mastered (inclusive threshold)
		taggedCard("c", 79, 6),  // learning
		taggedCard("d", 30, 4),  // learning (inclusive threshold)
		taggedCard("e", 29, 2),  // neither band
		taggedCard("f", 0, 0),   // new
	}

	s := Stats(pool)

	if s.Mastered != 2 {
		t.Errorf("Mastered = %d, want 2", s.Mastered)
	}
	if s.Learning != 2 {
		t.Errorf("Learning = %d, want 2", s.Learning)
	}
	if s.New != 1 {
		t.Errorf("New = %d, want 1", s.New)
	}
	wantAvg := float64(95+80+79+30+29+0) / 6
	if !almostEqual(s.AverageConfidence, wantAvg) {
		t.Errorf("AverageConfidence = %v, want %v", s.AverageConfidence, wantAvg)
	}
}

func TestStats_WeakestTopics(t *testing.T) {
	pool := []*card.Card{
		// "equilibrium": 3/3 weak.
		taggedCard("e1", 10, 3, "equilibrium"),
		taggedCard("e2", 20, 3, "equilibrium"),
		taggedCard("e3", 40, 3, "equilibrium"),
		// "redox": 2/3 weak.
		taggedCard("r1", 30, 3, "redox"),
		taggedCard("r2", 45, 3, "redox"),
		taggedCard("r3", 90, 3, "redox"),
		// "gases": 1/2 weak — exactly 0.5, excluded by the strict bound.
		taggedCard("g1", 10, 3, "gases"),
		taggedCard("g2", 80, 3, "gases"),
		// "bonding": solid, excluded.
		taggedCard("b1", 85, 3, "bonding"),
	}

	s := Stats(pool)

	if len(s.WeakestTopics) != 2 {
		t.Fatalf("WeakestTopics = %v, want 2 entries", s.WeakestTopics)
	}
	if s.WeakestTopics[0].Tag != "equilibrium" || !almostEqual(s.WeakestTopics[0].WeakFraction, 1) {
		t.Errorf("weakest = %+v, want equilibrium at 1.0", s.WeakestTopics[0])
	}
	if s.WeakestTopics[1].Tag != "redox" {
		t.Errorf("second weakest = %+v, want redox", s.WeakestTopics[1])
	}
}

func TestStats_WeakestTopicsCapsAtThree(t *testing.T) {
	var pool []*card.Card
	for _, tag := range []string{"t1", "t2", "t3", "t4", "t5"} {
		pool = append(pool, taggedCard("c-"+tag, 10, 3, tag))
	}

	s := Stats(pool)

	if len(s.WeakestTopics) != 3 {
		t.Errorf("WeakestTopics has %d entries, want cap of 3", len(s.WeakestTopics))
	}
}
