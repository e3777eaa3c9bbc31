package srs

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ksuda/kioku/internal/card"
)

// poolCard builds a reviewed card with the given schedule offset in days
// (negative = overdue).
func poolCard(id string, confidence, reviewCount, correctCount int, dueInDays float64) *card.Card {
	c := &card.Card{
		ID:           id,
		Difficulty:   2,
		Confidence:   confidence,
		ReviewCount:  reviewCount,
		CorrectCount: correctCount,
	}
	if reviewCount > 0 {
		due := testNow.Add(days(dueInDays))
		c.NextReview = &due
	}
	return c
}

func newCard(id string) *card.Card {
	return &card.Card{ID: id, Difficulty: 2}
}

// bigPool builds n reviewed cards with spread-out priorities.
func bigPool(n int) []*card.Card {
	pool := make([]*card.Card, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, poolCard(
			fmt.Sprintf("card-%02d", i),
			(i*7)%101,
			5,
			i%6,
			float64(i-n/2),
		))
	}
	return pool
}

func deckIDs(deck []*card.Card) []string {
	ids := make([]string, len(deck))
	for i, c := range deck {
		ids[i] = c.ID
	}
	return ids
}

func TestGenerateDeck_DocumentedScenario(t *testing.T) {
	a := newCard("A")
	b := poolCard("B", 20, 5, 1, -1) // overdue, weak
	c := poolCard("C", 95, 10, 9, 7) // scheduled next week

	deck := GenerateDeck([]*card.Card{c, a, b}, DefaultDeckSize, ModeNormal, testNow, nil)

	want := []string{"A", "B", "C"}
	got := deckIDs(deck)
	if len(got) != len(want) {
		t.Fatalf("deck = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("deck = %v, want %v", got, want)
		}
	}
}

func TestGenerateDeck_LengthIsMinOfSizeAndPool(t *testing.T) {
	pool := bigPool(30)

	for _, size := range []int{5, 20, 30, 50} {
		deck := GenerateDeck(pool, size, ModeNormal, testNow, nil)
		want := size
		if len(pool) < want {
			want = len(pool)
		}
		if len(deck) != want {
			t.Errorf("size %d: deck length = %d, want %d", size, len(deck), want)
		}
	}
}

func TestGenerateDeck_EmptyPool(t *testing.T) {
	if deck := GenerateDeck(nil, 20, ModeNormal, testNow, nil); len(deck) != 0 {
		t.Errorf("empty pool yielded %d cards", len(deck))
	}
}

func TestGenerateDeck_NonPositiveSize(t *testing.T) {
	pool := bigPool(10)
	for _, size := range []int{0, -5} {
		if deck := GenerateDeck(pool, size, ModeNormal, testNow, nil); len(deck) != 0 {
			t.Errorf("size %d yielded %d cards, want empty deck", size, len(deck))
		}
	}
}

func TestGenerateDeck_NoDuplicateIDs(t *testing.T) {
	pool := bigPool(25)
	// Cards that land in several buckets at once: new is impossible to
	// combine, but weak+due overlap is common.
	pool = append(pool, poolCard("overlap", 10, 8, 2, -3))
	pool = append(pool, poolCard("overlap", 10, 8, 2, -3)) // pool-level duplicate

	deck := GenerateDeck(pool, 20, ModeNormal, testNow, rand.New(rand.NewSource(7)))

	seen := make(map[string]bool)
	for _, c := range deck {
		if seen[c.ID] {
			t.Fatalf("duplicate card %q in deck %v", c.ID, deckIDs(deck))
		}
		seen[c.ID] = true
	}
}

func TestGenerateDeck_NewModeOnlyUnreviewed(t *testing.T) {
	pool := bigPool(15)
	pool = append(pool, newCard("n1"), newCard("n2"), newCard("n3"))

	deck := GenerateDeck(pool, 20, ModeNew, testNow, rand.New(rand.NewSource(1)))

	if len(deck) != 3 {
		t.Fatalf("deck length = %d, want 3", len(deck))
	}
	for _, c := range deck {
		if c.ReviewCount > 0 {
			t.Errorf("new-mode deck contains reviewed card %q", c.ID)
		}
	}
}

func TestGenerateDeck_WeakModeFilter(t *testing.T) {
	pool := []*card.Card{
		newCard("fresh"),
		poolCard("struggling", 30, 10, 3, -1), // rate 0.3
		poolCard("borderline", 55, 10, 5, -1), // rate exactly 0.5: excluded
		poolCard("solid", 90, 10, 9, 5),       // rate 0.9: excluded
	}

	deck := GenerateDeck(pool, 20, ModeWeak, testNow, nil)

	got := make(map[string]bool)
	for _, c := range deck {
		got[c.ID] = true
	}
	if !got["fresh"] || !got["struggling"] {
		t.Errorf("weak deck %v missing expected cards", deckIDs(deck))
	}
	if got["borderline"] || got["solid"] {
		t.Errorf("weak deck %v contains cards above the weak threshold", deckIDs(deck))
	}
}

func TestGenerateDeck_QuickModeForcesTen(t *testing.T) {
	pool := bigPool(40)

	for _, requested := range []int{5, 20, 100} {
		deck := GenerateDeck(pool, requested, ModeQuick, testNow, rand.New(rand.NewSource(3)))
		if len(deck) != QuickDeckSize {
			t.Errorf("requested %d: quick deck length = %d, want %d", requested, len(deck), QuickDeckSize)
		}
	}
}

func TestGenerateDeck_ShuffleKeepsFirstThree(t *testing.T) {
	pool := bigPool(30)

	baseline := GenerateDeck(pool, 20, ModeNormal, testNow, nil)
	shuffled := GenerateDeck(pool, 20, ModeNormal, testNow, rand.New(rand.NewSource(42)))

	for i := 0; i < keepFront; i++ {
		if baseline[i].ID != shuffled[i].ID {
			t.Errorf("position %d: %q after shuffle, want %q", i, shuffled[i].ID, baseline[i].ID)
		}
	}

	// Same seed, same deck.
	again := GenerateDeck(pool, 20, ModeNormal, testNow, rand.New(rand.NewSource(42)))
	for i := range shuffled {
		if shuffled[i].ID != again[i].ID {
			t.Fatal("seeded shuffle is not deterministic")
		}
	}

	// Same membership either way.
	members := make(map[string]bool)
	for _, c := range baseline {
		members[c.ID] = true
	}
	for _, c := range shuffled {
		if !members[c.ID] {
			t.Errorf("shuffle changed deck membership: unexpected %q", c.ID)
		}
	}
}

func TestGenerateDeck_SlotAllocation(t *testing.T) {
	// 4 new, plenty of weak and due: a size-10 deck should open with
	// 3 new (30%), then 4 weak (40%), then 3 due.
	var pool []*card.Card
	for i := 0; i < 4; i++ {
		pool = append(pool, newCard(fmt.Sprintf("new-%d", i)))
	}
	for i := 0; i < 6; i++ {
		pool = append(pool, poolCard(fmt.Sprintf("weak-%d", i), 20, 10, 6, float64(i)+1)) // weak but not due
	}
	for i := 0; i < 6; i++ {
		pool = append(pool, poolCard(fmt.Sprintf("due-%d", i), 70, 10, 8, -float64(i)-1)) // due but not weak
	}

	deck := GenerateDeck(pool, 10, ModeNormal, testNow, nil)

	counts := map[string]int{}
	for _, c := range deck {
		switch {
		case c.IsNew():
			counts["new"]++
		case c.Confidence < 50:
			counts["weak"]++
		default:
			counts["due"]++
		}
	}
	if counts["new"] != 3 || counts["weak"] != 4 || counts["due"] != 3 {
		t.Errorf("slot mix = %v, want new:3 weak:4 due:3 (deck %v)", counts, deckIDs(deck))
	}
}

func TestGenerateDeck_BackfillWhenBucketsRunDry(t *testing.T) {
	// No new or weak cards at all: the deck must still fill from the
	// priority-sorted remainder.
	var pool []*card.Card
	for i := 0; i < 12; i++ {
		pool = append(pool, poolCard(fmt.Sprintf("future-%d", i), 85, 10, 9, float64(i)+1))
	}

	deck := GenerateDeck(pool, 10, ModeNormal, testNow, nil)

	if len(deck) != 10 {
		t.Errorf("deck length = %d, want 10 via backfill", len(deck))
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"normal", "weak", "quick", "new"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseMode("cram"); err == nil {
		t.Error("ParseMode accepted an unknown mode")
	}
}
