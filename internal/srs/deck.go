package srs

import (
	"fmt"
	"sort"
	"time"

	"github.com/ksuda/kioku/internal/card"
)

// Mode selects the deck-composition policy for a study session.
type Mode string

const (
	// ModeNormal draws from the whole pool with the standard mix.
	ModeNormal Mode = "normal"
	// ModeWeak restricts the pool to new cards and cards answered
	// correctly less than half the time.
	ModeWeak Mode = "weak"
	// ModeQuick is a short low-confidence-first session of 10 cards.
	ModeQuick Mode = "quick"
	// ModeNew restricts the pool to never-reviewed cards.
	ModeNew Mode = "new"
)

// ParseMode converts a mode string (e.g. a --mode flag value) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNormal, ModeWeak, ModeQuick, ModeNew:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown study mode %q (want normal, weak, quick, or new)", s)
}

// DefaultDeckSize is the target deck length when the caller does not ask
// for a specific size.
const DefaultDeckSize = 20

// QuickDeckSize is the fixed deck length for quick mode.
const QuickDeckSize = 10

// keepFront is how many of the most urgent cards keep their position at
// the front of the deck through the shuffle.
const keepFront = 3

// Slot share of the deck reserved for new and weak cards. Due cards get
// the remainder.
const (
	newSlotShareNum  = 3 // 30%
	weakSlotShareNum = 4 // 40%
	slotShareDen     = 10
)

// Rand supplies the randomness for deck shuffling. *math/rand.Rand
// satisfies it; tests inject a seeded source for determinism.
type Rand interface {
	Float64() float64
}

// GenerateDeck assembles a study deck of at most size cards from the
// pool. The pool is expected to be pre-filtered by subject/chapter; mode
// filtering happens here. A nil rng skips the shuffle, leaving the deck
// in composition order.
//
// The returned deck never contains duplicate card IDs. An empty or
// over-filtered pool yields a short (possibly empty) deck, not an error.
func GenerateDeck(pool []*card.Card, size int, mode Mode, now time.Time, rng Rand) []*card.Card {
	if mode == ModeQuick {
		size = QuickDeckSize
	}
	if size <= 0 || len(pool) == 0 {
		return nil
	}

	candidates := filterByMode(pool, mode, now)
	if len(candidates) == 0 {
		return nil
	}

	if mode == ModeQuick {
		// Low-confidence-first ordering survives priority ties below
		// because both sorts are stable.
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].ConfidenceOrDefault() < candidates[j].ConfidenceOrDefault()
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return Priority(candidates[i], now) < Priority(candidates[j], now)
	})

	// Partition. Buckets may overlap; the seen map below guarantees each
	// card lands in the deck at most once.
	var newCards, weakCards, dueCards []*card.Card
	for _, c := range candidates {
		if c.IsNew() {
			newCards = append(newCards, c)
			continue
		}
		if c.Confidence < 50 {
			weakCards = append(weakCards, c)
		}
		if c.IsDue(now) {
			dueCards = append(dueCards, c)
		}
	}

	newSlots := size * newSlotShareNum / slotShareDen
	weakSlots := size * weakSlotShareNum / slotShareDen
	dueSlots := size - newSlots - weakSlots

	deck := make([]*card.Card, 0, size)
	seen := make(map[string]bool, size)
	take := func(src []*card.Card, limit int) {
		taken := 0
		for _, c := range src {
			if taken >= limit || len(deck) >= size {
				return
			}
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			deck = append(deck, c)
			taken++
		}
	}

	take(newCards, newSlots)
	take(weakCards, weakSlots)
	take(dueCards, dueSlots)

	// Backfill from the remaining priority-sorted candidates.
	for _, c := range candidates {
		if len(deck) >= size {
			break
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		deck = append(deck, c)
	}

	shuffleTail(deck, keepFront, rng)
	return deck
}

// filterByMode applies the mode's content filter to the pool.
func filterByMode(pool []*card.Card, mode Mode, now time.Time) []*card.Card {
	switch mode {
	case ModeNew:
		var out []*card.Card
		for _, c := range pool {
			if c.IsNew() {
				out = append(out, c)
			}
		}
		return out
	case ModeWeak:
		var out []*card.Card
		for _, c := range pool {
			if c.IsNew() || c.SuccessRate() < 0.5 {
				out = append(out, c)
			}
		}
		return out
	default:
		// normal and quick study everything.
		out := make([]*card.Card, len(pool))
		copy(out, pool)
		return out
	}
}

// shuffleTail permutes deck[keep:] uniformly (Fisher-Yates) while the
// first keep cards hold their priority positions, so the most urgent
// cards always come up first without the rest of the session being
// predictable.
func shuffleTail(deck []*card.Card, keep int, rng Rand) {
	if rng == nil || len(deck) <= keep+1 {
		return
	}
	tail := deck[keep:]
	for i := len(tail) - 1; i > 0; i-- {
		j := int(rng.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		tail[i], tail[j] = tail[j], tail[i]
	}
}
