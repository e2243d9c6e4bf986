// Package generator builds candidate decks for the next letter of a verse.
package generator

import (
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/huroofhub/huroof/internal/letters"
)

// DeckSize is the number of candidates offered at each position.
const DeckSize = 4

// minPool is the number of priority candidates wanted before falling back to
// look-alike letters.
const minPool = DeckSize - 1

// Generator produces randomized candidate decks.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src, for reproducible decks.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Options returns DeckSize distinct runes in random order, one of which is
// correct. Distractors are taken first from the context tables for the last
// typed rune, then padded with random runes of the same class as correct.
func (g *Generator) Options(correct rune, typed string) []rune {
	deck := make([]rune, 0, DeckSize)
	deck = append(deck, correct)
	for _, r := range priorityPool(correct, typed) {
		if len(deck) == DeckSize {
			break
		}
		if lo.Contains(deck, r) {
			continue
		}
		deck = append(deck, r)
	}

	fill := letters.Alphabet()
	if letters.IsDiacritic(correct) {
		fill = letters.Diacritics()
	}
	for len(deck) < DeckSize {
		r := fill[g.rnd.Intn(len(fill))]
		if lo.Contains(deck, r) {
			continue
		}
		deck = append(deck, r)
	}

	g.rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

func priorityPool(correct rune, typed string) []rune {
	prev, hasPrev := lastRune(typed)
	if letters.IsDiacritic(correct) {
		if hasPrev {
			if pool := letters.LikelyDiacritics(prev); pool != nil {
				return lo.Without(pool, correct)
			}
		}
		return lo.Without(letters.RelatedDiacritics(correct), correct)
	}

	var pool []rune
	if hasPrev {
		pool = lo.Without(letters.Successors(prev), correct)
	}
	if len(pool) < minPool {
		for _, r := range letters.Similar(correct) {
			if r == correct || lo.Contains(pool, r) {
				continue
			}
			pool = append(pool, r)
		}
	}
	return pool
}

func lastRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, true
}
