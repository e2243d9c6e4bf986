// Package letters holds the static Arabic letter and diacritic tables used to
// pick plausible wrong answers.
package letters

import "unicode"

// Diacritics (harakat and Quranic annotation marks).
const (
	Fathatan        = '\u064B'
	Dammatan        = '\u064C'
	Kasratan        = '\u064D'
	Fatha           = '\u064E'
	Damma           = '\u064F'
	Kasra           = '\u0650'
	Shadda          = '\u0651'
	Sukun           = '\u0652'
	Maddah          = '\u0653'
	HamzaAbove      = '\u0654'
	HamzaBelow      = '\u0655'
	SuperscriptAlef = '\u0670'
	RoundedSukun    = '\u06E1'
	SmallWaw        = '\u06E5'
	SmallYeh        = '\u06E6'
	SubscriptAlef   = '\u0656'

	RoundedZero     = '\u06DF'
	RectangularZero = '\u06E0'
	HighMeem        = '\u06E2'
	LowSeen         = '\u06E3'
	HighMadda       = '\u06E4'
	HighYeh         = '\u06E7'
	HighNoon        = '\u06E8'
	LowMeem         = '\u06ED'
)

// Pause (waqf) marks.
const (
	WaqfSalaa    = '\u06D6'
	WaqfQalaa    = '\u06D7'
	WaqfLazim    = '\u06D8'
	WaqfLa       = '\u06D9'
	WaqfJaiz     = '\u06DA'
	WaqfMuanaqah = '\u06DB'
	WaqfSakta    = '\u06DC'
)

const dottedCircle = '\u25CC'

var alphabet = []rune("ابتثجحخدذرزسشصضطظعغفقكلمنهوي")

var diacritics = []rune{
	Fatha, Damma, Kasra, Sukun, Shadda,
	Fathatan, Dammatan, Kasratan,
	SuperscriptAlef, Maddah, HamzaAbove, HamzaBelow,
	RoundedSukun, SmallWaw, SmallYeh, SubscriptAlef,
	RoundedZero, RectangularZero, HighMeem, LowSeen, HighMadda,
	HighYeh, HighNoon, LowMeem,
	WaqfSalaa, WaqfQalaa, WaqfLazim, WaqfLa, WaqfJaiz, WaqfMuanaqah, WaqfSakta,
}

var diacriticSet = func() map[rune]struct{} {
	set := make(map[rune]struct{}, len(diacritics))
	for _, r := range diacritics {
		set[r] = struct{}{}
	}
	return set
}()

// Alphabet returns the 28 base letters used for random padding.
func Alphabet() []rune {
	return append([]rune(nil), alphabet...)
}

// Diacritics returns the full diacritic set used for random padding.
func Diacritics() []rune {
	return append([]rune(nil), diacritics...)
}

// IsDiacritic reports whether r is a mark rather than a base letter: a member
// of the diacritic set or any other nonspacing mark.
func IsDiacritic(r rune) bool {
	if _, ok := diacriticSet[r]; ok {
		return true
	}
	return unicode.Is(unicode.Mn, r)
}

// Successors returns letters that commonly follow prev.
func Successors(prev rune) []rune {
	return lookup(successors, prev)
}

// LikelyDiacritics returns diacritics that commonly sit on prev.
func LikelyDiacritics(prev rune) []rune {
	return lookup(likelyDiacritics, prev)
}

// RelatedDiacritics returns diacritics easily confused with d.
func RelatedDiacritics(d rune) []rune {
	return lookup(relatedDiacritics, d)
}

// Similar returns letters that look like r.
func Similar(r rune) []rune {
	return lookup(similar, r)
}

// Display renders r so it is visible on its own: diacritics are drawn on a
// dotted circle and a space as an open box.
func Display(r rune) string {
	switch {
	case r == ' ':
		return "␣"
	case IsDiacritic(r):
		return string([]rune{dottedCircle, r})
	default:
		return string(r)
	}
}

func lookup(table map[rune][]rune, key rune) []rune {
	values, ok := table[key]
	if !ok {
		return nil
	}
	return append([]rune(nil), values...)
}
