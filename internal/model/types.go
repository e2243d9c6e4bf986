// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Chapter            int
	Verse              int
	APIURL             string
	ArabicEdition      string
	TranslationEdition string
	Timeout            time.Duration
	SettleDelay        time.Duration
	SkipDelay          time.Duration
	Player             string
}

// ChapterSummary is one entry of the chapter (surah) table of contents.
type ChapterSummary struct {
	ID                     int
	Name                   string
	EnglishName            string
	EnglishNameTranslation string
	VerseCount             int
	RevelationType         string
}

// Chapter is a surah with its verses in order.
type Chapter struct {
	ChapterSummary
	Verses []Verse
}

// Verse is a single ayah. ID is the global ayah number across the Quran.
type Verse struct {
	ID            int
	Text          string
	Translation   string
	AudioURL      string
	NumberInSurah int
}

// Empty reports whether the chapter carries no verses.
func (c Chapter) Empty() bool {
	return len(c.Verses) == 0
}
