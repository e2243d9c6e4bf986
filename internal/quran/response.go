package quran

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/huroofhub/huroof/internal/model"
)

// envelope is the wrapper around every alquran.cloud response.
type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type apiChapter struct {
	Number                 int       `json:"number"`
	Name                   string    `json:"name"`
	EnglishName            string    `json:"englishName"`
	EnglishNameTranslation string    `json:"englishNameTranslation"`
	NumberOfAyahs          int       `json:"numberOfAyahs"`
	RevelationType         string    `json:"revelationType"`
	Ayahs                  []apiAyah `json:"ayahs"`
}

type apiAyah struct {
	Number        int    `json:"number"`
	Audio         string `json:"audio"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
}

func (c apiChapter) summary() model.ChapterSummary {
	return model.ChapterSummary{
		ID:                     c.Number,
		Name:                   c.Name,
		EnglishName:            c.EnglishName,
		EnglishNameTranslation: c.EnglishNameTranslation,
		VerseCount:             c.NumberOfAyahs,
		RevelationType:         c.RevelationType,
	}
}

// mergeEditions builds a chapter from the Arabic edition and attaches the
// translation text by global ayah number. Missing translations are empty.
func mergeEditions(arabic, translation apiChapter) model.Chapter {
	byNumber := lo.KeyBy(translation.Ayahs, func(a apiAyah) int {
		return a.Number
	})
	ch := model.Chapter{
		ChapterSummary: arabic.summary(),
		Verses:         make([]model.Verse, 0, len(arabic.Ayahs)),
	}
	for _, a := range arabic.Ayahs {
		ch.Verses = append(ch.Verses, model.Verse{
			ID:            a.Number,
			Text:          a.Text,
			Translation:   byNumber[a.Number].Text,
			AudioURL:      a.Audio,
			NumberInSurah: a.NumberInSurah,
		})
	}
	if ch.VerseCount == 0 {
		ch.VerseCount = len(ch.Verses)
	}
	return ch
}
