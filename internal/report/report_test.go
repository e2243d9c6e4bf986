package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huroofhub/huroof/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Name", "Verses"}
	rows := [][]string{
		{"1", "Al-Faatiha", "7"},
		{"112", "Al-Ikhlaas", "4"},
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 2: true})
	require.Len(t, lines, 3)
	assert.Equal(t, "  #  Name        Verses", lines[0])
	assert.Equal(t, "  1  Al-Faatiha       7", lines[1])
	assert.Equal(t, "112  Al-Ikhlaas       4", lines[2])
}

func TestDisplayWidthIgnoresDiacritics(t *testing.T) {
	assert.Equal(t, 3, displayWidth("بسم"))
	assert.Equal(t, 3, displayWidth("بِسْمِ"))
}

func TestWrapText(t *testing.T) {
	assert.Nil(t, wrapText("   ", 10))
	assert.Equal(t, []string{"a b c"}, wrapText("a  b c", 0))
	assert.Equal(t, []string{"SAY: He is", "the One", "God"}, wrapText("SAY: He is the One God", 10))
	assert.Equal(t, []string{"tremendously", "long"}, wrapText("tremendously long", 5))
}

func TestRenderChapterTable(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChapterTable(&buf, []model.ChapterSummary{
		{ID: 1, Name: "سُورَةُ ٱلْفَاتِحَةِ", EnglishName: "Al-Faatiha", EnglishNameTranslation: "The Opening", VerseCount: 7, RevelationType: "Meccan"},
		{ID: 112, Name: "سُورَةُ الإِخۡلَاصِ", EnglishName: "Al-Ikhlaas", EnglishNameTranslation: "Sincerity", VerseCount: 4, RevelationType: "Meccan"},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "  #  Name"))
	assert.Contains(t, lines[2], "Al-Ikhlaas")
	assert.Equal(t, displayWidth(lines[1]), displayWidth(lines[2]))
}

func TestRenderChapterTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChapterTable(&buf, nil))
	assert.Equal(t, "No chapters found.\n", buf.String())
}

func TestRenderVerse(t *testing.T) {
	var buf bytes.Buffer
	ch := model.ChapterSummary{ID: 112, EnglishName: "Al-Ikhlaas", EnglishNameTranslation: "Sincerity"}
	v := model.Verse{
		ID:            6222,
		Text:          " قُلۡ هُوَ ٱللَّهُ أَحَدٌ ",
		Translation:   "SAY: He is the One God",
		AudioURL:      "https://cdn.example/6222.mp3",
		NumberInSurah: 1,
	}
	require.NoError(t, RenderVerse(&buf, ch, v, Options{Width: 12}))
	want := strings.Join([]string{
		"Al-Ikhlaas (Sincerity) 112:1",
		"",
		"قُلۡ هُوَ ٱللَّهُ أَحَدٌ",
		"",
		"SAY: He is",
		"the One God",
		"",
		"Audio: https://cdn.example/6222.mp3",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestShouldUseColor(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("NO_COLOR", "")
	assert.False(t, shouldUseColor(&buf, false))
	assert.True(t, shouldUseColor(&buf, true))
	t.Setenv("NO_COLOR", "1")
	assert.False(t, shouldUseColor(&buf, true))
}
