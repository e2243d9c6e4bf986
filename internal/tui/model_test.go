package tui

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huroofhub/huroof/internal/audio"
	"github.com/huroofhub/huroof/internal/generator"
	"github.com/huroofhub/huroof/internal/model"
	"github.com/huroofhub/huroof/internal/session"
)

const (
	testSettle = time.Second
	testSkip   = 100 * time.Millisecond
)

type fakeData struct {
	chapters []model.ChapterSummary
	byID     map[int]*model.Chapter
}

func (f *fakeData) FetchChapterList(context.Context) []model.ChapterSummary {
	return f.chapters
}

func (f *fakeData) FetchChapter(_ context.Context, id int) *model.Chapter {
	return f.byID[id]
}

func newFakeData() *fakeData {
	ikhlas := model.Chapter{
		ChapterSummary: model.ChapterSummary{ID: 112, Name: "الإخلاص", EnglishName: "Al-Ikhlaas", EnglishNameTranslation: "Sincerity", VerseCount: 2},
		Verses: []model.Verse{
			{ID: 6222, Text: "قل هو", Translation: "Say: He", AudioURL: "https://cdn.example/6222.mp3", NumberInSurah: 1},
			{ID: 6223, Text: "الله", Translation: "God", AudioURL: "https://cdn.example/6223.mp3", NumberInSurah: 2},
		},
	}
	fatiha := model.Chapter{
		ChapterSummary: model.ChapterSummary{ID: 1, Name: "الفاتحة", EnglishName: "Al-Faatiha", EnglishNameTranslation: "The Opening", VerseCount: 1},
		Verses:         []model.Verse{{ID: 1, Text: "بسم", NumberInSurah: 1}},
	}
	return &fakeData{
		chapters: []model.ChapterSummary{fatiha.ChapterSummary, ikhlas.ChapterSummary},
		byID:     map[int]*model.Chapter{1: &fatiha, 112: &ikhlas},
	}
}

type fakePlayer struct {
	played []string
	err    error
}

func (p *fakePlayer) Play(url string) error {
	if p.err != nil {
		return p.err
	}
	p.played = append(p.played, url)
	return nil
}

func (p *fakePlayer) Stop() {}

func newTestModelWith(t *testing.T, data DataSource, player AudioPlayer, chapter int) (*Model, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	m := NewModel(Options{
		Config: model.Config{
			Chapter:     chapter,
			SettleDelay: testSettle,
			SkipDelay:   testSkip,
		},
		Data:      data,
		Player:    player,
		Generator: generator.NewWithSource(rand.NewSource(1)),
		Clock:     clock,
	})
	t.Cleanup(m.Close)
	return m, clock
}

func newTestModel(t *testing.T, data DataSource) (*Model, *clockwork.FakeClock) {
	t.Helper()
	return newTestModelWith(t, data, &fakePlayer{}, 112)
}

func loadChapter(t *testing.T, m *Model, id int) {
	t.Helper()
	cmd := m.fetchChapter(id, 1)
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// acceptExpected presses the number key of the expected rune.
func acceptExpected(t *testing.T, m *Model) session.Outcome {
	t.Helper()
	expected, ok := m.session.Expected()
	require.True(t, ok)
	_, idx, found := lo.FindIndexOf(m.session.Options(), func(r rune) bool { return r == expected })
	require.True(t, found)
	before := m.session.Position()
	press(m, runeKey(rune('1'+idx)))
	switch {
	case m.session.Complete():
		return session.OutcomeCompleted
	case m.session.Position() == before+1:
		return session.OutcomeCorrect
	default:
		return session.OutcomeInvalid
	}
}

func finishVerse(t *testing.T, m *Model) {
	t.Helper()
	for !m.session.Complete() {
		outcome := acceptExpected(t, m)
		require.NotEqual(t, session.OutcomeInvalid, outcome)
	}
}

func receiveCompletion(t *testing.T, m *Model) tea.Msg {
	t.Helper()
	select {
	case v := <-m.completions:
		return completedMsg{verse: v}
	case <-time.After(2 * time.Second):
		t.Fatal("completion was not delivered")
		return nil
	}
}

func TestChapterLoadStartsFirstVerse(t *testing.T) {
	m, _ := newTestModel(t, newFakeData())
	assert.Equal(t, screenPractice, m.screen)
	loadChapter(t, m, 112)

	assert.Equal(t, screenPractice, m.screen)
	assert.Equal(t, 6222, m.session.Verse().ID)
	assert.Len(t, m.session.Options(), generator.DeckSize)
	assert.Contains(t, m.View(), "Sincerity")
}

func TestCompletedVerseAdvancesAfterSettleDelay(t *testing.T) {
	m, clock := newTestModel(t, newFakeData())
	loadChapter(t, m, 112)

	finishVerse(t, m)
	assert.Equal(t, 0, m.course.Index())
	assert.Contains(t, m.View(), "Well done!")

	clock.Advance(testSettle)
	m.Update(receiveCompletion(t, m))

	assert.Equal(t, 1, m.course.Index())
	assert.Equal(t, 6223, m.session.Verse().ID)
	assert.Equal(t, 0, m.session.Position())
	require.Len(t, m.course.Completed(), 1)
	assert.Equal(t, 6222, m.course.Completed()[0].ID)
}

func TestIncorrectChoiceMarksOption(t *testing.T) {
	m, _ := newTestModel(t, newFakeData())
	loadChapter(t, m, 112)

	expected, _ := m.session.Expected()
	options := m.session.Options()
	_, idx, found := lo.FindIndexOf(options, func(r rune) bool { return r != expected })
	require.True(t, found)

	cmd := press(m, runeKey(rune('1'+idx)))
	assert.NotNil(t, cmd)
	assert.True(t, m.marks[options[idx]])
	assert.Equal(t, 0, m.session.Position())
	assert.Equal(t, options, m.session.Options())

	m.Update(clearMarksMsg{seq: m.markSeq - 1})
	assert.True(t, m.marks[options[idx]])
	m.Update(clearMarksMsg{seq: m.markSeq})
	assert.Empty(t, m.marks)
}

func TestCorrectChoiceClearsMarks(t *testing.T) {
	m, _ := newTestModel(t, newFakeData())
	loadChapter(t, m, 112)
	m.marks['x'] = true
	require.Equal(t, session.OutcomeCorrect, acceptExpected(t, m))
	assert.Empty(t, m.marks)
	assert.Equal(t, 0, m.cursor)
}

func TestCursorKeysAndConfirm(t *testing.T) {
	m, _ := newTestModel(t, newFakeData())
	loadChapter(t, m, 112)

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.cursor)
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, generator.DeckSize-1, m.cursor)

	expected, _ := m.session.Expected()
	_, idx, _ := lo.FindIndexOf(m.session.Options(), func(r rune) bool { return r == expected })
	m.cursor = idx
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.session.Position())
}

func TestRestartSuppressesStaleCompletion(t *testing.T) {
	m, _ := newTestModel(t, newFakeData())
	loadChapter(t, m, 112)
	finishVerse(t, m)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 0, m.session.Position())

	m.Update(completedMsg{verse: model.Verse{ID: 6222}})
	assert.Equal(t, 0, m.course.Index())
	assert.Empty(t, m.course.Completed())
}

func TestCompletionForOtherVerseIgnored(t *testing.T) {
	m, _ := newTestModel(t, newFakeData())
	loadChapter(t, m, 112)
	finishVerse(t, m)

	m.Update(completedMsg{verse: model.Verse{ID: 1}})
	assert.Equal(t, 0, m.course.Index())
}

func TestChapterDoneAndPracticeAgain(t *testing.T) {
	m, clock := newTestModelWith(t, newFakeData(), &fakePlayer{}, 1)
	loadChapter(t, m, 1)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "بسم", m.session.TypedSoFar())
	clock.Advance(testSkip)
	m.Update(receiveCompletion(t, m))

	assert.Equal(t, screenDone, m.screen)
	assert.True(t, m.course.Done())
	assert.Contains(t, m.View(), "Congratulations!")

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenPractice, m.screen)
	assert.False(t, m.course.Done())
	assert.Empty(t, m.course.Completed())
	assert.Equal(t, 0, m.session.Position())
}

func TestSkipPastEmptyVerse(t *testing.T) {
	data := newFakeData()
	data.byID[112].Verses[0].Text = "  "
	m, _ := newTestModel(t, data)
	loadChapter(t, m, 112)
	require.Equal(t, session.StateLoading, m.session.State())
	assert.Contains(t, m.View(), "no text")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, 1, m.course.Index())
	assert.Equal(t, 6223, m.session.Verse().ID)
}

func TestUnavailableChapter(t *testing.T) {
	m, _ := newTestModel(t, newFakeData())
	loadChapter(t, m, 50)
	assert.False(t, m.course.Ready())
	assert.Contains(t, m.View(), "Chapter 50 is unavailable.")
}

func TestStaleChapterResponseIgnored(t *testing.T) {
	data := newFakeData()
	m, _ := newTestModel(t, data)
	m.loadingChapter = 1
	m.Update(chapterMsg{id: 112, start: 1, chapter: data.byID[112]})
	assert.False(t, m.course.Ready())
	assert.Equal(t, 1, m.loadingChapter)
}

func TestPickerFilterAndSelect(t *testing.T) {
	data := newFakeData()
	m, _ := newTestModelWith(t, data, &fakePlayer{}, 0)
	require.Equal(t, screenPicker, m.screen)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(chaptersMsg{chapters: data.chapters})
	assert.Len(t, m.visible, 2)

	for _, r := range "sinc" {
		press(m, runeKey(r))
	}
	require.Len(t, m.visible, 1)
	assert.Equal(t, 112, m.visible[0].ID)
	assert.Contains(t, m.View(), "Al-Ikhlaas")

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, screenPractice, m.screen)
	assert.Equal(t, 112, m.course.Chapter().ID)

	press(m, runeKey('c'))
	assert.Equal(t, screenPicker, m.screen)
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenPractice, m.screen)
}

func TestPickerShowsMissingList(t *testing.T) {
	m, _ := newTestModelWith(t, newFakeData(), &fakePlayer{}, 0)
	m.Update(chaptersMsg{})
	assert.Contains(t, m.View(), "Chapter list is unavailable.")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenPicker, m.screen)
}

func TestFilterChapters(t *testing.T) {
	chapters := newFakeData().chapters
	assert.Len(t, filterChapters(chapters, " "), 2)
	assert.Equal(t, 1, filterChapters(chapters, "1")[0].ID)
	assert.Empty(t, filterChapters(chapters, "7"))
	assert.Equal(t, 112, filterChapters(chapters, "IKH")[0].ID)
	assert.Equal(t, 1, filterChapters(chapters, "الفاتحة")[0].ID)
	// Alef followed by a combining hamza below composes to U+0625.
	decomposed := filterChapters(chapters, "ال\u0627\u0655خلاص")
	require.Len(t, decomposed, 1)
	assert.Equal(t, 112, decomposed[0].ID)
}

func TestAudioKey(t *testing.T) {
	player := &fakePlayer{}
	m, _ := newTestModelWith(t, newFakeData(), player, 112)
	loadChapter(t, m, 112)

	press(m, runeKey('a'))
	assert.Equal(t, []string{"https://cdn.example/6222.mp3"}, player.played)
	assert.Contains(t, m.status, "Playing verse 1")

	player.err = errors.New("boom")
	press(m, runeKey('a'))
	assert.Equal(t, "Audio playback failed.", m.status)
}

func TestAudioWithoutPlayer(t *testing.T) {
	m, _ := newTestModelWith(t, newFakeData(), nil, 112)
	loadChapter(t, m, 112)
	press(m, runeKey('a'))
	assert.Equal(t, audio.ErrNoPlayer.Error(), m.status)
}

func TestCompletedPaneToggle(t *testing.T) {
	m, clock := newTestModel(t, newFakeData())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	loadChapter(t, m, 112)
	finishVerse(t, m)
	clock.Advance(testSettle)
	m.Update(receiveCompletion(t, m))

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.showCompleted)
	view := m.View()
	assert.Contains(t, view, "Say: He")
	assert.True(t, strings.Contains(view, "Completed 1"))
}
