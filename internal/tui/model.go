// Package tui provides the Bubble Tea letter practice interface.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/huroofhub/huroof/internal/generator"
	"github.com/huroofhub/huroof/internal/logging"
	"github.com/huroofhub/huroof/internal/model"
	"github.com/huroofhub/huroof/internal/practice"
	"github.com/huroofhub/huroof/internal/session"
)

const (
	fetchTimeout = time.Minute
	markDuration = 700 * time.Millisecond
)

// DataSource supplies chapters. Failures come back as nil.
type DataSource interface {
	FetchChapterList(ctx context.Context) []model.ChapterSummary
	FetchChapter(ctx context.Context, id int) *model.Chapter
}

// AudioPlayer plays verse recitations.
type AudioPlayer interface {
	Play(url string) error
	Stop()
}

type screen int

const (
	screenPractice screen = iota
	screenPicker
	screenDone
)

var (
	correctStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pendingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	optionStyle       = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	activeOptionStyle = optionStyle.BorderForeground(lipgloss.Color("#C89A3A")).Bold(true)
	wrongOptionStyle  = optionStyle.BorderForeground(lipgloss.Color("#FF4D4F")).Foreground(lipgloss.Color("#FF4D4F"))
	panelStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Options wires the model's collaborators.
type Options struct {
	Config    model.Config
	Data      DataSource
	Player    AudioPlayer
	Generator session.OptionGenerator
	Clock     clockwork.Clock
	Log       logrus.FieldLogger
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	cfg    model.Config
	data   DataSource
	player AudioPlayer
	log    logrus.FieldLogger

	session     *session.Session
	course      *practice.Course
	completions chan model.Verse

	screen   screen
	chapters []model.ChapterSummary
	visible  []model.ChapterSummary
	picker   table.Model
	filter   textinput.Model

	completedPane viewport.Model
	showCompleted bool

	keys keyMap
	help help.Model

	cursor  int
	marks   map[rune]bool
	markSeq int

	loadingList    bool
	loadingChapter int
	status         string
	errMsg         string

	width  int
	height int
}

type chaptersMsg struct {
	chapters []model.ChapterSummary
}

type chapterMsg struct {
	id      int
	start   int
	chapter *model.Chapter
}

type completedMsg struct {
	verse model.Verse
}

type clearMarksMsg struct {
	seq int
}

// NewModel constructs a practice TUI model.
func NewModel(opts Options) *Model {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	gen := opts.Generator
	if gen == nil {
		gen = generator.New()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	m := &Model{
		cfg:         opts.Config,
		data:        opts.Data,
		player:      opts.Player,
		log:         log.WithField("component", "tui"),
		course:      practice.NewCourse(),
		completions: make(chan model.Verse, 4),
		keys:        newKeyMap(),
		help:        help.New(),
		marks:       map[rune]bool{},
	}

	settle, skip := opts.Config.SettleDelay, opts.Config.SkipDelay
	if settle <= 0 {
		settle = session.DefaultSettleDelay
	}
	if skip <= 0 {
		skip = session.DefaultSkipDelay
	}
	m.session = session.New(gen,
		session.WithClock(clock),
		session.WithDelays(settle, skip),
		session.WithCompletionFunc(m.notifyCompletion),
	)

	m.initPicker()
	m.completedPane = viewport.New(0, 0)
	if m.cfg.Chapter <= 0 {
		m.screen = screenPicker
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForCompletion(), m.fetchChapterList(), textinput.Blink}
	if m.cfg.Chapter > 0 {
		cmds = append(cmds, m.fetchChapter(m.cfg.Chapter, m.cfg.Verse))
	}
	return tea.Batch(cmds...)
}

// Close stops timers and playback. Call it after the program exits.
func (m *Model) Close() {
	m.session.Close()
	if m.player != nil {
		m.player.Stop()
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case chaptersMsg:
		m.loadingList = false
		m.chapters = msg.chapters
		if len(m.chapters) == 0 {
			m.errMsg = "Chapter list is unavailable."
		}
		m.applyFilter()
		return m, nil
	case chapterMsg:
		return m, m.handleChapter(msg)
	case completedMsg:
		m.handleCompleted(msg.verse)
		return m, m.waitForCompletion()
	case clearMarksMsg:
		if msg.seq == m.markSeq {
			m.marks = map[rune]bool{}
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenPicker:
			return m.updatePicker(msg)
		case screenDone:
			return m.updateDone(msg)
		default:
			return m.updatePractice(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenPicker:
		return m.viewPicker()
	case screenDone:
		return m.viewDone()
	default:
		return m.viewPractice()
	}
}

func (m *Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Chapters):
		m.openPicker()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Restart), msg.String() == "r":
		m.course.Restart()
		m.refreshCompleted()
		m.screen = screenPractice
		m.loadCurrentVerse()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleChapter(msg chapterMsg) tea.Cmd {
	if msg.id != m.loadingChapter {
		return nil
	}
	m.loadingChapter = 0
	if msg.chapter == nil || msg.chapter.Empty() {
		m.errMsg = fmt.Sprintf("Chapter %d is unavailable.", msg.id)
		return nil
	}
	m.errMsg = ""
	m.filter.Blur()
	m.course.SelectChapter(*msg.chapter, msg.start)
	m.refreshCompleted()
	m.screen = screenPractice
	m.loadCurrentVerse()
	return nil
}

func (m *Model) handleCompleted(v model.Verse) {
	// A notification may outlive the verse it was scheduled for.
	if m.session.State() != session.StateCompleted || m.session.Verse().ID != v.ID {
		return
	}
	m.advance(v)
}

func (m *Model) advance(v model.Verse) {
	if !m.course.CompleteVerse(v.ID) {
		return
	}
	m.refreshCompleted()
	if m.course.Done() {
		m.session.Close()
		m.screen = screenDone
		return
	}
	m.loadCurrentVerse()
}

func (m *Model) loadCurrentVerse() {
	m.resetDeckState()
	m.status = ""
	v, ok := m.course.CurrentVerse()
	if !ok {
		return
	}
	m.session.LoadVerse(v)
	m.log.WithFields(logrus.Fields{
		"chapter": m.course.Chapter().ID,
		"verse":   v.NumberInSurah,
		"runes":   m.session.Len(),
	}).Debug("verse loaded")
}

func (m *Model) resetDeckState() {
	m.cursor = 0
	m.marks = map[rune]bool{}
	m.markSeq++
}

func (m *Model) notifyCompletion(v model.Verse) {
	select {
	case m.completions <- v:
	default:
		m.log.WithField("verse", v.ID).Warn("completion dropped")
	}
}

func (m *Model) waitForCompletion() tea.Cmd {
	ch := m.completions
	return func() tea.Msg {
		return completedMsg{verse: <-ch}
	}
}

func (m *Model) fetchChapterList() tea.Cmd {
	if m.data == nil {
		return nil
	}
	m.loadingList = true
	data := m.data
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return chaptersMsg{chapters: data.FetchChapterList(ctx)}
	}
}

func (m *Model) fetchChapter(id, start int) tea.Cmd {
	if m.data == nil {
		return nil
	}
	m.loadingChapter = id
	m.errMsg = ""
	data := m.data
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return chapterMsg{id: id, start: start, chapter: data.FetchChapter(ctx, id)}
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.help.Width = m.width
	m.completedPane.Width = maxInt(10, m.width-4)
	m.completedPane.Height = maxInt(3, m.height/3)
	m.refreshCompleted()
	m.resizePicker()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
