package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/huroofhub/huroof/internal/model"
)

func (m *Model) initPicker() {
	m.filter = textinput.New()
	m.filter.Prompt = "Filter: "
	m.filter.Placeholder = "name, meaning or number"
	m.filter.CharLimit = 0
	m.filter.Cursor.SetMode(cursor.CursorBlink)
	m.filter.Focus()

	m.picker = table.New(
		table.WithColumns(pickerColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.picker.SetStyles(pickerStyles())
}

func pickerColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 22},
		{Title: "English", Width: 18},
		{Title: "Meaning", Width: 24},
		{Title: "Verses", Width: 6},
	}
}

func pickerStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) resizePicker() {
	promptWidth := lipgloss.Width(m.filter.Prompt)
	m.filter.Width = maxInt(10, m.width-promptWidth-2)
	m.picker.SetWidth(m.width)
	// Title, filter, blank line, table header and footer.
	m.picker.SetHeight(maxInt(3, m.height-6))
}

func (m *Model) openPicker() {
	m.screen = screenPicker
	m.filter.Focus()
	if m.course.Ready() {
		m.selectChapterRow(m.course.Chapter().ID)
	}
}

// applyFilter rebuilds the table from the chapters matching the filter text.
func (m *Model) applyFilter() {
	m.visible = filterChapters(m.chapters, m.filter.Value())
	rows := make([]table.Row, 0, len(m.visible))
	for _, ch := range m.visible {
		rows = append(rows, table.Row{
			strconv.Itoa(ch.ID),
			ch.Name,
			ch.EnglishName,
			ch.EnglishNameTranslation,
			strconv.Itoa(ch.VerseCount),
		})
	}
	m.picker.SetRows(rows)
	if m.picker.Cursor() >= len(rows) {
		m.picker.SetCursor(maxInt(0, len(rows)-1))
	}
}

func (m *Model) selectChapterRow(id int) {
	for i, ch := range m.visible {
		if ch.ID == id {
			m.picker.SetCursor(i)
			return
		}
	}
}

// matchKey folds case and composes Arabic marks so a typed query matches the
// served names whichever way hamza forms were entered.
func matchKey(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

func filterChapters(chapters []model.ChapterSummary, query string) []model.ChapterSummary {
	query = matchKey(query)
	if query == "" {
		return chapters
	}
	if id, err := strconv.Atoi(query); err == nil {
		for _, ch := range chapters {
			if ch.ID == id {
				return []model.ChapterSummary{ch}
			}
		}
		return nil
	}
	out := make([]model.ChapterSummary, 0, len(chapters))
	for _, ch := range chapters {
		haystack := matchKey(ch.EnglishName + " " + ch.EnglishNameTranslation + " " + ch.Name)
		if strings.Contains(haystack, query) {
			out = append(out, ch)
		}
	}
	return out
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.course.Ready() {
			m.filter.Blur()
			if m.course.Done() {
				m.screen = screenDone
			} else {
				m.screen = screenPractice
			}
		}
		return m, nil
	case tea.KeyEnter:
		idx := m.picker.Cursor()
		if idx < 0 || idx >= len(m.visible) {
			return m, nil
		}
		return m, m.fetchChapter(m.visible[idx].ID, 1)
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *Model) viewPicker() string {
	lines := []string{titleStyle.Render("Choose a chapter"), m.filter.View(), ""}
	switch {
	case m.loadingList:
		lines = append(lines, mutedStyle.Render("Loading chapters..."))
	case len(m.chapters) == 0:
		lines = append(lines, errorStyle.Render("Chapter list is unavailable."))
	case len(m.visible) == 0:
		lines = append(lines, mutedStyle.Render("No chapters match."))
	default:
		lines = append(lines, m.picker.View())
	}

	footer := "up/down: move  enter: practice  esc: back  ctrl+c: quit"
	if m.loadingChapter > 0 {
		footer = "Loading chapter " + strconv.Itoa(m.loadingChapter) + "..."
	} else if m.errMsg != "" && len(m.chapters) > 0 {
		footer = m.errMsg
	}
	body := strings.Join(lines, "\n")
	if m.width <= 0 || m.height <= 0 {
		return body + "\n" + footerStyle.Render(footer)
	}
	return fitLines(body, m.width, m.height-1) + "\n" + footerStyle.Render(truncateLine(footer, m.width))
}
