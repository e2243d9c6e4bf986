package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/huroofhub/huroof/internal/audio"
	"github.com/huroofhub/huroof/internal/letters"
	"github.com/huroofhub/huroof/internal/session"
)

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Chapters):
		m.openPicker()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Completed):
		m.showCompleted = !m.showCompleted
		return m, nil
	case key.Matches(msg, m.keys.Audio):
		m.playAudio()
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.course.Ready() {
			m.session.Restart()
			m.resetDeckState()
		}
		return m, nil
	case key.Matches(msg, m.keys.Skip):
		m.skip()
		return m, nil
	case key.Matches(msg, m.keys.Choose):
		idx := int(msg.Runes[0] - '1')
		return m, m.choose(idx)
	case key.Matches(msg, m.keys.Move):
		m.moveCursor(msg.String())
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m, m.choose(m.cursor)
	}
	if m.showCompleted {
		var cmd tea.Cmd
		m.completedPane, cmd = m.completedPane.Update(msg)
		return m, cmd
	}
	return m, nil
}

// choose submits the deck entry at idx.
func (m *Model) choose(idx int) tea.Cmd {
	options := m.session.Options()
	if idx < 0 || idx >= len(options) {
		return nil
	}
	m.cursor = idx
	r := options[idx]
	switch m.session.Accept(r) {
	case session.OutcomeIncorrect:
		m.marks[r] = true
		m.markSeq++
		seq := m.markSeq
		return tea.Tick(markDuration, func(_ time.Time) tea.Msg {
			return clearMarksMsg{seq: seq}
		})
	case session.OutcomeCorrect, session.OutcomeCompleted:
		m.resetDeckState()
	}
	return nil
}

func (m *Model) skip() {
	if m.session.Skip() {
		m.resetDeckState()
		return
	}
	// A verse without text cannot be practiced; move past it.
	if m.session.State() == session.StateLoading {
		if v, ok := m.course.CurrentVerse(); ok {
			m.advance(v)
		}
	}
}

func (m *Model) moveCursor(dir string) {
	n := len(m.session.Options())
	if n == 0 {
		return
	}
	// The deck is laid out right to left, like the verse.
	switch dir {
	case "left", "h":
		m.cursor = (m.cursor + 1) % n
	default:
		m.cursor = (m.cursor - 1 + n) % n
	}
}

func (m *Model) playAudio() {
	v, ok := m.course.CurrentVerse()
	if !ok {
		return
	}
	if m.player == nil {
		m.status = audio.ErrNoPlayer.Error()
		return
	}
	if err := m.player.Play(v.AudioURL); err != nil {
		m.log.WithError(err).WithField("verse", v.ID).Warn("audio playback failed")
		if errors.Is(err, audio.ErrNoPlayer) {
			m.status = err.Error()
		} else {
			m.status = "Audio playback failed."
		}
		return
	}
	m.status = "Playing verse " + strconv.Itoa(v.NumberInSurah) + "."
}

// refreshCompleted renders the completed verses log into its viewport.
func (m *Model) refreshCompleted() {
	completed := m.course.Completed()
	if len(completed) == 0 {
		m.completedPane.SetContent(mutedStyle.Render("No verses completed yet."))
		return
	}
	width := maxInt(10, m.completedPane.Width)
	blocks := make([]string, 0, len(completed))
	for _, v := range completed {
		lines := []string{
			titleStyle.Render(fmt.Sprintf("%d.", v.NumberInSurah)) + " " + session.PrepareText(v.Text),
		}
		if v.Translation != "" {
			lines = append(lines, mutedStyle.Width(width).Render(v.Translation))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	m.completedPane.SetContent(strings.Join(blocks, "\n\n"))
	m.completedPane.GotoBottom()
}

func (m *Model) viewPractice() string {
	var content string
	switch {
	case m.loadingChapter > 0:
		content = mutedStyle.Render(fmt.Sprintf("Loading chapter %d...", m.loadingChapter))
	case m.errMsg != "":
		content = errorStyle.Render(m.errMsg) + "\n" + mutedStyle.Render("Press c to choose another chapter.")
	case !m.course.Ready():
		content = mutedStyle.Render("Select a chapter to start practicing.")
	default:
		content = m.renderPractice()
	}

	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.showCompleted {
		content += "\n\n" + panelStyle.Render(m.completedPane.View())
	}
	body := lipgloss.Place(m.width, maxInt(1, m.height-2), lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(m.keys))
	return body + "\n" + footerLine + "\n" + helpLine
}

func (m *Model) renderPractice() string {
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 0
	}
	sections := []string{m.renderHeader(contentWidth), ""}

	target := []rune(m.session.Target())
	if len(target) == 0 {
		sections = append(sections, mutedStyle.Render("This verse has no text. Press ctrl+s to skip it."))
		return strings.Join(sections, "\n")
	}
	verse := wrapStyledClusters(buildStyledClusters(target, m.session.Position()), contentWidth)
	if contentWidth > 0 {
		verse = lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Right).Render(verse)
	}
	sections = append(sections, verse, "")

	if m.session.Complete() {
		sections = append(sections, correctStyle.Render("Well done!"))
	} else {
		sections = append(sections, m.renderDeck())
	}
	if m.status != "" {
		sections = append(sections, "", mutedStyle.Render(m.status))
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader(width int) string {
	ch := m.course.Chapter()
	title := fmt.Sprintf("%s · %s (%s)", ch.Name, ch.EnglishName, ch.EnglishNameTranslation)
	v, ok := m.course.CurrentVerse()
	if !ok {
		return titleStyle.Render(title)
	}
	lines := []string{titleStyle.Render(title + " · Verse " + strconv.Itoa(v.NumberInSurah))}
	if v.Translation != "" {
		style := mutedStyle
		if width > 0 {
			style = style.Width(width)
		}
		lines = append(lines, style.Render(v.Translation))
	}
	return strings.Join(lines, "\n")
}

// renderDeck draws the options right to left with their number keys.
func (m *Model) renderDeck() string {
	options := m.session.Options()
	if len(options) == 0 {
		return ""
	}
	cards := make([]string, len(options))
	for i, r := range options {
		style := optionStyle
		switch {
		case m.marks[r]:
			style = wrongOptionStyle
		case i == m.cursor:
			style = activeOptionStyle
		}
		label := mutedStyle.Render(strconv.Itoa(i+1)) + " " + letters.Display(r)
		cards[len(options)-1-i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if total := m.session.Len(); total > 0 {
		progress := int(float64(m.session.Position()) / float64(total) * 100)
		segments = append(segments, fmt.Sprintf("Progress %d%%", progress))
	}
	if label := m.course.Progress(); label != "" {
		segments = append(segments, label)
	}
	if done := len(m.course.Completed()); done > 0 {
		segments = append(segments, fmt.Sprintf("Completed %d", done))
	}
	if len(segments) == 0 {
		return ""
	}
	return footerStyle.Render(truncateLine(strings.Join(segments, "  "), m.width))
}

func (m *Model) viewDone() string {
	ch := m.course.Chapter()
	lines := []string{
		titleStyle.Render("Congratulations!"),
		"",
		fmt.Sprintf("You have completed all %d verses of %s (%s).", len(ch.Verses), ch.Name, ch.EnglishNameTranslation),
		"",
		mutedStyle.Render("enter: practice again  c: choose a chapter  q: quit"),
	}
	content := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		if len(runes) > width {
			runes = runes[:width]
		}
		return string(runes)
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
