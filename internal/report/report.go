package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/huroofhub/huroof/internal/model"
)

const terminalWidthBackup = 80

// Options controls CLI rendering.
type Options struct {
	Width int
	Color bool
}

// DefaultOptions sizes output to stdout and enables color on a terminal.
func DefaultOptions(w io.Writer, forceColor bool) Options {
	return Options{
		Width: terminalWidth(),
		Color: shouldUseColor(w, forceColor),
	}
}

// RenderChapterTable prints the table of contents.
func RenderChapterTable(w io.Writer, chapters []model.ChapterSummary) error {
	if len(chapters) == 0 {
		_, err := fmt.Fprintln(w, "No chapters found.")
		return err
	}
	headers := []string{"#", "Name", "English", "Meaning", "Verses", "Revelation"}
	rows := make([][]string, 0, len(chapters))
	for _, ch := range chapters {
		rows = append(rows, []string{
			strconv.Itoa(ch.ID),
			ch.Name,
			ch.EnglishName,
			ch.EnglishNameTranslation,
			strconv.Itoa(ch.VerseCount),
			ch.RevelationType,
		})
	}
	rightAlign := map[int]bool{0: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderVerse prints one verse with its chapter heading and translation.
func RenderVerse(w io.Writer, ch model.ChapterSummary, v model.Verse, opts Options) error {
	heading := fmt.Sprintf("%s (%s) %d:%d", ch.EnglishName, ch.EnglishNameTranslation, ch.ID, v.NumberInSurah)
	text := strings.TrimSpace(v.Text)
	if opts.Color {
		heading = lipgloss.NewStyle().Bold(true).Render(heading)
		text = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(text)
	}

	lines := []string{heading, "", text}
	if v.Translation != "" {
		lines = append(lines, "")
		lines = append(lines, wrapText(v.Translation, opts.Width)...)
	}
	if v.AudioURL != "" {
		lines = append(lines, "", "Audio: "+v.AudioURL)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
