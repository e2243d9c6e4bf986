// Package practice tracks progress through the verses of one chapter.
package practice

import (
	"fmt"

	"github.com/huroofhub/huroof/internal/model"
)

// Course walks the verses of a chapter in order and keeps the log of verses
// completed during the current run.
type Course struct {
	chapter   model.Chapter
	index     int
	completed []model.Verse
	done      bool
}

// NewCourse returns a course with no chapter selected.
func NewCourse() *Course {
	return &Course{}
}

// SelectChapter replaces the chapter and starts a new run at the verse with
// the given 1-based number. A number outside the chapter starts at verse 1.
func (c *Course) SelectChapter(ch model.Chapter, start int) {
	c.chapter = ch
	c.completed = nil
	c.done = false
	c.index = 0
	if start > 1 && start <= len(ch.Verses) {
		c.index = start - 1
	}
}

// Chapter returns the selected chapter.
func (c *Course) Chapter() model.Chapter {
	return c.chapter
}

// Ready reports whether a chapter with verses is selected.
func (c *Course) Ready() bool {
	return !c.chapter.Empty()
}

// Index returns the 0-based index of the current verse.
func (c *Course) Index() int {
	return c.index
}

// CurrentVerse returns the verse to practice. It reports false when no
// chapter is selected or the chapter is done.
func (c *Course) CurrentVerse() (model.Verse, bool) {
	if c.done || c.index >= len(c.chapter.Verses) {
		return model.Verse{}, false
	}
	return c.chapter.Verses[c.index], true
}

// CompleteVerse records the verse with the given ID as completed and moves to
// the next one. Notifications for a verse other than the current one are
// ignored and reported as false.
func (c *Course) CompleteVerse(id int) bool {
	current, ok := c.CurrentVerse()
	if !ok || current.ID != id {
		return false
	}
	c.completed = append(c.completed, current)
	if c.index+1 < len(c.chapter.Verses) {
		c.index++
		return true
	}
	c.done = true
	return true
}

// Completed returns the verses completed in this run, oldest first.
func (c *Course) Completed() []model.Verse {
	return append([]model.Verse(nil), c.completed...)
}

// Done reports whether every verse of the chapter has been completed.
func (c *Course) Done() bool {
	return c.done
}

// Restart practices the selected chapter again from its first verse.
func (c *Course) Restart() {
	c.SelectChapter(c.chapter, 1)
}

// Progress returns a short "verse i/n" label for the current position.
func (c *Course) Progress() string {
	total := len(c.chapter.Verses)
	if total == 0 {
		return ""
	}
	if c.done {
		return fmt.Sprintf("verse %d/%d", total, total)
	}
	return fmt.Sprintf("verse %d/%d", c.index+1, total)
}
