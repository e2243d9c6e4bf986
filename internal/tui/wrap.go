package tui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/huroofhub/huroof/internal/letters"
)

// styledCluster is a base rune with the combining marks that follow it,
// rendered as one unit so terminals keep the marks on their letter.
type styledCluster struct {
	s       string
	width   int
	isSpace bool
}

type clusterRange struct {
	start int
	end   int
}

// findClusters groups runes into a base rune plus trailing combining marks.
func findClusters(runes []rune) []clusterRange {
	clusters := make([]clusterRange, 0, len(runes))
	for i, r := range runes {
		if len(clusters) > 0 && letters.IsDiacritic(r) && !unicode.IsSpace(runes[i-1]) {
			clusters[len(clusters)-1].end = i + 1
			continue
		}
		clusters = append(clusters, clusterRange{start: i, end: i + 1})
	}
	return clusters
}

// buildStyledClusters styles the verse: accepted clusters as correct, the
// cluster holding the next expected rune as current, the rest as pending.
func buildStyledClusters(target []rune, position int) []styledCluster {
	clusters := findClusters(target)
	out := make([]styledCluster, 0, len(clusters))
	for _, c := range clusters {
		text := string(target[c.start:c.end])
		style := pendingStyle
		switch {
		case position >= c.end:
			style = correctStyle
		case position >= c.start:
			style = cursorStyle
		}
		out = append(out, styledCluster{
			s:       style.Render(text),
			width:   runewidth.StringWidth(text),
			isSpace: target[c.start] == ' ',
		})
	}
	return out
}

func renderStyledClusters(clusters []styledCluster) string {
	var b strings.Builder
	for _, item := range clusters {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledClusters(clusters []styledCluster, width int) string {
	if width <= 0 {
		return renderStyledClusters(clusters)
	}
	var out strings.Builder
	line := make([]styledCluster, 0, len(clusters))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(clusters); {
		item := clusters[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledClusters(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledCluster{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledClusters(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledClusters(line))
	return out.String()
}

func lineWidthOf(line []styledCluster) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledCluster) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
