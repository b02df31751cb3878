package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/hackerstories/internal/stories"
)

// metaWidth is the fixed width of the right-hand author/comments/points column.
const metaWidth = 34

// RenderStream renders the story list, scrolled so the cursor stays visible.
func RenderStream(list []stories.Story, cursor int, width, height int) string {
	if len(list) == 0 {
		return HelpStyle.Render("No stories to display. Press 'tab' to search.")
	}
	if height < 1 {
		height = 1
	}

	offset := calcScrollOffset(cursor, len(list), height)

	var b strings.Builder
	for i := offset; i < len(list) && i < offset+height; i++ {
		b.WriteString(renderStoryLine(list[i], i == cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

// calcScrollOffset returns the first index to render so that cursor is
// inside a window of height rows.
func calcScrollOffset(cursor, total, height int) int {
	if total == 0 || cursor < 0 {
		return 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	if cursor >= height {
		return cursor - height + 1
	}
	return 0
}

// renderStoryLine renders one story: title, a dot leader, then the meta column.
func renderStoryLine(s stories.Story, selected bool, width int) string {
	meta := formatMeta(s)

	titleWidth := width - metaWidth - 4
	if titleWidth < 20 {
		titleWidth = 20
	}
	title := truncate(s.Title, titleWidth)
	if title == "" {
		title = "(untitled)"
	}

	if selected {
		plain := title + " " + fadeDots(titleWidth-utf8.RuneCountInString(title)) + " " + meta
		return SelectedItem.Width(width).Render(plain)
	}

	left := NormalItem.Render(title)
	dotCount := width - lipgloss.Width(left) - metaWidth - 1
	return left + MetaItem.Render(fadeDots(dotCount)) + " " + MetaItem.Render(meta)
}

// formatMeta renders the right column at exactly metaWidth runes.
func formatMeta(s stories.Story) string {
	author := truncate(s.Author, 14)
	meta := fmt.Sprintf("%-14s %6dc %6dp", author, s.NumComments, s.Points)
	if pad := metaWidth - utf8.RuneCountInString(meta); pad > 0 {
		meta = strings.Repeat(" ", pad) + meta
	}
	return meta
}

// truncate shortens s to n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func fadeDots(count int) string {
	if count <= 0 {
		return ""
	}
	// Leave one space before the next column.
	return strings.Repeat(".", count-1) + " "
}

// RenderLastSearches renders the numbered last-search shortcuts.
func RenderLastSearches(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, 0, len(terms))
	for i, term := range terms {
		parts = append(parts, LastSearchKey.Render(fmt.Sprintf("%d", i+1))+" "+LastSearchTerm.Render(term))
	}
	return " " + StatusBarText.Render("Last:") + " " + strings.Join(parts, "  ")
}

// RenderFilterBar renders the filter input bar with the match count.
func RenderFilterBar(input string, filtered, total int, width int) string {
	prompt := FilterBarPrompt.Render("/")
	count := FilterBarCount.Render(fmt.Sprintf(" %d/%d", filtered, total))

	content := prompt + input + count
	padding := width - lipgloss.Width(content) - 2 // -2 for bar padding
	if padding < 0 {
		padding = 0
	}
	return FilterBar.Width(width).Render(content + strings.Repeat(" ", padding))
}

// StatusInfo is what the status bar reports.
type StatusInfo struct {
	Cursor   int
	Total    int
	Comments int
	Sorting  stories.Sorting
	Loading  string // spinner frame plus label while a fetch runs
}

// RenderStatusBar renders the bottom status bar with position, comment
// total, sort and key hints.
func RenderStatusBar(info StatusInfo, width int) string {
	var left string
	switch {
	case info.Loading != "":
		left = " " + info.Loading + " "
	case info.Total == 0:
		left = " 0/0 "
	default:
		left = fmt.Sprintf(" %d/%d ", info.Cursor+1, info.Total)
	}
	left += StatusBarText.Render(fmt.Sprintf("comments:%d", info.Comments))
	if info.Sorting.Key != stories.SortNone {
		dir := "asc"
		if info.Sorting.Reverse {
			dir = "rev"
		}
		left += StatusBarText.Render(fmt.Sprintf(" sort:%s/%s", info.Sorting.Key, dir))
	}

	hints := make([]string, 0, len(hintBindings))
	for _, b := range hintBindings {
		h := b.Help()
		hints = append(hints, StatusBarKey.Render(h.Key)+StatusBarText.Render(":"+h.Desc))
	}
	keyHints := strings.Join(hints, " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(keyHints)
	if padding < 0 {
		padding = 0
	}
	return StatusBar.Width(width).Render(left + strings.Repeat(" ", padding) + keyHints)
}
