package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/hackerstories/internal/store"
	"github.com/abelbrown/hackerstories/internal/stories"
)

var (
	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(4).
			Align(lipgloss.Right)
	titleStyle = lipgloss.NewStyle().
			Bold(true)
	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)
)

// printStories writes one block per story followed by a summary line.
func printStories(w io.Writer, list []stories.Story, comments int) {
	for i, s := range list {
		fmt.Fprintf(w, "%s %s\n", rankStyle.Render(fmt.Sprintf("%d.", i+1)), titleStyle.Render(s.Title))
		if s.URL != "" {
			fmt.Fprintf(w, "     %s\n", linkStyle.Render(s.URL))
		}
		fmt.Fprintf(w, "     %s\n", metaStyle.Render(fmt.Sprintf("by %s | %d comments | %d points", s.Author, s.NumComments, s.Points)))
	}
	fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("%d stories, %d comments", len(list), comments)))
}

// printSearches writes the search log, newest last.
func printSearches(w io.Writer, searches []store.Search) {
	if len(searches) == 0 {
		fmt.Fprintln(w, metaStyle.Render("No searches recorded yet."))
		return
	}
	for _, sr := range searches {
		page := ""
		if sr.Page > 0 {
			page = metaStyle.Render(fmt.Sprintf(" (page %d)", sr.Page))
		}
		fmt.Fprintf(w, "%s  %s%s\n", metaStyle.Render(sr.IssuedAt.Local().Format(time.DateTime)), titleStyle.Render(sr.Term), page)
	}
}

// printLastSearches writes the quick re-search list.
func printLastSearches(w io.Writer, terms []string) {
	if len(terms) == 0 {
		return
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	fmt.Fprintf(w, "%s %s\n", summaryStyle.Render("Last searches:"), strings.Join(quoted, ", "))
}
