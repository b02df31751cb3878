// Package export renders search results as a syndication feed.
package export

import (
	"errors"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/abelbrown/hackerstories/internal/stories"
)

// DiscussionBase is the Hacker News item page a story's objectID is appended to.
const DiscussionBase = "https://news.ycombinator.com/item?id="

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown feed format")

// Format is an output syndication format.
type Format string

const (
	FormatAtom Format = "atom"
	FormatRSS  Format = "rss"
	FormatJSON Format = "json"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAtom, FormatRSS, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// DiscussionURL returns the Hacker News comments page for s.
func DiscussionURL(s stories.Story) string {
	return DiscussionBase + url.QueryEscape(s.ObjectID)
}

// Build assembles a feed for the stories found for term.
// Stories without an outbound URL (Ask HN and friends) link to their discussion.
func Build(term string, list []stories.Story, now time.Time) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Hacker Stories: %s", term),
		Description: fmt.Sprintf("Hacker News stories matching %q", term),
		Link:        &feeds.Link{Href: "https://hn.algolia.com/?query=" + url.QueryEscape(term), Rel: "self", Type: "text/html"},
		Id:          "tag:hackerstories," + now.Format("2006") + ":search:" + url.QueryEscape(term),
		Created:     now,
		Updated:     now,
	}

	for _, s := range list {
		discussion := DiscussionURL(s)
		link := s.URL
		if link == "" {
			link = discussion
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Title:       s.Title,
			Link:        &feeds.Link{Href: link, Rel: "alternate", Type: "text/html"},
			Id:          discussion,
			Author:      &feeds.Author{Name: s.Author},
			Description: describe(s, link, discussion),
			Created:     now,
		})
	}
	return feed
}

// describe renders the HTML summary of one story.
func describe(s stories.Story, link, discussion string) string {
	return fmt.Sprintf(`<p><strong>%d points</strong> &middot; <strong>%d comments</strong> &middot; by %s</p>`+
		`<p><a href="%s">Discussion</a> &middot; <a href="%s">Article</a></p>`,
		s.Points, s.NumComments, html.EscapeString(s.Author),
		html.EscapeString(discussion), html.EscapeString(link))
}

// Render serializes feed in the given format.
func Render(feed *feeds.Feed, f Format) (string, error) {
	switch f {
	case FormatAtom:
		return feed.ToAtom()
	case FormatRSS:
		return feed.ToRss()
	case FormatJSON:
		return feed.ToJSON()
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Write builds and renders the feed for term into w.
func Write(w io.Writer, f Format, term string, list []stories.Story, now time.Time) error {
	out, err := Render(Build(term, list, now), f)
	if err != nil {
		return fmt.Errorf("render %s feed: %w", f, err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	return nil
}
