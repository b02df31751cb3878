// Package search builds Algolia search URLs and tracks the searches a
// session has issued.
package search

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultBase is the Hacker News Algolia API root.
const DefaultBase = "https://hn.algolia.com/api/v1"

const (
	searchPath = "/search"
	paramQuery = "query="
	paramPage  = "page="
)

// BuildURL composes the search endpoint for term and page.
// The term is not validated; an empty term yields an empty query.
func BuildURL(base, term string, page int) string {
	var b strings.Builder
	b.Grow(len(base) + len(searchPath) + len(term) + 16)
	b.WriteString(base)
	b.WriteString(searchPath)
	b.WriteByte('?')
	b.WriteString(paramQuery)
	b.WriteString(url.QueryEscape(term))
	b.WriteByte('&')
	b.WriteString(paramPage)
	b.WriteString(strconv.Itoa(page))
	return b.String()
}

// ExtractTerm recovers the search term from a URL built by BuildURL.
// It reads the text between the last '?' and the last '&'. Other URLs
// produce unspecified results.
func ExtractTerm(u string) string {
	start := strings.LastIndexByte(u, '?')
	end := strings.LastIndexByte(u, '&')
	if start < 0 || end <= start {
		return ""
	}
	raw := strings.TrimPrefix(u[start+1:end], paramQuery)
	term, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return term
}

// ExtractPage recovers the page number from a URL built by BuildURL.
// Returns 0 when the page parameter is missing or malformed.
func ExtractPage(u string) int {
	end := strings.LastIndexByte(u, '&')
	if end < 0 {
		return 0
	}
	page, err := strconv.Atoi(strings.TrimPrefix(u[end+1:], paramPage))
	if err != nil {
		return 0
	}
	return page
}

// Endpoint binds a base URL so callers don't thread it through every call.
type Endpoint struct {
	Base string
}

// NewEndpoint returns an Endpoint for base, or for DefaultBase when base is empty.
// A trailing slash is trimmed.
func NewEndpoint(base string) Endpoint {
	if base == "" {
		base = DefaultBase
	}
	return Endpoint{Base: strings.TrimRight(base, "/")}
}

// URL builds the search URL for term and page against this endpoint.
func (e Endpoint) URL(term string, page int) string {
	return BuildURL(e.Base, term, page)
}
