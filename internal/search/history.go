package search

// maxLastSearches bounds the window taken from the tail of the
// deduplicated term list before the current search is dropped.
const maxLastSearches = 6

// LastSearches derives the recently issued terms from urls, oldest first.
// Consecutive duplicates collapse into one entry; the same term separated
// by a different one appears again. The result holds at most five terms and
// never includes the newest one, which is the search currently shown.
func LastSearches(urls []string) []string {
	terms := make([]string, 0, len(urls))
	for i, u := range urls {
		term := ExtractTerm(u)
		if i > 0 && terms[len(terms)-1] == term {
			continue
		}
		terms = append(terms, term)
	}

	if len(terms) > maxLastSearches {
		terms = terms[len(terms)-maxLastSearches:]
	}
	if len(terms) == 0 {
		return nil
	}
	return terms[:len(terms)-1]
}

// History is the append-only list of URLs a session has issued, oldest first.
// The zero value is empty and ready to use.
//
// Append never modifies a slice previously returned by URLs, so callers may
// compare URLs results by identity to detect a new search.
type History struct {
	urls []string
}

// NewHistory returns a History seeded with urls.
func NewHistory(urls ...string) History {
	return History{urls: append([]string(nil), urls...)}
}

// Append returns a new History with u added at the end.
func (h History) Append(u string) History {
	next := make([]string, len(h.urls), len(h.urls)+1)
	copy(next, h.urls)
	return History{urls: append(next, u)}
}

// Current returns the newest URL, or "" when nothing has been issued.
func (h History) Current() string {
	if len(h.urls) == 0 {
		return ""
	}
	return h.urls[len(h.urls)-1]
}

// URLs returns the issued URLs, oldest first. The slice must not be modified.
func (h History) URLs() []string {
	return h.urls
}

// Len returns the number of issued URLs.
func (h History) Len() int {
	return len(h.urls)
}

// LastSearches applies LastSearches to the history.
func (h History) LastSearches() []string {
	return LastSearches(h.urls)
}
