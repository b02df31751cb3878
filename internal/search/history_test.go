package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func urlsFor(terms ...string) []string {
	urls := make([]string, len(terms))
	for i, term := range terms {
		urls[i] = BuildURL(DefaultBase, term, 0)
	}
	return urls
}

func TestLastSearchesCollapsesConsecutive(t *testing.T) {
	got := LastSearches(urlsFor("a", "a", "b", "a", "c"))
	want := []string{"a", "b", "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LastSearches mismatch (-want +got):\n%s", diff)
	}
}

func TestLastSearchesCapsAtFive(t *testing.T) {
	got := LastSearches(urlsFor("a", "b", "c", "d", "e", "f", "g", "h"))
	want := []string{"c", "d", "e", "f", "g"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LastSearches mismatch (-want +got):\n%s", diff)
	}
}

func TestLastSearchesEmpty(t *testing.T) {
	if got := LastSearches(nil); len(got) != 0 {
		t.Errorf("LastSearches(nil) = %v, want empty", got)
	}
	if got := LastSearches(urlsFor("react")); len(got) != 0 {
		t.Errorf("single search should yield no last searches, got %v", got)
	}
}

func TestLastSearchesIgnoresPages(t *testing.T) {
	urls := []string{
		BuildURL(DefaultBase, "go", 0),
		BuildURL(DefaultBase, "go", 1),
		BuildURL(DefaultBase, "go", 2),
		BuildURL(DefaultBase, "rust", 0),
	}
	got := LastSearches(urls)
	if diff := cmp.Diff([]string{"go"}, got); diff != "" {
		t.Errorf("LastSearches mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryAppendCopies(t *testing.T) {
	h := NewHistory(urlsFor("a")...)
	before := h.URLs()

	next := h.Append(BuildURL(DefaultBase, "b", 0))

	if h.Len() != 1 {
		t.Errorf("receiver history changed: len %d", h.Len())
	}
	if next.Len() != 2 {
		t.Fatalf("next.Len() = %d, want 2", next.Len())
	}
	if &before[0] == &next.URLs()[0] {
		t.Error("Append should allocate a new backing array")
	}
	if got := ExtractTerm(next.Current()); got != "b" {
		t.Errorf("Current term = %q, want b", got)
	}
}

func TestHistoryZeroValue(t *testing.T) {
	var h History
	if h.Current() != "" {
		t.Errorf("Current() on empty history = %q", h.Current())
	}
	if h.LastSearches() != nil {
		t.Errorf("LastSearches() on empty history = %v", h.LastSearches())
	}
}
