package app

import "github.com/abelbrown/hackerstories/internal/stories"

// Event is an input to Update. The set is closed.
type Event interface {
	event()
}

// TermChanged is sent when the user edits the search input.
type TermChanged struct {
	Term string
}

// SearchSubmitted starts a fresh search for the current term.
type SearchSubmitted struct{}

// MoreRequested asks for the next page of the newest search.
type MoreRequested struct{}

// LastSearchSelected re-runs a term from the last-searches list.
type LastSearchSelected struct {
	Term string
}

// StoryDismissed removes a story from the results.
type StoryDismissed struct {
	Story stories.Story
}

// SortSelected changes the list ordering. Selecting the active key again
// reverses it.
type SortSelected struct {
	Key stories.SortKey
}

// StoriesFetched reports a completed request for URL.
type StoriesFetched struct {
	URL     string
	Stories []stories.Story
	Page    int
}

// StoriesFailed reports a failed request for URL.
type StoriesFailed struct {
	URL string
	Err error
}

func (TermChanged) event()        {}
func (SearchSubmitted) event()    {}
func (MoreRequested) event()      {}
func (LastSearchSelected) event() {}
func (StoryDismissed) event()     {}
func (SortSelected) event()       {}
func (StoriesFetched) event()     {}
func (StoriesFailed) event()      {}

// Effect is work Update asks the driver to perform. Update itself never
// touches the network or the store.
type Effect interface {
	effect()
}

// PersistTerm writes the search term to the key-value port.
type PersistTerm struct {
	Key   string
	Value string
}

// FetchStories performs one request for URL and reports back with
// StoriesFetched or StoriesFailed.
type FetchStories struct {
	URL string
}

// RecordSearch appends an issued URL to the search log.
type RecordSearch struct {
	URL  string
	Term string
	Page int
}

func (PersistTerm) effect()  {}
func (FetchStories) effect() {}
func (RecordSearch) effect() {}
