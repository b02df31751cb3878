// Package app is the search session: the current term, the issued search
// URLs and the stories state, advanced by a pure Update that returns the
// side effects a driver must run.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abelbrown/hackerstories/internal/logging"
	"github.com/abelbrown/hackerstories/internal/search"
	"github.com/abelbrown/hackerstories/internal/stories"
)

// SearchKey is the key the search term is persisted under.
const SearchKey = "search"

// ErrUnknownEvent is returned by Update for events it does not handle.
var ErrUnknownEvent = errors.New("unknown session event")

// Persister is the key-value port the search term is mirrored into.
type Persister interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Session is one run of the search UI. It is a value: Update returns a new
// Session and leaves the receiver alone, except for the shared comment
// cache which only memoizes.
type Session struct {
	endpoint search.Endpoint
	term     string
	history  search.History
	state    stories.State
	sorting  stories.Sorting
	comments *stories.CommentCounter
}

// NewSession returns an idle session for term: nothing issued, nothing loaded.
func NewSession(endpoint search.Endpoint, term string) Session {
	return Session{
		endpoint: endpoint,
		term:     term,
		state:    stories.Initial(),
		comments: &stories.CommentCounter{},
	}
}

// Start reads the persisted term (falling back to defaultTerm) and issues
// the initial page-0 search. Nothing is persisted at start.
func Start(p Persister, endpoint search.Endpoint, defaultTerm string) (Session, []Effect, error) {
	term := defaultTerm
	if p != nil {
		v, ok, err := p.Get(SearchKey)
		if err != nil {
			return Session{}, nil, fmt.Errorf("read search term: %w", err)
		}
		if ok {
			term = v
		}
	}

	s, effects := NewSession(endpoint, term).issue(term, 0)
	return s, effects, nil
}

// Update applies ev and returns the next session plus the effects to run.
func (s Session) Update(ev Event) (Session, []Effect, error) {
	switch ev := ev.(type) {
	case TermChanged:
		next, effects := s.setTerm(ev.Term)
		return next, effects, nil

	case SearchSubmitted:
		if strings.TrimSpace(s.term) == "" {
			return s, nil, nil
		}
		next, effects := s.issue(s.term, 0)
		return next, effects, nil

	case MoreRequested:
		current := s.history.Current()
		if current == "" {
			return s, nil, nil
		}
		next, effects := s.issue(search.ExtractTerm(current), s.state.Page+1)
		return next, effects, nil

	case LastSearchSelected:
		next, persist := s.setTerm(ev.Term)
		next, effects := next.issue(ev.Term, 0)
		return next, append(persist, effects...), nil

	case StoryDismissed:
		s.state = stories.MustReduce(s.state, stories.RemoveStory{Story: ev.Story})
		return s, nil, nil

	case SortSelected:
		s.sorting = s.sorting.Select(ev.Key)
		return s, nil, nil

	case StoriesFetched:
		s.noteStale(ev.URL)
		s.state = stories.MustReduce(s.state, stories.FetchSuccess{Stories: ev.Stories, Page: ev.Page})
		return s, nil, nil

	case StoriesFailed:
		s.noteStale(ev.URL)
		logging.Warn("search failed", "url", ev.URL, "error", ev.Err)
		s.state = stories.MustReduce(s.state, stories.FetchFailure{Err: ev.Err})
		return s, nil, nil
	}

	return s, nil, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
}

// setTerm records a committed term change. Only an actual change is persisted.
func (s Session) setTerm(term string) (Session, []Effect) {
	if term == s.term {
		return s, nil
	}
	s.term = term
	return s, []Effect{PersistTerm{Key: SearchKey, Value: term}}
}

// issue appends the URL for term/page and starts its fetch. Any fetch still
// in flight is left running; whichever completes last wins.
func (s Session) issue(term string, page int) (Session, []Effect) {
	u := s.endpoint.URL(term, page)
	s.history = s.history.Append(u)
	s.state = stories.MustReduce(s.state, stories.FetchInit{})
	return s, []Effect{
		RecordSearch{URL: u, Term: term, Page: page},
		FetchStories{URL: u},
	}
}

// noteStale logs completions that arrive after a newer search was issued.
// They are still applied.
func (s Session) noteStale(u string) {
	if current := s.history.Current(); u != current {
		logging.Debug("applying stale completion", "url", u, "current", current)
	}
}

// Term returns the live search input.
func (s Session) Term() string { return s.term }

// Endpoint returns the endpoint URLs are built against.
func (s Session) Endpoint() search.Endpoint { return s.endpoint }

// History returns the issued URLs.
func (s Session) History() search.History { return s.history }

// CurrentURL returns the newest issued URL.
func (s Session) CurrentURL() string { return s.history.Current() }

// State returns the stories state.
func (s Session) State() stories.State { return s.state }

// Sorting returns the active sort selection.
func (s Session) Sorting() stories.Sorting { return s.sorting }

// LastSearches returns the earlier terms offered for quick re-search.
func (s Session) LastSearches() []string { return s.history.LastSearches() }

// CommentTotal sums comments over the loaded stories, recomputing only
// when the stories slice changed.
func (s Session) CommentTotal() int {
	if s.comments == nil {
		return stories.SumComments(s.state.Data)
	}
	return s.comments.Sum(s.state.Data)
}

// Visible returns the loaded stories filtered by title and ordered by the
// active sort. The stories state is not changed.
func (s Session) Visible(filter string) []stories.Story {
	return s.sorting.Apply(stories.FilterByTitle(s.state.Data, filter))
}
