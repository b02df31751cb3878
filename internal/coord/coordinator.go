// Package coord runs the effects a search session asks for: persisting the
// term, logging issued searches and fetching result pages.
package coord

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/hackerstories/internal/app"
	"github.com/abelbrown/hackerstories/internal/fetch"
	"github.com/abelbrown/hackerstories/internal/logging"
	"github.com/abelbrown/hackerstories/internal/search"
	"github.com/abelbrown/hackerstories/internal/store"
)

// fetchTimeout bounds a single request on top of the client timeout.
const fetchTimeout = 30 * time.Second

// maxConcurrentFetches limits parallel page fetches.
const maxConcurrentFetches = 4

// fetcher interface for dependency injection (testing).
type fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Result, error)
}

// searchLog records issued searches.
type searchLog interface {
	RecordSearch(sr store.Search) error
}

// Coordinator executes session effects.
// Fetches are never cancelled by newer ones; only ctx stops them.
type Coordinator struct {
	persister app.Persister // optional: nil skips persistence
	log       searchLog     // optional: nil skips the search log
	fetcher   fetcher
}

// NewCoordinator creates a Coordinator backed by the store and the real fetcher.
func NewCoordinator(st *store.Store, f *fetch.Fetcher) *Coordinator {
	if st == nil {
		return NewCoordinatorWith(nil, nil, f)
	}
	return NewCoordinatorWith(st, st, f)
}

// NewCoordinatorWith allows injecting each collaborator (for testing).
func NewCoordinatorWith(p app.Persister, l searchLog, f fetcher) *Coordinator {
	return &Coordinator{
		persister: p,
		log:       l,
		fetcher:   f,
	}
}

// Run performs one effect and returns the event it produces, if any.
// Persistence and logging failures are logged, not returned: they never
// change what the user sees.
func (c *Coordinator) Run(ctx context.Context, e app.Effect) app.Event {
	switch e := e.(type) {
	case app.PersistTerm:
		if c.persister == nil {
			return nil
		}
		if err := c.persister.Set(e.Key, e.Value); err != nil {
			logging.Warn("persist term failed", "key", e.Key, "error", err)
		}
		return nil

	case app.RecordSearch:
		if c.log == nil {
			return nil
		}
		if err := c.log.RecordSearch(store.Search{URL: e.URL, Term: e.Term, Page: e.Page}); err != nil {
			logging.Warn("record search failed", "url", e.URL, "error", err)
		}
		return nil

	case app.FetchStories:
		return c.fetch(ctx, e.URL)
	}

	logging.Error("unknown effect", "type", fmt.Sprintf("%T", e))
	return nil
}

// fetch performs the request for url and wraps the outcome as an event.
func (c *Coordinator) fetch(ctx context.Context, url string) app.Event {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	res, err := c.fetcher.Fetch(fetchCtx, url)
	if err != nil {
		return app.StoriesFailed{URL: url, Err: err}
	}
	return app.StoriesFetched{URL: url, Stories: res.Stories, Page: res.Page}
}

// Cmd turns effects into a Bubble Tea command. Each effect runs in its own
// command, so a slow fetch does not hold up persistence.
func (c *Coordinator) Cmd(ctx context.Context, effects []app.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		cmds = append(cmds, func() tea.Msg {
			if ev := c.Run(ctx, e); ev != nil {
				return ev
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// Drive runs effects in order, feeding produced events back into s until
// nothing is left to do. It is the synchronous driver used outside the TUI.
func (c *Coordinator) Drive(ctx context.Context, s app.Session, effects []app.Effect) (app.Session, error) {
	queue := append([]app.Effect(nil), effects...)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		e := queue[0]
		queue = queue[1:]

		ev := c.Run(ctx, e)
		if ev == nil {
			continue
		}
		next, more, err := s.Update(ev)
		if err != nil {
			return s, err
		}
		s = next
		queue = append(queue, more...)
	}
	return s, nil
}

// FetchPages fetches pages 0..pages-1 of term concurrently and returns one
// event per page, in page order.
func (c *Coordinator) FetchPages(ctx context.Context, endpoint search.Endpoint, term string, pages int) []app.Event {
	events := make([]app.Event, pages)

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for page := range pages {
		g.Go(func() error {
			events[page] = c.fetch(ctx, endpoint.URL(term, page))
			return nil // never fail the group - errors reported per-page
		})
	}

	_ = g.Wait()
	return events
}

// SearchPages runs a fresh search for the session's term and loads pages
// in total, fetching them concurrently. The session still sees the usual
// submit / more sequence, so history and state end up exactly as if the
// pages had been requested one by one. Loading stops at the first failure.
func (c *Coordinator) SearchPages(ctx context.Context, s app.Session, pages int) (app.Session, error) {
	if pages < 1 {
		pages = 1
	}
	prefetched := c.FetchPages(ctx, s.Endpoint(), s.Term(), pages)

	for page, result := range prefetched {
		var issue app.Event = app.MoreRequested{}
		if page == 0 {
			issue = app.SearchSubmitted{}
		}

		next, effects, err := s.Update(issue)
		if err != nil {
			return s, err
		}
		if len(effects) == 0 {
			return s, nil
		}
		s = next

		var pending []app.Effect
		for _, e := range effects {
			if f, ok := e.(app.FetchStories); ok && f.URL == urlOf(result) {
				continue
			}
			pending = append(pending, e)
		}
		if len(pending) == len(effects) {
			// Prefetched page does not match what the session asked for.
			logging.Debug("prefetch mismatch, fetching directly", "page", page)
			if s, err = c.Drive(ctx, s, pending); err != nil {
				return s, err
			}
		} else {
			if s, err = c.Drive(ctx, s, pending); err != nil {
				return s, err
			}
			if s, _, err = s.Update(result); err != nil {
				return s, err
			}
		}

		if s.State().IsError {
			return s, nil
		}
	}
	return s, nil
}

// urlOf returns the URL a fetch event answers.
func urlOf(ev app.Event) string {
	switch ev := ev.(type) {
	case app.StoriesFetched:
		return ev.URL
	case app.StoriesFailed:
		return ev.URL
	}
	return ""
}
