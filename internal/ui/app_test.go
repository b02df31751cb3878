package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/abelbrown/hackerstories/internal/app"
	"github.com/abelbrown/hackerstories/internal/search"
	"github.com/abelbrown/hackerstories/internal/stories"
)

var endpoint = search.NewEndpoint("http://api")

var fixture = []stories.Story{
	{Title: "Rust in production", Author: "bob", NumComments: 10, Points: 50, ObjectID: "a"},
	{Title: "Go generics", Author: "alice", NumComments: 30, Points: 5, ObjectID: "b"},
	{Title: "Zig comptime", Author: "carol", NumComments: 0, Points: 20, ObjectID: "c"},
}

// effectLog records every effect the App hands out.
type effectLog struct {
	effects []app.Effect
}

func (l *effectLog) run(effects []app.Effect) tea.Cmd {
	l.effects = append(l.effects, effects...)
	return func() tea.Msg { return nil }
}

func (l *effectLog) last() app.Effect {
	if len(l.effects) == 0 {
		return nil
	}
	return l.effects[len(l.effects)-1]
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a App, ks ...string) App {
	for _, k := range ks {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

func send(a App, msg tea.Msg) App {
	m, _ := a.Update(msg)
	return m.(App)
}

// newLoadedApp returns an App whose startup search for "React" has
// completed with the fixture stories.
func newLoadedApp(t *testing.T) (App, *effectLog) {
	t.Helper()
	s, effects, err := app.Start(nil, endpoint, "React")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	log := &effectLog{}
	a := NewApp(AppConfig{Session: s, Initial: effects, RunEffects: log.run})
	a.Init()
	a = send(a, tea.WindowSizeMsg{Width: 120, Height: 30})
	a = send(a, app.StoriesFetched{URL: s.CurrentURL(), Stories: fixture, Page: 0})
	return a, log
}

func TestAppInitRunsStartupSearch(t *testing.T) {
	s, effects, _ := app.Start(nil, endpoint, "React")
	log := &effectLog{}
	a := NewApp(AppConfig{Session: s, Initial: effects, RunEffects: log.run})

	if cmd := a.Init(); cmd == nil {
		t.Fatal("Init should return a command")
	}

	want := []app.Effect{
		app.RecordSearch{URL: endpoint.URL("React", 0), Term: "React", Page: 0},
		app.FetchStories{URL: endpoint.URL("React", 0)},
	}
	if diff := cmp.Diff(want, log.effects); diff != "" {
		t.Errorf("startup effects mismatch (-want +got):\n%s", diff)
	}
}

func TestAppInitNilRunner(t *testing.T) {
	s, effects, _ := app.Start(nil, endpoint, "React")
	a := NewApp(AppConfig{Session: s, Initial: effects})

	// Only the spinner tick remains.
	if cmd := a.Init(); cmd == nil {
		t.Error("Init should still start the spinner")
	}
}

func TestAppLoadingView(t *testing.T) {
	s, effects, _ := app.Start(nil, endpoint, "React")
	a := NewApp(AppConfig{Session: s, Initial: effects})
	a = send(a, tea.WindowSizeMsg{Width: 120, Height: 30})

	if !strings.Contains(a.View(), "Loading ...") {
		t.Error("expected loading indicator while the first page is in flight")
	}
}

func TestAppNotReady(t *testing.T) {
	a := NewApp(AppConfig{Session: app.NewSession(endpoint, "React")})
	if got := a.View(); got != "Loading..." {
		t.Errorf("View before WindowSizeMsg = %q", got)
	}
}

func TestAppNavigation(t *testing.T) {
	a, _ := newLoadedApp(t)

	a = press(a, "j")
	if a.Cursor() != 1 {
		t.Errorf("after j: cursor = %d, want 1", a.Cursor())
	}

	a = press(a, "j", "j", "j")
	if a.Cursor() != 2 {
		t.Errorf("cursor should stop at last item, got %d", a.Cursor())
	}

	a = press(a, "k")
	if a.Cursor() != 1 {
		t.Errorf("after k: cursor = %d, want 1", a.Cursor())
	}

	a = press(a, "g")
	if a.Cursor() != 0 {
		t.Errorf("after g: cursor = %d, want 0", a.Cursor())
	}

	a = press(a, "G")
	if a.Cursor() != 2 {
		t.Errorf("after G: cursor = %d, want 2", a.Cursor())
	}
}

func TestAppTypingPersistsTerm(t *testing.T) {
	a, log := newLoadedApp(t)

	a = press(a, "tab", "x")
	if got := a.Session().Term(); got != "Reactx" {
		t.Fatalf("term = %q, want Reactx", got)
	}
	if diff := cmp.Diff(app.Effect(app.PersistTerm{Key: app.SearchKey, Value: "Reactx"}), log.last()); diff != "" {
		t.Errorf("keystroke should persist the term (-want +got):\n%s", diff)
	}

	a = press(a, "enter")
	if diff := cmp.Diff(app.Effect(app.FetchStories{URL: endpoint.URL("Reactx", 0)}), log.last()); diff != "" {
		t.Errorf("enter should fetch the new term (-want +got):\n%s", diff)
	}
	if !a.Session().State().IsLoading {
		t.Error("state should be loading after submit")
	}

	// Back in the list: j navigates instead of typing.
	a = press(a, "j")
	if a.Session().Term() != "Reactx" {
		t.Errorf("list keys must not edit the term, got %q", a.Session().Term())
	}
}

func TestAppSearchCancel(t *testing.T) {
	a, log := newLoadedApp(t)
	before := len(log.effects)

	a = press(a, "tab", "esc", "q")
	if len(log.effects) != before {
		t.Errorf("cancel should not issue effects, got %v", log.effects[before:])
	}
}

func TestAppRefresh(t *testing.T) {
	a, log := newLoadedApp(t)

	a = press(a, "r")
	if diff := cmp.Diff(app.Effect(app.FetchStories{URL: endpoint.URL("React", 0)}), log.last()); diff != "" {
		t.Errorf("refresh mismatch (-want +got):\n%s", diff)
	}
	if a.Session().History().Len() != 2 {
		t.Errorf("refresh should append a URL, history len %d", a.Session().History().Len())
	}
}

func TestAppDismiss(t *testing.T) {
	a, _ := newLoadedApp(t)

	a = press(a, "j", "d")

	data := a.Session().State().Data
	if len(data) != 2 {
		t.Fatalf("expected 2 stories after dismiss, got %d", len(data))
	}
	for _, s := range data {
		if s.ObjectID == "b" {
			t.Error("dismissed story still present")
		}
	}
	if a.Session().CommentTotal() != 10 {
		t.Errorf("CommentTotal = %d, want 10", a.Session().CommentTotal())
	}
}

func TestAppDismissClampsCursor(t *testing.T) {
	a, _ := newLoadedApp(t)

	a = press(a, "G", "d")
	if a.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", a.Cursor())
	}
}

func TestAppMore(t *testing.T) {
	a, log := newLoadedApp(t)

	a = press(a, "m")
	if diff := cmp.Diff(app.Effect(app.FetchStories{URL: endpoint.URL("React", 1)}), log.last()); diff != "" {
		t.Errorf("more mismatch (-want +got):\n%s", diff)
	}

	page := []stories.Story{{Title: "Page two", ObjectID: "d", NumComments: 5}}
	a = send(a, app.StoriesFetched{URL: endpoint.URL("React", 1), Stories: page, Page: 1})

	if got := len(a.Session().State().Data); got != 4 {
		t.Errorf("expected appended page, got %d stories", got)
	}
	if a.Session().CommentTotal() != 45 {
		t.Errorf("CommentTotal = %d, want 45", a.Session().CommentTotal())
	}
}

func TestAppSort(t *testing.T) {
	a, _ := newLoadedApp(t)

	a = press(a, "s")
	if a.Session().Sorting().Key != stories.SortTitle {
		t.Fatalf("sort key = %v, want title", a.Session().Sorting().Key)
	}
	got := titles(a.Session().Visible(""))
	want := []string{"Go generics", "Rust in production", "Zig comptime"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("title order mismatch (-want +got):\n%s", diff)
	}

	a = press(a, "S")
	got = titles(a.Session().Visible(""))
	want = []string{"Zig comptime", "Rust in production", "Go generics"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reversed order mismatch (-want +got):\n%s", diff)
	}

	// State keeps arrival order.
	if a.Session().State().Data[0].ObjectID != "a" {
		t.Error("sorting must not reorder the stories state")
	}
}

func TestAppFilter(t *testing.T) {
	a, _ := newLoadedApp(t)

	a = press(a, "/", "r", "u", "s", "t")
	if a.Filter() != "rust" {
		t.Fatalf("filter = %q, want rust", a.Filter())
	}
	got := titles(a.Session().Visible(a.Filter()))
	if diff := cmp.Diff([]string{"Rust in production"}, got); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(a.View(), "1/3") {
		t.Error("filter bar should show the match count")
	}

	// Filter keys never reach the list bindings.
	if a.Session().History().Len() != 1 {
		t.Errorf("typing r in the filter must not refresh, history len %d", a.Session().History().Len())
	}

	// enter keeps the filter, esc clears it.
	a = press(a, "enter")
	if a.Filter() != "rust" {
		t.Errorf("enter should keep the filter, got %q", a.Filter())
	}
	a = press(a, "/", "esc")
	if a.Filter() != "" {
		t.Errorf("esc should clear the filter, got %q", a.Filter())
	}
}

func TestAppLastSearch(t *testing.T) {
	s := app.NewSession(endpoint, "React")
	s, _, _ = s.Update(app.SearchSubmitted{})
	s, _, _ = s.Update(app.TermChanged{Term: "Go"})
	s, _, _ = s.Update(app.SearchSubmitted{})

	log := &effectLog{}
	a := NewApp(AppConfig{Session: s, RunEffects: log.run})
	a = send(a, tea.WindowSizeMsg{Width: 120, Height: 30})

	if diff := cmp.Diff([]string{"React"}, a.Session().LastSearches()); diff != "" {
		t.Fatalf("last searches mismatch (-want +got):\n%s", diff)
	}

	a = press(a, "2") // out of range
	if len(log.effects) != 0 {
		t.Fatalf("unexpected effects %v", log.effects)
	}

	a = press(a, "1")
	want := []app.Effect{
		app.PersistTerm{Key: app.SearchKey, Value: "React"},
		app.RecordSearch{URL: endpoint.URL("React", 0), Term: "React", Page: 0},
		app.FetchStories{URL: endpoint.URL("React", 0)},
	}
	if diff := cmp.Diff(want, log.effects); diff != "" {
		t.Errorf("last search effects mismatch (-want +got):\n%s", diff)
	}
	if a.Session().Term() != "React" {
		t.Errorf("term = %q, want React", a.Session().Term())
	}
	if diff := cmp.Diff([]string{"React", "Go"}, a.Session().LastSearches()); diff != "" {
		t.Errorf("last searches after re-run mismatch (-want +got):\n%s", diff)
	}
}

func TestAppErrorLine(t *testing.T) {
	a, _ := newLoadedApp(t)

	a = send(a, app.StoriesFailed{URL: a.Session().CurrentURL(), Err: errors.New("boom")})

	view := a.View()
	if !strings.Contains(view, "Something went wrong") {
		t.Error("expected error line in view")
	}
	if len(a.Session().State().Data) != 3 {
		t.Error("failure should keep the loaded stories")
	}

	// A later success clears the error.
	a = press(a, "r")
	a = send(a, app.StoriesFetched{URL: a.Session().CurrentURL(), Stories: fixture})
	if strings.Contains(a.View(), "Something went wrong") {
		t.Error("error line should clear after a successful fetch")
	}
}

func TestAppQuit(t *testing.T) {
	a, _ := newLoadedApp(t)

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := a.Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestAppQuitKeyTypesInSearch(t *testing.T) {
	a, _ := newLoadedApp(t)

	a = press(a, "tab", "q")
	if a.Session().Term() != "Reactq" {
		t.Errorf("q in the search input should type, term = %q", a.Session().Term())
	}
}

func titles(list []stories.Story) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Title
	}
	return out
}
