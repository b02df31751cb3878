// Package ui provides the Bubble Tea TUI for hackerstories.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/hackerstories/internal/app"
	"github.com/abelbrown/hackerstories/internal/logging"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeFilter
)

// AppConfig wires the App to its session and effect runner.
type AppConfig struct {
	Session app.Session
	// Initial are the effects returned by app.Start, run from Init.
	Initial []app.Effect
	// RunEffects turns effects into a command. nil drops them (tests).
	RunEffects func([]app.Effect) tea.Cmd
}

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT perform I/O. Effects go out through RunEffects and
// their results come back as app.Event messages.
type App struct {
	session    app.Session
	initial    []app.Effect
	runEffects func([]app.Effect) tea.Cmd

	input   textinput.Model
	filter  textinput.Model
	spinner spinner.Model
	mode    mode

	cursor int
	err    error // last fetch error, shown while the state is in error
	width  int
	height int
	ready  bool
}

// NewApp creates a new App from cfg.
func NewApp(cfg AppConfig) App {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "Search Hacker News"
	input.CharLimit = 200
	input.SetValue(cfg.Session.Term())

	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = "filter titles"
	filter.CharLimit = 100

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return App{
		session:    cfg.Session,
		initial:    cfg.Initial,
		runEffects: cfg.RunEffects,
		input:      input,
		filter:     filter,
		spinner:    s,
	}
}

// Init starts the spinner and runs the startup search.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.run(a.initial))
}

// run hands effects to the runner.
func (a App) run(effects []app.Effect) tea.Cmd {
	if a.runEffects == nil || len(effects) == 0 {
		return nil
	}
	return a.runEffects(effects)
}

// dispatch feeds ev to the session and runs the resulting effects.
func (a App) dispatch(ev app.Event) (App, tea.Cmd) {
	next, effects, err := a.session.Update(ev)
	if err != nil {
		logging.Error("session update failed", "error", err)
		return a, nil
	}
	a.session = next
	a.clampCursor()
	return a, a.run(effects)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - lipgloss.Width(a.input.Prompt) - 4
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case app.StoriesFailed:
		a.err = msg.Err
		return a.dispatch(msg)

	case app.Event:
		return a.dispatch(msg)
	}

	return a, nil
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	}
	return a.handleListKey(msg)
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		a.mode = modeList
		a.input.Blur()
		a.cursor = 0
		return a.dispatch(app.SearchSubmitted{})

	case key.Matches(msg, keys.Cancel), msg.Type == tea.KeyTab:
		a.mode = modeList
		a.input.Blur()
		return a, nil
	}

	var inputCmd tea.Cmd
	a.input, inputCmd = a.input.Update(msg)
	if a.input.Value() == a.session.Term() {
		return a, inputCmd
	}
	next, cmd := a.dispatch(app.TermChanged{Term: a.input.Value()})
	return next, tea.Batch(inputCmd, cmd)
}

func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		a.mode = modeList
		a.filter.Blur()
		return a, nil

	case key.Matches(msg, keys.Cancel):
		a.mode = modeList
		a.filter.Blur()
		a.filter.SetValue("")
		a.cursor = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	a.cursor = 0
	return a, cmd
}

func (a App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := a.session.Visible(a.filter.Value())

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Down):
		if a.cursor < len(visible)-1 {
			a.cursor++
		}
		return a, nil

	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case key.Matches(msg, keys.Home):
		a.cursor = 0
		return a, nil

	case key.Matches(msg, keys.End):
		if len(visible) > 0 {
			a.cursor = len(visible) - 1
		}
		return a, nil

	case key.Matches(msg, keys.Search):
		a.mode = modeSearch
		return a, a.input.Focus()

	case key.Matches(msg, keys.Filter):
		a.mode = modeFilter
		return a, a.filter.Focus()

	case key.Matches(msg, keys.Refresh):
		a.cursor = 0
		return a.dispatch(app.SearchSubmitted{})

	case key.Matches(msg, keys.Dismiss):
		if a.cursor < len(visible) {
			return a.dispatch(app.StoryDismissed{Story: visible[a.cursor]})
		}
		return a, nil

	case key.Matches(msg, keys.More):
		return a.dispatch(app.MoreRequested{})

	case key.Matches(msg, keys.Sort):
		return a.dispatch(app.SortSelected{Key: a.session.Sorting().Next().Key})

	case key.Matches(msg, keys.Reverse):
		return a.dispatch(app.SortSelected{Key: a.session.Sorting().Key})

	case key.Matches(msg, keys.Last):
		idx := int(msg.String()[0] - '1')
		last := a.session.LastSearches()
		if idx >= len(last) {
			return a, nil
		}
		a.input.SetValue(last[idx])
		a.cursor = 0
		return a.dispatch(app.LastSearchSelected{Term: last[idx]})
	}

	return a, nil
}

// clampCursor keeps the cursor on a visible row after the list changed.
func (a *App) clampCursor() {
	n := len(a.session.Visible(a.filter.Value()))
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	state := a.session.State()
	visible := a.session.Visible(a.filter.Value())

	var top []string
	top = append(top, Header.Render("Hacker Stories"))
	top = append(top, SearchBar.Render(a.input.View()))
	if last := RenderLastSearches(a.session.LastSearches()); last != "" {
		top = append(top, last)
	}
	if a.mode == modeFilter || a.filter.Value() != "" {
		top = append(top, RenderFilterBar(a.filter.View(), len(visible), len(state.Data), a.width))
	}
	if state.IsError {
		top = append(top, ErrorStyle.Width(a.width).Render(errorLine(a.err)))
	}
	header := strings.Join(top, "\n")

	info := StatusInfo{
		Cursor:   a.cursor,
		Total:    len(visible),
		Comments: a.session.CommentTotal(),
		Sorting:  a.session.Sorting(),
	}
	if state.IsLoading {
		info.Loading = a.spinner.View() + " Loading ..."
	}
	statusBar := RenderStatusBar(info, a.width)

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(statusBar)

	var body string
	if state.IsLoading {
		body = HelpStyle.Render(a.spinner.View() + " Loading ...")
	} else {
		body = RenderStream(visible, a.cursor, a.width, contentHeight)
	}

	// Pad the body so the status bar sits on the last line.
	if gap := contentHeight - lipgloss.Height(body); gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	return header + "\n" + body + statusBar
}

func errorLine(err error) string {
	if err == nil {
		return "Something went wrong ..."
	}
	return "Something went wrong ... (" + err.Error() + ")"
}

// Session returns the current session (for testing).
func (a App) Session() app.Session {
	return a.session
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Filter returns the active title filter (for testing).
func (a App) Filter() string {
	return a.filter.Value()
}
