package ui

import "github.com/charmbracelet/bubbles/key"

// Key bindings for the story list. The search and filter inputs take raw
// keys except for the bindings checked before them.
var keys = struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	Search    key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Refresh   key.Binding
	Dismiss   key.Binding
	More      key.Binding
	Sort      key.Binding
	Reverse   key.Binding
	Filter    key.Binding
	Last      key.Binding
}{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "nav")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	Home:      key.NewBinding(key.WithKeys("home", "g")),
	End:       key.NewBinding(key.WithKeys("end", "G")),
	Search:    key.NewBinding(key.WithKeys("tab", "i"), key.WithHelp("tab", "search")),
	Submit:    key.NewBinding(key.WithKeys("enter")),
	Cancel:    key.NewBinding(key.WithKeys("esc")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Dismiss:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss")),
	More:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s/S", "sort")),
	Reverse:   key.NewBinding(key.WithKeys("S")),
	Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Last:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "last")),
}

// hintBindings are listed in the status bar, in order.
var hintBindings = []key.Binding{
	keys.Up, keys.Search, keys.Filter, keys.Sort, keys.More,
	keys.Dismiss, keys.Last, keys.Refresh, keys.Quit,
}
