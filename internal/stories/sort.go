package stories

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey selects the column the list is ordered by.
type SortKey int

const (
	SortNone SortKey = iota
	SortTitle
	SortAuthor
	SortComments
	SortPoints
)

var sortKeyNames = map[SortKey]string{
	SortNone:     "none",
	SortTitle:    "title",
	SortAuthor:   "author",
	SortComments: "comments",
	SortPoints:   "points",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseSortKey maps a name from String back to its SortKey.
func ParseSortKey(name string) (SortKey, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range sortKeyNames {
		if n == name {
			return k, true
		}
	}
	return SortNone, false
}

// SortKeys lists the keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortNone, SortTitle, SortAuthor, SortComments, SortPoints}
}

// Text columns ascend, numeric columns descend.
var comparators = map[SortKey]func(a, b Story) int{
	SortTitle:    func(a, b Story) int { return strings.Compare(a.Title, b.Title) },
	SortAuthor:   func(a, b Story) int { return strings.Compare(a.Author, b.Author) },
	SortComments: func(a, b Story) int { return cmp.Compare(b.NumComments, a.NumComments) },
	SortPoints:   func(a, b Story) int { return cmp.Compare(b.Points, a.Points) },
}

// Sorting is the transient sort selection of a list view.
type Sorting struct {
	Key     SortKey
	Reverse bool
}

// Select picks key. Choosing the active key again flips the direction.
func (s Sorting) Select(key SortKey) Sorting {
	if key == s.Key && key != SortNone {
		return Sorting{Key: key, Reverse: !s.Reverse}
	}
	return Sorting{Key: key}
}

// Next cycles to the following key, wrapping back to SortNone.
func (s Sorting) Next() Sorting {
	return Sorting{Key: (s.Key + 1) % SortKey(len(sortKeyNames))}
}

// Apply returns list ordered by s. list itself is left untouched.
func (s Sorting) Apply(list []Story) []Story {
	return Sort(list, s.Key, s.Reverse)
}

// Sort returns a stably sorted copy of list. SortNone keeps arrival order.
func Sort(list []Story, key SortKey, reverse bool) []Story {
	out := slices.Clone(list)
	if compare, ok := comparators[key]; ok {
		slices.SortStableFunc(out, compare)
	}
	if reverse {
		slices.Reverse(out)
	}
	return out
}
