package stories

import "strings"

// FilterByTitle keeps stories whose title contains term, ignoring case.
// An empty term keeps everything.
func FilterByTitle(list []Story, term string) []Story {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}
	out := make([]Story, 0, len(list))
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.Title), term) {
			out = append(out, s)
		}
	}
	return out
}
