package stories

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is returned for actions Reduce does not know.
var ErrInvalidAction = errors.New("invalid stories action")

// Reduce applies a to s and returns the next state. s is never modified;
// whenever Data changes the result holds a freshly allocated slice.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case FetchInit:
		s.IsLoading = true
		s.IsError = false
		return s, nil

	case FetchSuccess:
		s.IsLoading = false
		s.IsError = false
		if a.Page == 0 {
			s.Data = append([]Story(nil), a.Stories...)
		} else {
			data := make([]Story, 0, len(s.Data)+len(a.Stories))
			data = append(data, s.Data...)
			s.Data = append(data, a.Stories...)
		}
		s.Page = a.Page
		return s, nil

	case FetchFailure:
		s.IsLoading = false
		s.IsError = true
		return s, nil

	case RemoveStory:
		data := make([]Story, 0, len(s.Data))
		for _, story := range s.Data {
			if story.ObjectID != a.Story.ObjectID {
				data = append(data, story)
			}
		}
		if len(data) == len(s.Data) {
			return s, nil
		}
		s.Data = data
		return s, nil
	}

	return s, fmt.Errorf("%w: %T", ErrInvalidAction, a)
}

// MustReduce is Reduce for drivers that treat an unknown action as a bug.
func MustReduce(s State, a Action) State {
	next, err := Reduce(s, a)
	if err != nil {
		panic(err)
	}
	return next
}
