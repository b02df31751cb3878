package stories

// Action is a transition request for Reduce. The set is closed: only the
// types in this package implement it.
type Action interface {
	action()
}

// FetchInit marks the start of a request.
type FetchInit struct{}

// FetchSuccess carries a page of results. Page 0 replaces the data, any
// later page is appended.
type FetchSuccess struct {
	Stories []Story
	Page    int
}

// FetchFailure records a failed request. Err is informational only; every
// failure collapses into State.IsError.
type FetchFailure struct {
	Err error
}

// RemoveStory drops every story sharing Story.ObjectID.
type RemoveStory struct {
	Story Story
}

func (FetchInit) action()    {}
func (FetchSuccess) action() {}
func (FetchFailure) action() {}
func (RemoveStory) action()  {}
