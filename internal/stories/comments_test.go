package stories

import "testing"

func TestSumComments(t *testing.T) {
	if got := SumComments(nil); got != 0 {
		t.Errorf("SumComments(nil) = %d, want 0", got)
	}
	if got := SumComments([]Story{{NumComments: 3}, {NumComments: 2}}); got != 5 {
		t.Errorf("SumComments = %d, want 5", got)
	}
}

func TestCommentCounterMemoizes(t *testing.T) {
	var c CommentCounter
	s := MustReduce(Initial(), FetchSuccess{Stories: []Story{storyOne, storyTwo}})

	if got := c.Sum(s.Data); got != 5 {
		t.Fatalf("Sum = %d, want 5", got)
	}
	// Loading does not touch Data, so no recompute.
	s = MustReduce(s, FetchInit{})
	c.Sum(s.Data)
	if c.recomputes != 1 {
		t.Errorf("recomputes = %d after unchanged data, want 1", c.recomputes)
	}

	s = MustReduce(s, RemoveStory{Story: storyOne})
	if got := c.Sum(s.Data); got != 2 {
		t.Errorf("Sum after remove = %d, want 2", got)
	}
	if c.recomputes != 2 {
		t.Errorf("recomputes = %d after new data, want 2", c.recomputes)
	}
}

func TestCommentCounterEmpty(t *testing.T) {
	var c CommentCounter
	if got := c.Sum(nil); got != 0 {
		t.Errorf("Sum(nil) = %d", got)
	}
	if got := c.Sum([]Story{}); got != 0 {
		t.Errorf("Sum(empty) = %d", got)
	}
}
