package stories

// SumComments totals NumComments across list.
func SumComments(list []Story) int {
	total := 0
	for _, s := range list {
		total += s.NumComments
	}
	return total
}

// CommentCounter caches SumComments for the last slice it saw.
// Reduce allocates a new slice whenever Data changes, so comparing the
// backing array and length is enough to know when to recompute.
type CommentCounter struct {
	first *Story
	n     int
	sum   int
	valid bool

	recomputes int
}

// Sum returns the comment total for list, recomputing only if list is a
// different slice than the previous call.
func (c *CommentCounter) Sum(list []Story) int {
	var first *Story
	if len(list) > 0 {
		first = &list[0]
	}
	if c.valid && first == c.first && len(list) == c.n {
		return c.sum
	}
	c.first, c.n = first, len(list)
	c.sum = SumComments(list)
	c.valid = true
	c.recomputes++
	return c.sum
}
